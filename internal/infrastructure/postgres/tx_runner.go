package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Khata-api/internal/application/billing"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.LedgerTxRunner.
var _ billing.LedgerTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLedger inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La factura o el abono y la actualización de totales de la parte se confirman juntos.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	partyRepo repository.PartyRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	shopRepo repository.ShopRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPartyRepository(tx), NewBillRepository(tx), NewPaymentRepository(tx), NewShopRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
