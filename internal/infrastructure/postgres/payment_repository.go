package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, shop_id, party_id, party_kind, party_name, amount, payment_method, notes, created_at`

// Create persiste un abono.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ShopID, p.PartyID, p.PartyKind, p.PartyName, p.Amount, p.PaymentMethod, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByParty todos los abonos de una parte, más recientes primero.
func (r *PaymentRepo) ListByParty(ctx context.Context, shopID, partyID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE shop_id = $1 AND party_id = $2 ORDER BY created_at DESC`,
		shopID, partyID)
	if err != nil {
		return nil, fmt.Errorf("list payments by party: %w", err)
	}
	return collectPayments(rows)
}

// List abonos filtrados con el total de filas que cumplen el filtro.
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentListFilter) ([]*entity.Payment, int, error) {
	w := &where{}
	w.add("shop_id = ?", f.ShopID)
	if f.PartyID != "" {
		w.add("party_id = ?", f.PartyID)
	}
	if f.PartyKind != "" {
		w.add("party_kind = ?", f.PartyKind)
	}
	if f.PaymentMethod != "" {
		w.add("payment_method = ?", f.PaymentMethod)
	}
	if f.Search != "" {
		w.add("(party_name ILIKE ? OR notes ILIKE ?)", likePattern(f.Search))
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at < ?", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payments`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM payments`+w.String()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	list, err := collectPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func collectPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.ShopID, &p.PartyID, &p.PartyKind, &p.PartyName, &p.Amount, &p.PaymentMethod, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
