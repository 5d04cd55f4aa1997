package billing

import (
	"context"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/report"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
)

// LedgerTxRunner ejecuta una función dentro de una transacción con los repos del libro de deudas.
// Si fn retorna error se hace rollback.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(
		partyRepo repository.PartyRepository,
		billRepo repository.BillRepository,
		paymentRepo repository.PaymentRepository,
		shopRepo repository.ShopRepository,
	) error) error
}

// StatsCache cache de los agregados de /stats. Las mutaciones invalidan la entrada de la tienda.
type StatsCache interface {
	Get(ctx context.Context, key string) (*dto.PartyStatsResponse, bool, error)
	Set(ctx context.Context, key string, stats *dto.PartyStatsResponse) error
	InvalidateShop(ctx context.Context, shopID string, kind entity.PartyKind) error
}

// ReportRenderer convierte modelos de reporte en PDF.
type ReportRenderer interface {
	RenderReport(ctx context.Context, r *report.Report) ([]byte, error)
	RenderBillInvoice(ctx context.Context, shop *entity.Shop, party *entity.Party, bill *entity.Bill) ([]byte, error)
}

// noopStatsCache se usa cuando no hay Redis configurado.
type noopStatsCache struct{}

func (noopStatsCache) Get(context.Context, string) (*dto.PartyStatsResponse, bool, error) {
	return nil, false, nil
}
func (noopStatsCache) Set(context.Context, string, *dto.PartyStatsResponse) error { return nil }
func (noopStatsCache) InvalidateShop(context.Context, string, entity.PartyKind) error {
	return nil
}
