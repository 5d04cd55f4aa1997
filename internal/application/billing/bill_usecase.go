package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/filter"
	"github.com/jhoicas/Khata-api/internal/domain/ledger"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// DefaultExportLimit filas máximas de un export (datos para PDF).
const DefaultExportLimit = 5000

// BillUseCase crea y lista facturas de venta y de compra.
type BillUseCase struct {
	txRunner    LedgerTxRunner
	billRepo    repository.BillRepository
	cache       StatsCache
	log         *logger.Logger
	now         Clock
	exportLimit int
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(
	txRunner LedgerTxRunner,
	billRepo repository.BillRepository,
	cache StatsCache,
	log *logger.Logger,
	now Clock,
	exportLimit int,
) *BillUseCase {
	if cache == nil {
		cache = noopStatsCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = ClockIn(nil)
	}
	if exportLimit <= 0 {
		exportLimit = DefaultExportLimit
	}
	return &BillUseCase{
		txRunner:    txRunner,
		billRepo:    billRepo,
		cache:       cache,
		log:         log,
		now:         now,
		exportLimit: exportLimit,
	}
}

// Create registra una factura y suma sus montos a los acumulados de la parte en una sola transacción.
// El tipo de factura se deduce de la parte (cliente → sale, mayorista → purchase).
func (uc *BillUseCase) Create(ctx context.Context, shopID string, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if !in.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: totalAmount debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.PaidAmount.IsNegative() || in.PaidAmount.GreaterThan(in.TotalAmount) {
		return nil, fmt.Errorf("%w: paidAmount debe estar entre 0 y totalAmount", domain.ErrInvalidInput)
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: paymentMethod inválido", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(in.EntityID); err != nil {
		return nil, domain.ErrNotFound
	}

	var bill *entity.Bill
	var kind entity.PartyKind
	err := uc.txRunner.RunLedger(ctx, func(
		partyRepo repository.PartyRepository,
		billRepo repository.BillRepository,
		_ repository.PaymentRepository,
		shopRepo repository.ShopRepository,
	) error {
		party, err := partyRepo.GetForUpdate(ctx, shopID, in.EntityID)
		if err != nil {
			return err
		}
		if party == nil {
			return domain.ErrNotFound
		}
		if party.IsDeleted {
			return domain.ErrPartyDeleted
		}
		kind = party.Kind
		billType := party.Kind.BillType()

		seq, err := shopRepo.NextBillNumber(ctx, shopID, billType)
		if err != nil {
			return fmt.Errorf("bill: consecutivo: %w", err)
		}
		bill = &entity.Bill{
			ID:            uuid.New().String(),
			ShopID:        shopID,
			PartyID:       party.ID,
			PartyName:     party.Name,
			BillNumber:    FormatBillNumber(billType, seq),
			BillType:      billType,
			TotalAmount:   in.TotalAmount,
			PaidAmount:    in.PaidAmount,
			PaymentMethod: method,
			Notes:         strings.TrimSpace(in.Notes),
			CreatedAt:     uc.now(),
		}
		due := ledger.BillDue(bill)
		bill.DueAmount = &due
		if err := billRepo.Create(ctx, bill); err != nil {
			return err
		}
		return partyRepo.AddTotals(ctx, shopID, party.ID, bill.TotalAmount, bill.PaidAmount)
	})
	if err != nil {
		return nil, err
	}
	invalidateStats(ctx, uc.cache, uc.log, shopID, kind)
	out := toBillResponse(bill)
	return &out, nil
}

// Get obtiene una factura por ID.
func (uc *BillUseCase) Get(ctx context.Context, shopID, id string) (*dto.BillResponse, error) {
	b, err := uc.load(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	out := toBillResponse(b)
	return &out, nil
}

// List listado paginado en el servidor. El total y totalPages vienen del repositorio.
func (uc *BillUseCase) List(ctx context.Context, shopID string, q dto.BillListQuery) (*dto.ListResponse[dto.BillResponse], error) {
	s, err := listState(q.Page, q.Limit, q.Search, q.TimeFilter, q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	f, _, err := billFilter(shopID, q, s, uc.now())
	if err != nil {
		return nil, err
	}
	bills, total, err := uc.billRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return billList(bills, filter.NewPagination(s.Page, s.Limit, total)), nil
}

// Export mismos filtros que List pero sin paginar (hasta exportLimit filas), para PDF.
func (uc *BillUseCase) Export(ctx context.Context, shopID string, q dto.BillListQuery) (*dto.ListResponse[dto.BillResponse], error) {
	bills, total, _, err := uc.exportRows(ctx, shopID, q)
	if err != nil {
		return nil, err
	}
	return billList(bills, filter.NewPagination(1, uc.exportLimit, total)), nil
}

// exportRows devuelve las filas del export, el total y la etiqueta del período.
func (uc *BillUseCase) exportRows(ctx context.Context, shopID string, q dto.BillListQuery) ([]*entity.Bill, int, string, error) {
	s, err := listState(1, filter.MaxLimit, q.Search, q.TimeFilter, q.StartDate, q.EndDate)
	if err != nil {
		return nil, 0, "", err
	}
	f, label, err := billFilter(shopID, q, s, uc.now())
	if err != nil {
		return nil, 0, "", err
	}
	f.Limit, f.Offset = uc.exportLimit, 0
	bills, total, err := uc.billRepo.List(ctx, f)
	if err != nil {
		return nil, 0, "", err
	}
	return bills, total, label, nil
}

func (uc *BillUseCase) load(ctx context.Context, shopID, id string) (*entity.Bill, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.billRepo.GetByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// FormatBillNumber INV-000001 para ventas, PUR-000001 para compras.
func FormatBillNumber(t entity.BillType, seq int64) string {
	prefix := "INV"
	if t == entity.BillPurchase {
		prefix = "PUR"
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

func billList(bills []*entity.Bill, p filter.Pagination) *dto.ListResponse[dto.BillResponse] {
	out := &dto.ListResponse[dto.BillResponse]{
		Data:       make([]dto.BillResponse, 0, len(bills)),
		Pagination: p,
	}
	for _, b := range bills {
		out.Data = append(out.Data, toBillResponse(b))
	}
	return out
}
