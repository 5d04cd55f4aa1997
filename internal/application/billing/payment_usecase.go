package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/filter"
	"github.com/jhoicas/Khata-api/internal/domain/ledger"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// PaymentUseCase registra y lista abonos de clientes y mayoristas.
type PaymentUseCase struct {
	txRunner    LedgerTxRunner
	partyRepo   repository.PartyRepository
	paymentRepo repository.PaymentRepository
	cache       StatsCache
	log         *logger.Logger
	now         Clock
	exportLimit int
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	txRunner LedgerTxRunner,
	partyRepo repository.PartyRepository,
	paymentRepo repository.PaymentRepository,
	cache StatsCache,
	log *logger.Logger,
	now Clock,
	exportLimit int,
) *PaymentUseCase {
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
	return &PaymentUseCase{
		txRunner:    txRunner,
		partyRepo:   partyRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		log:         log,
		now:         now,
		exportLimit: exportLimit,
	}
}

// Record registra un abono y actualiza totalPaid de la parte en la misma transacción.
// Un abono mayor al saldo deja a la parte con anticipo (saldo negativo).
func (uc *PaymentUseCase) Record(ctx context.Context, shopID string, in dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	kind := entity.PartyKind(in.EntityType)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: entityType inválido", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: paymentMethod inválido", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(in.EntityID); err != nil {
		return nil, domain.ErrNotFound
	}

	var payment *entity.Payment
	var previous decimal.Decimal
	err := uc.txRunner.RunLedger(ctx, func(
		partyRepo repository.PartyRepository,
		_ repository.BillRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.ShopRepository,
	) error {
		party, err := partyRepo.GetForUpdate(ctx, shopID, in.EntityID)
		if err != nil {
			return err
		}
		if party == nil || party.Kind != kind {
			return domain.ErrNotFound
		}
		if party.IsDeleted {
			return domain.ErrPartyDeleted
		}
		previous = party.OutstandingDue()
		payment = &entity.Payment{
			ID:            uuid.New().String(),
			ShopID:        shopID,
			PartyID:       party.ID,
			PartyKind:     party.Kind,
			PartyName:     party.Name,
			Amount:        in.Amount,
			PaymentMethod: in.PaymentMethod,
			Notes:         strings.TrimSpace(in.Notes),
			CreatedAt:     uc.now(),
		}
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		return partyRepo.AddTotals(ctx, shopID, party.ID, decimal.Zero, payment.Amount)
	})
	if err != nil {
		return nil, err
	}
	invalidateStats(ctx, uc.cache, uc.log, shopID, kind)

	next := ledger.ApplyPayment(previous, payment.Amount)
	return &dto.RecordPaymentResponse{
		Payment:                toPaymentResponse(payment),
		PreviousOutstandingDue: previous,
		NewOutstandingDue:      next,
		DueStatus:              string(ledger.Classify(next)),
		DisplayDue:             next.Abs(),
	}, nil
}

// ListByParty historial completo de una parte, paginado en memoria.
func (uc *PaymentUseCase) ListByParty(ctx context.Context, shopID string, kind entity.PartyKind, partyID string, page, limit int) (*dto.ListResponse[dto.PaymentResponse], error) {
	if _, err := uuid.Parse(partyID); err != nil {
		return nil, domain.ErrNotFound
	}
	party, err := uc.partyRepo.GetByID(ctx, shopID, partyID)
	if err != nil {
		return nil, err
	}
	if party == nil || party.Kind != kind {
		return nil, domain.ErrNotFound
	}
	all, err := uc.paymentRepo.ListByParty(ctx, shopID, partyID)
	if err != nil {
		return nil, err
	}
	pg := filter.Paginate(all, page, limit)
	return paymentList(pg.Items, pg.Pagination), nil
}

// List listado paginado en el servidor con filtros de método, búsqueda y fechas.
func (uc *PaymentUseCase) List(ctx context.Context, shopID string, q dto.PaymentListQuery) (*dto.ListResponse[dto.PaymentResponse], error) {
	s, err := listState(q.Page, q.Limit, q.Search, q.TimeFilter, q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	f, _, err := paymentFilter(shopID, q, s, uc.now())
	if err != nil {
		return nil, err
	}
	payments, total, err := uc.paymentRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return paymentList(payments, filter.NewPagination(s.Page, s.Limit, total)), nil
}

// Export mismos filtros que List, sin paginar (hasta exportLimit filas).
func (uc *PaymentUseCase) Export(ctx context.Context, shopID string, q dto.PaymentListQuery) (*dto.ListResponse[dto.PaymentResponse], error) {
	payments, total, _, err := uc.exportRows(ctx, shopID, q)
	if err != nil {
		return nil, err
	}
	return paymentList(payments, filter.NewPagination(1, uc.exportLimit, total)), nil
}

func (uc *PaymentUseCase) exportRows(ctx context.Context, shopID string, q dto.PaymentListQuery) ([]*entity.Payment, int, string, error) {
	s, err := listState(1, filter.MaxLimit, q.Search, q.TimeFilter, q.StartDate, q.EndDate)
	if err != nil {
		return nil, 0, "", err
	}
	f, label, err := paymentFilter(shopID, q, s, uc.now())
	if err != nil {
		return nil, 0, "", err
	}
	f.Limit, f.Offset = uc.exportLimit, 0
	payments, total, err := uc.paymentRepo.List(ctx, f)
	if err != nil {
		return nil, 0, "", err
	}
	return payments, total, label, nil
}

func paymentList(payments []*entity.Payment, p filter.Pagination) *dto.ListResponse[dto.PaymentResponse] {
	out := &dto.ListResponse[dto.PaymentResponse]{
		Data:       make([]dto.PaymentResponse, 0, len(payments)),
		Pagination: p,
	}
	for _, pm := range payments {
		out.Data = append(out.Data, toPaymentResponse(pm))
	}
	return out
}
