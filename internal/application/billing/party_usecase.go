package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/filter"
	"github.com/jhoicas/Khata-api/internal/domain/ledger"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// PartyUseCase casos de uso para clientes y mayoristas (libro de deudas).
type PartyUseCase struct {
	repo   repository.PartyRepository
	cache  StatsCache
	log    *logger.Logger
	now    Clock
	flight singleflight.Group
}

// NewPartyUseCase construye el caso de uso. cache puede ser nil (sin Redis).
func NewPartyUseCase(repo repository.PartyRepository, cache StatsCache, log *logger.Logger, now Clock) *PartyUseCase {
	if cache == nil {
		cache = noopStatsCache{}
	}
	if now == nil {
		now = ClockIn(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PartyUseCase{repo: repo, cache: cache, log: log, now: now}
}

// Create crea un cliente o mayorista. Los acumulados de por vida arrancan con los valores de apertura.
func (uc *PartyUseCase) Create(ctx context.Context, shopID string, kind entity.PartyKind, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	opening := valueOrZero(in.OpeningSales)
	if kind == entity.PartyWholesaler {
		opening = valueOrZero(in.OpeningPurchases)
	}
	openingPaid := valueOrZero(in.OpeningPayments)
	if opening.IsNegative() || openingPaid.IsNegative() {
		return nil, fmt.Errorf("%w: los saldos de apertura no pueden ser negativos", domain.ErrInvalidInput)
	}

	customerType := ""
	if kind == entity.PartyCustomer {
		customerType = in.CustomerType
		if customerType == "" {
			customerType = entity.CustomerTypeDue
		}
	}

	now := uc.now()
	party := &entity.Party{
		ID:              uuid.New().String(),
		ShopID:          shopID,
		Kind:            kind,
		CustomerType:    customerType,
		Name:            name,
		Phone:           strings.TrimSpace(in.Phone),
		Address:         strings.TrimSpace(in.Address),
		OpeningBalance:  opening,
		OpeningPayments: openingPaid,
		TotalBilled:     opening,
		TotalPaid:       openingPaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, party); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, shopID, kind)
	out := toPartyResponse(party)
	return &out, nil
}

// Get obtiene una parte por ID. Una parte de otro tipo cuenta como inexistente.
func (uc *PartyUseCase) Get(ctx context.Context, shopID string, kind entity.PartyKind, id string) (*dto.PartyResponse, error) {
	p, err := uc.load(ctx, shopID, kind, id)
	if err != nil {
		return nil, err
	}
	out := toPartyResponse(p)
	return &out, nil
}

// List lista partes con paginación en el servidor; el total lo informa el repositorio.
func (uc *PartyUseCase) List(ctx context.Context, shopID string, kind entity.PartyKind, q dto.PartyListQuery) (*dto.ListResponse[dto.PartyResponse], error) {
	s := filter.NewState(q.Limit).WithSearch(q.Search).WithPage(q.Page).Normalize()

	f := repository.PartyListFilter{
		ShopID:     shopID,
		Kind:       kind,
		Search:     s.Search,
		Status:     oneOf(q.Status, repository.PartyStatusActive, repository.PartyStatusDeleted, repository.PartyStatusAll),
		DuesFilter: oneOf(q.DuesFilter, repository.DuesAll, repository.DuesDue, repository.DuesAdvance, repository.DuesClear),
		SortBy:     oneOf(q.SortBy, repository.SortName, repository.SortDueDesc, repository.SortDueAsc, repository.SortRecent),
		Limit:      s.Limit,
		Offset:     s.Offset(),
	}
	if kind == entity.PartyCustomer && (q.Type == entity.CustomerTypeDue || q.Type == entity.CustomerTypeRegular) {
		f.CustomerType = q.Type
	}

	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.ListResponse[dto.PartyResponse]{
		Data:       make([]dto.PartyResponse, 0, len(list)),
		Pagination: filter.NewPagination(s.Page, s.Limit, total),
	}
	for _, p := range list {
		out.Data = append(out.Data, toPartyResponse(p))
	}
	return out, nil
}

// Stats agregados de las partes activas del tipo indicado. Se cachean hasta la próxima mutación.
func (uc *PartyUseCase) Stats(ctx context.Context, shopID string, kind entity.PartyKind, customerType string) (*dto.PartyStatsResponse, error) {
	if kind != entity.PartyCustomer {
		customerType = ""
	}
	key := statsKey(shopID, kind, customerType)
	if cached, ok, err := uc.cache.Get(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("stats: lectura de cache")
	} else if ok {
		return cached, nil
	}

	// El cálculo compartido corre sin la cancelación del primer llamador; cada llamador deja
	// de esperar cuando se cancela su propio ctx. Una mutación que invalida entre Totals y Set
	// puede dejar agregados viejos en cache hasta que venza el TTL (STATS_CACHE_TTL_SECONDS).
	flightCtx := context.WithoutCancel(ctx)
	ch := uc.flight.DoChan(key, func() (interface{}, error) {
		t, err := uc.repo.Totals(flightCtx, shopID, kind, customerType)
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		stats := &dto.PartyStatsResponse{
			Kind:               string(kind),
			TotalParties:       t.Count,
			TotalBilled:        t.TotalBilled,
			TotalPaid:          t.TotalPaid,
			TotalDue:           t.TotalDue,
			TotalAdvance:       t.TotalAdvance,
			TotalOpeningDue:    t.OpeningDueSum,
			PartiesWithDue:     t.WithDue,
			PartiesWithAdvance: t.WithAdvance,
			CollectionRate:     ledger.CollectionRate(t.TotalBilled, t.TotalPaid),
		}
		if err := uc.cache.Set(flightCtx, key, stats); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("stats: escritura de cache")
		}
		return stats, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dto.PartyStatsResponse), nil
	}
}

// Update actualiza los datos de contacto de una parte activa.
func (uc *PartyUseCase) Update(ctx context.Context, shopID string, kind entity.PartyKind, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	p, err := uc.load(ctx, shopID, kind, id)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted {
		return nil, domain.ErrPartyDeleted
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.CustomerType != nil && kind == entity.PartyCustomer {
		p.CustomerType = *in.CustomerType
	}
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, shopID, kind)
	out := toPartyResponse(p)
	return &out, nil
}

// Delete marca la parte como eliminada (soft delete).
func (uc *PartyUseCase) Delete(ctx context.Context, shopID string, kind entity.PartyKind, id string) error {
	return uc.setDeleted(ctx, shopID, kind, id, true)
}

// Restore revierte un soft delete.
func (uc *PartyUseCase) Restore(ctx context.Context, shopID string, kind entity.PartyKind, id string) (*dto.PartyResponse, error) {
	if err := uc.setDeleted(ctx, shopID, kind, id, false); err != nil {
		return nil, err
	}
	return uc.Get(ctx, shopID, kind, id)
}

func (uc *PartyUseCase) setDeleted(ctx context.Context, shopID string, kind entity.PartyKind, id string, deleted bool) error {
	p, err := uc.load(ctx, shopID, kind, id)
	if err != nil {
		return err
	}
	if p.IsDeleted == deleted {
		return domain.ErrConflict
	}
	if err := uc.repo.SetDeleted(ctx, shopID, id, deleted); err != nil {
		return err
	}
	uc.invalidate(ctx, shopID, kind)
	return nil
}

func (uc *PartyUseCase) load(ctx context.Context, shopID string, kind entity.PartyKind, id string) (*entity.Party, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.repo.GetByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Kind != kind {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *PartyUseCase) invalidate(ctx context.Context, shopID string, kind entity.PartyKind) {
	invalidateStats(ctx, uc.cache, uc.log, shopID, kind)
}

// invalidateStats marca como obsoletos los agregados cacheados. Un fallo solo se registra:
// la mutación ya quedó confirmada en la base de datos.
func invalidateStats(ctx context.Context, cache StatsCache, log *logger.Logger, shopID string, kind entity.PartyKind) {
	if err := cache.InvalidateShop(ctx, shopID, kind); err != nil {
		log.Warn().Err(err).Str("shop_id", shopID).Str("kind", string(kind)).Msg("stats: invalidar cache")
	}
}

func statsKey(shopID string, kind entity.PartyKind, customerType string) string {
	if customerType == "" {
		customerType = "all"
	}
	return shopID + ":" + string(kind) + ":" + customerType
}

// oneOf devuelve v si está entre los permitidos; si no, el primero (valor por defecto).
func oneOf(v string, allowed ...string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return allowed[0]
}
