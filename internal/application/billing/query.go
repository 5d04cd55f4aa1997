package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/filter"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
)

// Clock devuelve la hora actual en la zona de la tienda.
type Clock func() time.Time

// ClockIn reloj en la zona horaria indicada.
func ClockIn(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// listState construye el estado de filtro a partir de los query params.
// Un rango personalizado incompleto o inválido es un error de validación.
func listState(page, limit int, search, timeFilter, startDate, endDate string) (filter.State, error) {
	tf, err := filter.ParseTimeFilter(timeFilter, startDate, endDate)
	if err != nil {
		return filter.State{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	s := filter.NewState(limit).WithSearch(search).WithTimeFilter(tf).WithPage(page)
	return s.Normalize(), nil
}

// rangeBounds resuelve el filtro de tiempo a límites [from, to) para el repositorio.
func rangeBounds(s filter.State, now time.Time) (from, to *time.Time, label string) {
	r, ok := s.Time.Resolve(now)
	if !ok {
		return nil, nil, "All time"
	}
	start, end := r.Start, r.End
	return &start, &end, r.StartDate() + " to " + r.EndDate()
}

// entityID valida el filtro opcional por parte.
func entityID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: entityId inválido", domain.ErrInvalidInput)
	}
	return id, nil
}

func billFilter(shopID string, q dto.BillListQuery, s filter.State, now time.Time) (repository.BillListFilter, string, error) {
	f := repository.BillListFilter{
		ShopID: shopID,
		Search: s.Search,
		Limit:  s.Limit,
		Offset: s.Offset(),
	}
	id, err := entityID(q.EntityID)
	if err != nil {
		return f, "", err
	}
	f.PartyID = id
	if q.BillType != "" {
		bt := entity.BillType(q.BillType)
		if !bt.Valid() {
			return f, "", fmt.Errorf("%w: billType debe ser sale o purchase", domain.ErrInvalidInput)
		}
		f.BillType = bt
	}
	var label string
	f.From, f.To, label = rangeBounds(s, now)
	return f, label, nil
}

func paymentFilter(shopID string, q dto.PaymentListQuery, s filter.State, now time.Time) (repository.PaymentListFilter, string, error) {
	f := repository.PaymentListFilter{
		ShopID: shopID,
		Search: s.Search,
		Limit:  s.Limit,
		Offset: s.Offset(),
	}
	id, err := entityID(q.EntityID)
	if err != nil {
		return f, "", err
	}
	f.PartyID = id
	if q.EntityType != "" {
		k := entity.PartyKind(q.EntityType)
		if !k.Valid() {
			return f, "", fmt.Errorf("%w: entityType debe ser customer o wholesaler", domain.ErrInvalidInput)
		}
		f.PartyKind = k
	}
	if q.PaymentMethod != "" && q.PaymentMethod != "all" {
		if !entity.ValidPaymentMethod(q.PaymentMethod) {
			return f, "", fmt.Errorf("%w: paymentMethod inválido", domain.ErrInvalidInput)
		}
		f.PaymentMethod = q.PaymentMethod
	}
	var label string
	f.From, f.To, label = rangeBounds(s, now)
	return f, label, nil
}
