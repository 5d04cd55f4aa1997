package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
)

// Filtros de estado del listado de partes.
const (
	PartyStatusActive  = "active"
	PartyStatusDeleted = "deleted"
	PartyStatusAll     = "all"
)

// Filtros de saldo.
const (
	DuesAll     = "all"
	DuesDue     = "due"
	DuesAdvance = "advance"
	DuesClear   = "clear"
)

// Ordenamientos.
const (
	SortName    = "name"
	SortDueDesc = "due_desc"
	SortDueAsc  = "due_asc"
	SortRecent  = "recent"
)

// PartyListFilter parámetros de GET /customers y GET /wholesalers.
type PartyListFilter struct {
	ShopID       string
	Kind         entity.PartyKind
	CustomerType string // vacío = todos
	Search       string // nombre o teléfono
	Status       string
	DuesFilter   string
	SortBy       string
	Limit        int
	Offset       int
}

// PartyTotals agregados de las partes de un tipo (para /stats).
type PartyTotals struct {
	Count         int
	TotalBilled   decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalDue      decimal.Decimal // suma de saldos positivos
	TotalAdvance  decimal.Decimal // suma de |saldos negativos|
	WithDue       int
	WithAdvance   int
	OpeningDueSum decimal.Decimal
}

// PartyRepository define el puerto de persistencia para clientes y mayoristas.
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, shopID, id string) (*entity.Party, error)
	// GetForUpdate bloquea la fila dentro de la transacción en curso.
	GetForUpdate(ctx context.Context, shopID, id string) (*entity.Party, error)
	List(ctx context.Context, f PartyListFilter) ([]*entity.Party, int, error)
	Update(ctx context.Context, party *entity.Party) error
	// AddTotals suma deltas a los acumulados de por vida.
	AddTotals(ctx context.Context, shopID, id string, billed, paid decimal.Decimal) error
	SetDeleted(ctx context.Context, shopID, id string, deleted bool) error
	Totals(ctx context.Context, shopID string, kind entity.PartyKind, customerType string) (*PartyTotals, error)
}
