package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartyRequest body para POST /api/customers y POST /api/wholesalers.
// openingSales aplica a clientes y openingPurchases a mayoristas.
type CreatePartyRequest struct {
	Name             string           `json:"name" validate:"required,min=1,max=200"`
	Phone            string           `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address          string           `json:"address,omitempty" validate:"omitempty,max=500"`
	CustomerType     string           `json:"customerType,omitempty" validate:"omitempty,oneof=due regular"`
	OpeningSales     *decimal.Decimal `json:"openingSales,omitempty"`
	OpeningPurchases *decimal.Decimal `json:"openingPurchases,omitempty"`
	OpeningPayments  *decimal.Decimal `json:"openingPayments,omitempty"`
}

// UpdatePartyRequest body para PATCH /api/customers/:id y /api/wholesalers/:id.
// Los montos no se editan aquí: cambian solo por facturas y abonos.
type UpdatePartyRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	CustomerType *string `json:"customerType,omitempty" validate:"omitempty,oneof=due regular"`
}

// PartyResponse cliente o mayorista con sus totales derivados.
type PartyResponse struct {
	ID               string           `json:"_id"`
	Kind             string           `json:"kind"`
	CustomerType     string           `json:"customerType,omitempty"`
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	OpeningSales     *decimal.Decimal `json:"openingSales,omitempty"`
	OpeningPurchases *decimal.Decimal `json:"openingPurchases,omitempty"`
	OpeningPayments  decimal.Decimal  `json:"openingPayments"`
	TotalSales       *decimal.Decimal `json:"totalSales,omitempty"`
	TotalPurchased   *decimal.Decimal `json:"totalPurchased,omitempty"`
	TotalPaid        decimal.Decimal  `json:"totalPaid"`
	OpeningDue       decimal.Decimal  `json:"openingDue"`
	OutstandingDue   decimal.Decimal  `json:"outstandingDue"`
	DueStatus        string           `json:"dueStatus"`  // due | advance | clear
	DisplayDue       decimal.Decimal  `json:"displayDue"` // |outstandingDue|
	CollectionRate   decimal.Decimal  `json:"collectionRate"`
	IsDeleted        bool             `json:"isDeleted"`
	DeletedAt        *time.Time       `json:"deletedAt,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// PartyStatsResponse respuesta de GET /api/customers/stats y /api/wholesalers/stats.
type PartyStatsResponse struct {
	Kind               string          `json:"kind"`
	TotalParties       int             `json:"totalParties"`
	TotalBilled        decimal.Decimal `json:"totalBilled"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	TotalDue           decimal.Decimal `json:"totalDue"`
	TotalAdvance       decimal.Decimal `json:"totalAdvance"`
	TotalOpeningDue    decimal.Decimal `json:"totalOpeningDue"`
	PartiesWithDue     int             `json:"partiesWithDue"`
	PartiesWithAdvance int             `json:"partiesWithAdvance"`
	CollectionRate     decimal.Decimal `json:"collectionRate"`
}
