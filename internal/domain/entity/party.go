package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyKind distingue clientes (ventas) de mayoristas (compras).
type PartyKind string

const (
	PartyCustomer   PartyKind = "customer"
	PartyWholesaler PartyKind = "wholesaler"
)

// Valid indica si el tipo es conocido.
func (k PartyKind) Valid() bool {
	return k == PartyCustomer || k == PartyWholesaler
}

// BillType devuelve el tipo de factura que corresponde a la parte.
func (k PartyKind) BillType() BillType {
	if k == PartyWholesaler {
		return BillPurchase
	}
	return BillSale
}

// Tipos de cliente.
const (
	CustomerTypeDue     = "due"
	CustomerTypeRegular = "regular"
)

// Party representa un cliente o un mayorista con su libro de deudas.
//
// OpeningBalance es la deuda previa al sistema (openingSales / openingPurchases) y
// OpeningPayments el crédito previo. TotalBilled y TotalPaid son acumulados de por vida
// e incluyen los valores de apertura.
type Party struct {
	ID              string
	ShopID          string
	Kind            PartyKind
	CustomerType    string // solo clientes: due | regular
	Name            string
	Phone           string
	Address         string
	OpeningBalance  decimal.Decimal
	OpeningPayments decimal.Decimal
	TotalBilled     decimal.Decimal
	TotalPaid       decimal.Decimal
	IsDeleted       bool
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OutstandingDue saldo neto: positivo = la parte le debe a la tienda, negativo = anticipo.
func (p *Party) OutstandingDue() decimal.Decimal {
	return p.TotalBilled.Sub(p.TotalPaid)
}
