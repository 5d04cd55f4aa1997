package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillType venta (clientes) o compra (mayoristas).
type BillType string

const (
	BillSale     BillType = "sale"
	BillPurchase BillType = "purchase"
)

// Valid indica si el tipo es conocido.
func (t BillType) Valid() bool {
	return t == BillSale || t == BillPurchase
}

// Bill representa una factura ya emitida. Inmutable una vez creada.
type Bill struct {
	ID            string
	ShopID        string
	PartyID       string
	PartyName     string // denormalizado para listados y PDF
	BillNumber    string
	BillType      BillType
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	DueAmount     *decimal.Decimal // nil cuando la fila no trae el valor calculado
	PaymentMethod string
	Notes         string
	CreatedAt     time.Time
}
