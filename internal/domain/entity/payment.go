package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentOnline = "online"
	PaymentUPI    = "upi"
)

// ValidPaymentMethod indica si el método es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentOnline, PaymentUPI:
		return true
	}
	return false
}

// Payment abono registrado contra una parte. Solo se agregan, nunca se editan.
type Payment struct {
	ID            string
	ShopID        string
	PartyID       string
	PartyKind     PartyKind
	PartyName     string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
	CreatedAt     time.Time
}
