package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest body para POST /api/payments.
type RecordPaymentRequest struct {
	EntityID      string          `json:"entityId" validate:"required,uuid"`
	EntityType    string          `json:"entityType" validate:"required,oneof=customer wholesaler"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=cash card online upi"`
	Notes         string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// PaymentResponse abono en respuestas.
type PaymentResponse struct {
	ID            string          `json:"_id"`
	EntityID      string          `json:"entityId"`
	EntityType    string          `json:"entityType"`
	EntityName    string          `json:"entityName,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RecordPaymentResponse abono registrado y saldo resultante de la parte.
type RecordPaymentResponse struct {
	Payment                PaymentResponse `json:"payment"`
	PreviousOutstandingDue decimal.Decimal `json:"previousOutstandingDue"`
	NewOutstandingDue      decimal.Decimal `json:"newOutstandingDue"`
	DueStatus              string          `json:"dueStatus"`
	DisplayDue             decimal.Decimal `json:"displayDue"`
}
