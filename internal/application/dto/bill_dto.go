package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest body para POST /api/bills. El tipo (sale/purchase) se deduce de la parte.
type CreateBillRequest struct {
	EntityID      string          `json:"entityId" validate:"required,uuid"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PaymentMethod string          `json:"paymentMethod" validate:"omitempty,oneof=cash card online upi"`
	Notes         string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BillResponse factura en respuestas.
type BillResponse struct {
	ID            string          `json:"_id"`
	BillNumber    string          `json:"billNumber"`
	BillType      string          `json:"billType"`
	EntityID      string          `json:"entityId"`
	EntityName    string          `json:"entityName,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	DueAmount     decimal.Decimal `json:"dueAmount"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
