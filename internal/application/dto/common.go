package dto

import "github.com/jhoicas/Khata-api/internal/domain/filter"

// ListResponse cuerpo de todos los listados: {data, pagination}.
type ListResponse[T any] struct {
	Data       []T               `json:"data"`
	Pagination filter.Pagination `json:"pagination"`
}

// DataResponse cuerpo de los endpoints de detalle: {data}.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BillListQuery query de GET /api/bills, /api/bills/export y /api/bills/report.pdf.
type BillListQuery struct {
	EntityID   string `query:"entityId"`
	BillType   string `query:"billType"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Search     string `query:"search"`
	TimeFilter string `query:"timeFilter"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}

// PaymentListQuery query de GET /api/payments, /api/payments/export y /api/payments/report.pdf.
type PaymentListQuery struct {
	EntityType    string `query:"entityType"`
	EntityID      string `query:"entityId"`
	PaymentMethod string `query:"paymentMethod"`
	Page          int    `query:"page"`
	Limit         int    `query:"limit"`
	Search        string `query:"search"`
	TimeFilter    string `query:"timeFilter"`
	StartDate     string `query:"startDate"`
	EndDate       string `query:"endDate"`
}

// PartyListQuery query de GET /api/customers y /api/wholesalers.
type PartyListQuery struct {
	Type       string `query:"type"` // solo clientes: due | regular
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Search     string `query:"search"`
	Status     string `query:"status"`     // active | deleted | all
	DuesFilter string `query:"duesFilter"` // all | due | advance | clear
	SortBy     string `query:"sortBy"`     // name | due_desc | due_asc | recent
}
