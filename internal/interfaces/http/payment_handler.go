package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Khata-api/internal/application/billing"
	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// PaymentHandler maneja los abonos de clientes y mayoristas.
type PaymentHandler struct {
	uc      *billing.PaymentUseCase
	reports *billing.ReportUseCase
	log     *logger.Logger
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase, reports *billing.ReportUseCase, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, reports: reports, log: log}
}

// Record godoc
// @Summary      Registrar abono
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPaymentRequest  true  "parte, monto y método"
// @Success      201   {object}  dto.DataResponse[dto.RecordPaymentResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var in dto.RecordPaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Record(c.UserContext(), shopID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[*dto.RecordPaymentResponse]{Data: out})
}

// ByCustomer godoc
// @Summary      Abonos de un cliente
// @Tags         payments
// @Produce      json
// @Param        id     path   string  true   "ID del cliente"
// @Param        page   query  int     false  "página (1..)"
// @Param        limit  query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ListResponse[dto.PaymentResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/customer/{id} [get]
func (h *PaymentHandler) ByCustomer(c *fiber.Ctx) error {
	return h.byParty(c, entity.PartyCustomer)
}

// ByWholesaler godoc
// @Summary      Abonos a un mayorista
// @Tags         payments
// @Produce      json
// @Param        id     path   string  true   "ID del mayorista"
// @Param        page   query  int     false  "página (1..)"
// @Param        limit  query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ListResponse[dto.PaymentResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/wholesaler/{id} [get]
func (h *PaymentHandler) ByWholesaler(c *fiber.Ctx) error {
	return h.byParty(c, entity.PartyWholesaler)
}

func (h *PaymentHandler) byParty(c *fiber.Ctx, kind entity.PartyKind) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ListByParty(c.UserContext(), shopID, kind, c.Params("id"), c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar abonos
// @Tags         payments
// @Produce      json
// @Param        entityType     query  string  false  "customer | wholesaler"
// @Param        paymentMethod  query  string  false  "cash | card | online | upi"
// @Param        page           query  int     false  "página (1..)"
// @Param        limit          query  int     false  "tamaño de página"
// @Param        search         query  string  false  "nombre o notas"
// @Param        timeFilter     query  string  false  "all | today | yesterday | this_week | this_month | this_year | custom"
// @Param        startDate      query  string  false  "YYYY-MM-DD (custom)"
// @Param        endDate        query  string  false  "YYYY-MM-DD (custom)"
// @Success      200  {object}  dto.ListResponse[dto.PaymentResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var q dto.PaymentListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), shopID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar abonos (mismos filtros, hasta el límite de exportación)
// @Tags         payments
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.PaymentResponse]
// @Router       /api/payments/export [get]
func (h *PaymentHandler) Export(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var q dto.PaymentListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.Export(c.UserContext(), shopID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte PDF de abonos con subtotales por método
// @Tags         payments
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/payments/report.pdf [get]
func (h *PaymentHandler) ReportPDF(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var q dto.PaymentListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	pdf, name, err := h.reports.PaymentReportPDF(c.UserContext(), shopID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendPDF(c, pdf, name)
}
