package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Khata-api/internal/application/billing"
	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// BillHandler maneja las facturas de venta y compra.
type BillHandler struct {
	uc      *billing.BillUseCase
	reports *billing.ReportUseCase
	log     *logger.Logger
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.BillUseCase, reports *billing.ReportUseCase, log *logger.Logger) *BillHandler {
	return &BillHandler{uc: uc, reports: reports, log: log}
}

// Create godoc
// @Summary      Registrar factura
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "parte, total y abono inicial"
// @Success      201   {object}  dto.DataResponse[dto.BillResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var in dto.CreateBillRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), shopID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[*dto.BillResponse]{Data: out})
}

// GetByID godoc
// @Summary      Detalle de factura
// @Tags         bills
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.DataResponse[dto.BillResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), shopID, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse[*dto.BillResponse]{Data: out})
}

// List godoc
// @Summary      Listar facturas
// @Tags         bills
// @Produce      json
// @Param        entityId    query  string  false  "filtrar por parte"
// @Param        billType    query  string  false  "sale | purchase"
// @Param        page        query  int     false  "página (1..)"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        search      query  string  false  "número de factura o nombre"
// @Param        timeFilter  query  string  false  "all | today | yesterday | this_week | this_month | this_year | custom"
// @Param        startDate   query  string  false  "YYYY-MM-DD (custom)"
// @Param        endDate     query  string  false  "YYYY-MM-DD (custom)"
// @Success      200  {object}  dto.ListResponse[dto.BillResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var q dto.BillListQuery
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
// @Summary      Exportar facturas (mismos filtros, sin paginar hasta el límite de exportación)
// @Tags         bills
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.BillResponse]
// @Router       /api/bills/export [get]
func (h *BillHandler) Export(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var q dto.BillListQuery
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
// @Summary      Reporte PDF de facturas
// @Tags         bills
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/bills/report.pdf [get]
func (h *BillHandler) ReportPDF(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var q dto.BillListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	pdf, name, err := h.reports.BillReportPDF(c.UserContext(), shopID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendPDF(c, pdf, name)
}

// InvoicePDF godoc
// @Summary      PDF de una factura
// @Tags         bills
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/pdf [get]
func (h *BillHandler) InvoicePDF(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	pdf, name, err := h.reports.BillInvoicePDF(c.UserContext(), shopID, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendPDF(c, pdf, name)
}

// sendPDF responde el documento como adjunto descargable.
func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
