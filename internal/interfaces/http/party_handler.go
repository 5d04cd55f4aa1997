package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Khata-api/internal/application/billing"
	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// PartyHandler maneja clientes o mayoristas; el tipo queda fijo al construirlo.
type PartyHandler struct {
	uc   *billing.PartyUseCase
	kind entity.PartyKind
	log  *logger.Logger
}

// NewPartyHandler construye el handler para un tipo de parte.
func NewPartyHandler(uc *billing.PartyUseCase, kind entity.PartyKind, log *logger.Logger) *PartyHandler {
	return &PartyHandler{uc: uc, kind: kind, log: log}
}

// Create godoc
// @Summary      Crear cliente o mayorista
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "nombre y saldos de apertura"
// @Success      201   {object}  dto.DataResponse[dto.PartyResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
// @Router       /api/wholesalers [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var in dto.CreatePartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), shopID, h.kind, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[*dto.PartyResponse]{Data: out})
}

// List godoc
// @Summary      Listar clientes o mayoristas
// @Tags         parties
// @Produce      json
// @Param        page        query  int     false  "página (1..)"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        search      query  string  false  "nombre o teléfono"
// @Param        status      query  string  false  "active | deleted | all"
// @Param        duesFilter  query  string  false  "all | due | advance | clear"
// @Param        sortBy      query  string  false  "name | due_desc | due_asc | recent"
// @Param        type        query  string  false  "due | regular (solo clientes)"
// @Success      200  {object}  dto.ListResponse[dto.PartyResponse]
// @Router       /api/customers [get]
// @Router       /api/wholesalers [get]
func (h *PartyHandler) List(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var q dto.PartyListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), shopID, h.kind, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Totales agregados de la cartera
// @Tags         parties
// @Produce      json
// @Param        type  query  string  false  "due | regular (solo clientes)"
// @Success      200  {object}  dto.DataResponse[dto.PartyStatsResponse]
// @Router       /api/customers/stats [get]
// @Router       /api/wholesalers/stats [get]
func (h *PartyHandler) Stats(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Stats(c.UserContext(), shopID, h.kind, c.Query("type"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse[*dto.PartyStatsResponse]{Data: out})
}

// GetByID godoc
// @Summary      Detalle de cliente o mayorista
// @Tags         parties
// @Produce      json
// @Param        id  path  string  true  "ID de la parte"
// @Success      200  {object}  dto.DataResponse[dto.PartyResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
// @Router       /api/wholesalers/{id} [get]
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), shopID, h.kind, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse[*dto.PartyResponse]{Data: out})
}

// Update godoc
// @Summary      Editar datos de contacto
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la parte"
// @Param        body  body  dto.UpdatePartyRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.DataResponse[dto.PartyResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [patch]
// @Router       /api/wholesalers/{id} [patch]
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	var in dto.UpdatePartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), shopID, h.kind, c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse[*dto.PartyResponse]{Data: out})
}

// Delete godoc
// @Summary      Eliminar (borrado lógico)
// @Tags         parties
// @Param        id  path  string  true  "ID de la parte"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
// @Router       /api/wholesalers/{id} [delete]
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), shopID, h.kind, c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar una parte eliminada
// @Tags         parties
// @Produce      json
// @Param        id  path  string  true  "ID de la parte"
// @Success      200  {object}  dto.DataResponse[dto.PartyResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/restore [patch]
// @Router       /api/wholesalers/{id}/restore [patch]
func (h *PartyHandler) Restore(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Restore(c.UserContext(), shopID, h.kind, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse[*dto.PartyResponse]{Data: out})
}
