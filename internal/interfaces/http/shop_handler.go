package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/application/usecase"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// ShopHandler maneja las peticiones HTTP de tiendas.
type ShopHandler struct {
	uc  *usecase.ShopUseCase
	log *logger.Logger
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase, log *logger.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShopRequest  true  "nombre, contacto y zona horaria"
// @Success      201   {object}  dto.DataResponse[dto.ShopResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShopRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	shop, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[*dto.ShopResponse]{Data: shop})
}

// GetByID godoc
// @Summary      Detalle de tienda
// @Tags         shops
// @Produce      json
// @Param        id  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.DataResponse[dto.ShopResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	// Un usuario solo ve su propia tienda.
	if id != GetShopID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
	}
	shop, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if shop == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
	}
	return c.JSON(dto.DataResponse[*dto.ShopResponse]{Data: shop})
}
