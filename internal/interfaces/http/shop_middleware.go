package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// shopChecker es el contrato mínimo que necesita el middleware para verificar la tienda.
// Lo implementa *usecase.ShopUseCase; el uso de interfaz evita el import circular.
type shopChecker interface {
	Exists(ctx context.Context, shopID string) (bool, error)
}

// RequireShop verifica que la tienda del token JWT siga existiendo.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalShopID).
//
// Comportamiento:
//   - 401 Unauthorized → no hay shop_id en el contexto.
//   - 403 Forbidden → la tienda ya no existe.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireShop(checker shopChecker, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		shopID := GetShopID(c)
		if shopID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "shop_id no encontrado en el token",
			})
		}

		ok, err := checker.Exists(c.UserContext(), shopID)
		if err != nil {
			log.Error().Err(err).Str("shop_id", shopID).Str("path", c.Path()).
				Str("request_id", GetRequestID(c)).Msg("SHOP_CHECK_FAILED")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SHOP_CHECK_FAILED",
				Message: "no se pudo verificar la tienda, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SHOP_NOT_FOUND",
				Message: "la tienda del token no existe",
			})
		}
		return c.Next()
	}
}
