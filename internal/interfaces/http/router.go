package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Khata-api/internal/application/auth"
	"github.com/jhoicas/Khata-api/internal/application/billing"
	"github.com/jhoicas/Khata-api/internal/application/usecase"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ShopUC    *usecase.ShopUseCase
	UserUC    *usecase.UserUseCase
	AuthUC    *auth.AuthUseCase
	PartyUC   *billing.PartyUseCase
	BillUC    *billing.BillUseCase
	PaymentUC *billing.PaymentUseCase
	ReportUC  *billing.ReportUseCase
	Logger    *logger.Logger
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público salvo /me; el registro público solo crea al dueño de una tienda sin usuarios)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Alta de tienda (público: es el primer paso antes de registrar al dueño)
	shopHandler := NewShopHandler(deps.ShopUC, log)
	api.Post("/shops", shopHandler.Create)

	// Rutas protegidas (requieren Bearer Token y una tienda vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireShop(deps.ShopUC, log))
	protected.Get("/shops/:id", shopHandler.GetByID)

	ownerOnly := RequireRole(entity.RoleOwner)
	protected.Post("/users", ownerOnly, authHandler.AddMember)

	// Clientes y mayoristas comparten handler; cambia solo el tipo.
	for prefix, kind := range map[string]entity.PartyKind{
		"/customers":   entity.PartyCustomer,
		"/wholesalers": entity.PartyWholesaler,
	} {
		h := NewPartyHandler(deps.PartyUC, kind, log)
		g := protected.Group(prefix)
		g.Get("/", h.List)
		g.Get("/stats", h.Stats)
		g.Post("/", h.Create)
		g.Get("/:id", h.GetByID)
		g.Patch("/:id", h.Update)
		g.Delete("/:id", ownerOnly, h.Delete)
		g.Patch("/:id/restore", ownerOnly, h.Restore)
	}

	// Facturas
	bills := protected.Group("/bills")
	billHandler := NewBillHandler(deps.BillUC, deps.ReportUC, log)
	bills.Get("/", billHandler.List)
	bills.Get("/export", billHandler.Export)
	bills.Get("/report.pdf", billHandler.ReportPDF)
	bills.Post("/", billHandler.Create)
	bills.Get("/:id", billHandler.GetByID)
	bills.Get("/:id/pdf", billHandler.InvoicePDF)

	// Abonos
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.ReportUC, log)
	payments.Get("/", paymentHandler.List)
	payments.Get("/export", paymentHandler.Export)
	payments.Get("/report.pdf", paymentHandler.ReportPDF)
	payments.Get("/customer/:id", paymentHandler.ByCustomer)
	payments.Get("/wholesaler/:id", paymentHandler.ByWholesaler)
	payments.Post("/", paymentHandler.Record)
}
