package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/application/auth"
	"github.com/jhoicas/Khata-api/internal/application/billing"
	"github.com/jhoicas/Khata-api/internal/application/usecase"
	"github.com/jhoicas/Khata-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Khata-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Khata-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Khata-api/internal/interfaces/http"
	"github.com/jhoicas/Khata-api/pkg/config"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Montos como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// Cache de /stats: opcional; sin Redis cada consulta va a la base.
	var statsCache billing.StatsCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, stats sin cache")
		} else {
			defer client.Close()
			statsCache = cache.NewRedisStatsCache(client, cfg.Redis.StatsTTL)
		}
	}

	shopRepo := postgres.NewShopRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	partyRepo := postgres.NewPartyRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	now := billing.ClockIn(cfg.Shop.Location())
	partyUC := billing.NewPartyUseCase(partyRepo, statsCache, log, now)
	billUC := billing.NewBillUseCase(txRunner, billRepo, statsCache, log, now, cfg.Report.ExportLimit)
	paymentUC := billing.NewPaymentUseCase(txRunner, partyRepo, paymentRepo, statsCache, log, now, cfg.Report.ExportLimit)
	reportUC := billing.NewReportUseCase(
		shopRepo, partyRepo, billUC, paymentUC, infrapdf.NewMarotoRenderer(), log, now,
		billing.RetryPolicy{MaxRetries: uint64(cfg.Report.MaxRetries), InitialDelay: cfg.Report.RetryDelay},
	)
	authUC := auth.NewAuthUseCase(userRepo, shopRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Khata API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ShopUC:    usecase.NewShopUseCase(shopRepo),
		UserUC:    usecase.NewUserUseCase(userRepo),
		AuthUC:    authUC,
		PartyUC:   partyUC,
		BillUC:    billUC,
		PaymentUC: paymentUC,
		ReportUC:  reportUC,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
