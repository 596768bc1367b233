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
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/auth"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/inventory"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/ports"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/reports"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/scan"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/repository"
	infraai "github.com/vasconcelosjoey-hue/lote-certo/internal/infrastructure/ai"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/infrastructure/localstore"
	infrapdf "github.com/vasconcelosjoey-hue/lote-certo/internal/infrastructure/pdf"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/infrastructure/postgres"
	httpRouter "github.com/vasconcelosjoey-hue/lote-certo/internal/interfaces/http"
	"github.com/vasconcelosjoey-hue/lote-certo/pkg/config"
	"github.com/vasconcelosjoey-hue/lote-certo/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL si está configurado, archivo JSON local si no.
	storeLog := log.Component("store")
	var (
		productRepo repository.ProductRepository
		userRepo    repository.UserRepository
	)
	if cfg.DB.Configured() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			storeLog.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		productRepo = postgres.NewProductRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		storeLog.Info().Msg("almacén: PostgreSQL")
	} else {
		ps, err := localstore.NewProductStore(cfg.Store.LocalPath)
		if err != nil {
			storeLog.Fatal().Err(err).Str("path", cfg.Store.LocalPath).Msg("abrir almacén local")
		}
		us, err := localstore.NewUserStore(cfg.Store.LocalUsersPath())
		if err != nil {
			storeLog.Fatal().Err(err).Msg("abrir almacén local de usuarios")
		}
		productRepo = ps
		userRepo = us
		storeLog.Warn().Str("path", cfg.Store.LocalPath).Msg("almacén: archivo JSON local (sin PostgreSQL)")
	}

	// Servicio de visión según el proveedor configurado.
	var visionSvc ports.VisionService
	switch cfg.AI.Provider {
	case "anthropic":
		visionSvc = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	default:
		visionSvc = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}
	log.Component("vision").Info().Str("provider", cfg.AI.Provider).Msg("servicio de visión configurado")

	inventoryUC := inventory.NewUseCase(productRepo, nil)
	scanUC := scan.NewUseCase(visionSvc, productRepo, nil)
	reportGen := infrapdf.NewMarotoReportGenerator()
	reportsUC := reports.NewUseCase(inventoryUC, reportGen, nil)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30, // las capturas en base64 pesan varios MB
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC: inventoryUC,
		ScanUC:      scanUC,
		ReportsUC:   reportsUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
