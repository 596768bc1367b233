package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/auth"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/inventory"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/reports"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/scan"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC *inventory.UseCase
	ScanUC      *scan.UseCase
	ReportsUC   *reports.UseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Lotes (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.InventoryUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Post("/", productHandler.Create)
	// Solo admin y farmacéutico pueden dar de baja; el auditor solo consulta.
	products.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleFarmaceutico), productHandler.Delete)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.InventoryUC)
	protected.Get("/dashboard", dashboardHandler.Get)

	// Captura por cámara (protegido)
	scanGroup := protected.Group("/scan", RequireRole(entity.RoleAdmin, entity.RoleFarmaceutico))
	scanHandler := NewScanHandler(deps.ScanUC)
	scanGroup.Post("/", scanHandler.Process)
	scanGroup.Post("/confirm", scanHandler.Confirm)

	// Reportes (protegido)
	reportHandler := NewReportHandler(deps.ReportsUC)
	protected.Get("/reports/expiry", reportHandler.Expiry)
}
