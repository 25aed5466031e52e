package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-inquiry-api/internal/application/auth"
	appsales "github.com/jhoicas/sales-inquiry-api/internal/application/sales"
	"github.com/jhoicas/sales-inquiry-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC  *auth.AuthUseCase
	SalesUC *appsales.SalesUseCase
	Tokens  TokenVerifier
	Metrics *metrics.Metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/setup-password", authHandler.SetupPassword)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.Tokens)
	authGroup.Post("/change-password", requireAuth, authHandler.ChangePassword)

	// Ventas (protegido; el ámbito sale del token)
	salesHandler := NewSalesHandler(deps.SalesUC, deps.Metrics)
	sales := api.Group("/sales", requireAuth)
	sales.Get("/", salesHandler.Search)
	sales.Get("/export", salesHandler.ExportXLSX)
	sales.Get("/export/pdf", salesHandler.ExportPDF)
}
