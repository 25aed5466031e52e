package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/sales-inquiry-api/internal/application/auth"
	appsales "github.com/jhoicas/sales-inquiry-api/internal/application/sales"
	domainsales "github.com/jhoicas/sales-inquiry-api/internal/domain/sales"
	infrapdf "github.com/jhoicas/sales-inquiry-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sales-inquiry-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/sales-inquiry-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/sales-inquiry-api/internal/interfaces/http"
	"github.com/jhoicas/sales-inquiry-api/pkg/config"
	pkgjwt "github.com/jhoicas/sales-inquiry-api/pkg/jwt"
	"github.com/jhoicas/sales-inquiry-api/pkg/logger"
	"github.com/jhoicas/sales-inquiry-api/pkg/metrics"
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
		Str("company", cfg.Sales.Company).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tokens, err := pkgjwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager")
	}

	employeeRepo := postgres.NewEmployeeRepository(pool, cfg.Sales.Company, cfg.Sales.Lang)
	salesRepo := postgres.NewSalesRepository(pool)

	authUC := auth.NewAuthUseCase(employeeRepo, auth.NewBcryptHasher(auth.DefaultBcryptCost), tokens)
	salesUC := appsales.NewSalesUseCase(
		domainsales.NewQueryBuilder(cfg.Sales.Company, cfg.Sales.Lang),
		salesRepo,
		infraxlsx.NewExcelizeExporter(),
		infrapdf.NewMarotoReportGenerator(),
	)

	m := metrics.New()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		// El cliente web necesita leer el nombre del adjunto.
		ExposeHeaders: fiber.HeaderContentDisposition,
	}))
	app.Use(m.Middleware())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sales Inquiry API",
	}))

	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:  authUC,
		SalesUC: salesUC,
		Tokens:  tokens,
		Metrics: m,
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
