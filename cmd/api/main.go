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

	"github.com/tu-usuario/taller-api/internal/application/auth"
	"github.com/tu-usuario/taller-api/internal/application/bootstrap"
	"github.com/tu-usuario/taller-api/internal/application/customer"
	"github.com/tu-usuario/taller-api/internal/application/employee"
	appjob "github.com/tu-usuario/taller-api/internal/application/job"
	"github.com/tu-usuario/taller-api/internal/application/stock"
	"github.com/tu-usuario/taller-api/internal/infrastructure/excel"
	"github.com/tu-usuario/taller-api/internal/infrastructure/mail"
	infrapdf "github.com/tu-usuario/taller-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/taller-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/taller-api/internal/infrastructure/rediscache"
	httpRouter "github.com/tu-usuario/taller-api/internal/interfaces/http"
	"github.com/tu-usuario/taller-api/pkg/config"
	"github.com/tu-usuario/taller-api/pkg/idgen"
	"github.com/tu-usuario/taller-api/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	employeeRepo := postgres.NewEmployeeRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	codes, err := idgen.New(cfg.App.SnowflakeNode)
	if err != nil {
		log.Fatal().Err(err).Msg("generador de códigos de trabajo")
	}

	// Cache de consulta pública de estado. Sin REDIS_ADDR la API funciona
	// igual, cada consulta va directo a la DB.
	var statusCache appjob.StatusCache = rediscache.Noop{}
	if cfg.Redis.Addr != "" {
		redisCache, err := rediscache.New(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, cache de estado deshabilitada")
		} else {
			statusCache = redisCache
		}
	}

	notifier := mail.NewGomailNotifier(cfg.SMTP)
	pdfGenerator := infrapdf.NewMarotoReceiptGenerator()
	stockExporter := excel.NewStockExporter()

	authUC := auth.NewAuthUseCase(employeeRepo, auth.JWTConfig{
		Secret:  cfg.JWT.Secret,
		ExpDays: cfg.JWT.ExpDays,
		Issuer:  cfg.JWT.Issuer,
	}, cfg.Admin.ResetSecret, log)
	employeeUC := employee.NewEmployeeUseCase(employeeRepo)
	customerUC := customer.NewCustomerUseCase(customerRepo)
	stockUC := stock.NewStockUseCase(stockRepo, txRunner, stockExporter)
	jobUC := appjob.NewJobUseCase(jobRepo, txRunner, codes, notifier, statusCache, log)
	jobPDFUC := appjob.NewPDFUseCase(jobRepo, pdfGenerator)

	if err := bootstrap.EnsureAdmin(ctx, employeeRepo, bootstrap.AdminSeed{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("seed de administrador")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		EmployeeUC: employeeUC,
		CustomerUC: customerUC,
		StockUC:    stockUC,
		JobUC:      jobUC,
		JobPDFUC:   jobPDFUC,
		JWTSecret:  cfg.JWT.Secret,
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
