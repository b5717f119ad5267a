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

	appauth "github.com/jhoicas/Distripos-api/internal/application/auth"
	"github.com/jhoicas/Distripos-api/internal/application/loans"
	"github.com/jhoicas/Distripos-api/internal/application/reports"
	appsales "github.com/jhoicas/Distripos-api/internal/application/sales"
	appstock "github.com/jhoicas/Distripos-api/internal/application/stock"
	"github.com/jhoicas/Distripos-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/Distripos-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/Distripos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Distripos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Distripos-api/internal/infrastructure/redisx"
	"github.com/jhoicas/Distripos-api/internal/jobs"
	httpRouter "github.com/jhoicas/Distripos-api/internal/interfaces/http"
	"github.com/jhoicas/Distripos-api/pkg/config"
	"github.com/jhoicas/Distripos-api/pkg/logger"
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

	// Repositorios sobre el pool (las escrituras transaccionales usan el TxRunner)
	stockRepo := postgres.NewStockRepository(pool)
	shopStockRepo := postgres.NewShopStockRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	packageRepo := postgres.NewPackageRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de reportes (opcional: REDIS_ADDR vacío lo deshabilita)
	var reportCache *redisx.ReportCache
	if cfg.Redis.Addr != "" {
		rdb := redisx.New(cfg.Redis.Addr)
		defer rdb.Close()
		reportCache = redisx.NewReportCache(rdb, time.Duration(cfg.Redis.TTLSecs)*time.Second)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de reportes habilitado")
	}

	// Publicador de eventos de venta (opcional: KAFKA_BROKER vacío lo deshabilita)
	var publisher *infrakafka.SalePublisher
	if cfg.Kafka.Broker != "" {
		publisher = infrakafka.NewSalePublisher(cfg.Kafka.Broker, cfg.Kafka.Topic, log.Component("kafka"))
		defer publisher.Close()
		log.Info().Str("broker", cfg.Kafka.Broker).Str("topic", cfg.Kafka.Topic).Msg("publicador de eventos habilitado")
	}

	receiptGen := infrapdf.NewReceiptGenerator()

	// Un puntero nil dentro de una interfaz no es una interfaz nil:
	// solo se asigna cuando el componente existe.
	var eventPublisher appsales.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	var cacheInvalidator appsales.ReportCacheInvalidator
	if reportCache != nil {
		cacheInvalidator = reportCache
	}

	saleUC := appsales.NewUseCase(
		txRunner, saleRepo, stockRepo, shopRepo, customerRepo,
		eventPublisher, cacheInvalidator, receiptGen,
	)
	stockUC := appstock.NewUseCase(txRunner, stockRepo, shopStockRepo, shopRepo, categoryRepo)
	loanUC := loans.NewUseCase(txRunner, loanRepo, paymentRepo, saleRepo, customerRepo)
	reportUC := reports.NewUseCase(reportRepo, reportCache)
	authUC := appauth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	shopUC := usecase.NewShopUseCase(shopRepo, shopStockRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, packageRepo)
	packageUC := usecase.NewPackageUseCase(packageRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, cacheInvalidator)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)

	// Job diario: resumen de ventas del día anterior
	summaryJob := jobs.NewDailySummary(reportRepo, log)
	if err := summaryJob.Start(); err != nil {
		log.Error().Err(err).Msg("programar resumen diario")
	}
	defer summaryJob.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.InitMetrics()
	app.Use(httpRouter.PrometheusMiddleware())
	app.Get("/metrics", httpRouter.MetricsHandler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Distripos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SaleUC:     saleUC,
		StockUC:    stockUC,
		LoanUC:     loanUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		ShopUC:     shopUC,
		CustomerUC: customerUC,
		PackageUC:  packageUC,
		ExpenseUC:  expenseUC,
		CategoryUC: categoryUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log,
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
