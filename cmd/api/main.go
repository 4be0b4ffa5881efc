package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	appanalytics "github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/application/auth"
	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/application/usecase"
	infrapdf "github.com/jhoicas/farmacia-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/farmacia-pos/internal/interfaces/http"
	"github.com/jhoicas/farmacia-pos/pkg/config"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyMovementUC := inventory.NewApplyMovementUseCase(txRunner, movementRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, applyMovementUC, customerRepo, productRepo, saleRepo)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(infrapdf.PharmacyInfo{
		Name: cfg.App.Name,
	})
	receiptUC := sales.NewReceiptUseCase(saleRepo, receiptGenerator)

	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	reportsUC := appanalytics.NewReportsUseCase(analyticsRepo, productRepo, saleRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Job nocturno: alerta de stock bajo y productos próximos a vencer.
	scheduler := cron.New()
	_, err = scheduler.AddFunc("0 6 * * *", func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		now := time.Now().UTC()
		items, err := reportsUC.GetInventoryReport(jobCtx)
		if err != nil {
			log.Error().Err(err).Msg("job: reporte de inventario")
			return
		}
		low := 0
		for _, it := range items {
			if it.LowStock {
				low++
			}
		}
		expiring, err := reportsUC.GetExpiringProducts(jobCtx, now, 30)
		if err != nil {
			log.Error().Err(err).Msg("job: productos por vencer")
			return
		}
		log.Info().
			Int("low_stock", low).
			Int("expiring_30d", len(expiring)).
			Msg("revisión diaria de inventario")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("registrar job de inventario")
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		CategoryUC:    categoryUC,
		SupplierUC:    supplierUC,
		UserUC:        userUC,
		ApplyMovement: applyMovementUC,
		CreateSale:    createSaleUC,
		Receipt:       receiptUC,
		DashboardUC:   dashboardUC,
		ReportsUC:     reportsUC,
		JWTSecret:     cfg.JWT.Secret,
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
