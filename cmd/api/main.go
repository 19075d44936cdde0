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

	appstock "github.com/hospimed/farmacia-api/internal/application/stock"
	"github.com/hospimed/farmacia-api/internal/application/valuation"
	"github.com/hospimed/farmacia-api/internal/infrastructure/postgres"
	httpRouter "github.com/hospimed/farmacia-api/internal/interfaces/http"
	"github.com/hospimed/farmacia-api/pkg/config"
	"github.com/hospimed/farmacia-api/pkg/logger"
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

	// Repos atados al pool para lecturas; el TxRunner construye los suyos por tx
	medicineRepo := postgres.NewMedicineRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	valuationRepo := postgres.NewValuationRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Stock.LockTimeoutMS)

	ledger := appstock.NewLedger(
		txRunner,
		cfg.Stock.MaxRetries,
		time.Duration(cfg.Stock.RetryBackoffMS)*time.Millisecond,
	)
	adjustUC := appstock.NewAdjustStockUseCase(ledger)
	registerUC := appstock.NewRegisterMovementUseCase(ledger)
	queryUC := appstock.NewQueryUseCase(medicineRepo, movementRepo)
	valuationUC := valuation.NewUseCase(valuationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AdjustStock:      adjustUC,
		RegisterMovement: registerUC,
		StockQuery:       queryUC,
		Valuation:        valuationUC,
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
