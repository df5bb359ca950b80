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
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/catalog"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockledger-api/internal/interfaces/http"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Bool("stock_strict", cfg.Stock.Strict).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var txRunner inventory.TxRunner
	switch cfg.DB.Driver {
	case config.DriverMemory:
		txRunner = newMemoryStore(cfg.DB, log)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		txRunner = postgres.NewTxRunner(pool)
	}

	ledger := inventory.NewStockLedger(cfg.Stock.Strict, log)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner, ledger, log)
	kitUC := inventory.NewKitUseCase(txRunner, log)
	breakKitUC := inventory.NewBreakKitUseCase(txRunner, ledger, log)
	stockUC := inventory.NewStockUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db_driver": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AdjustmentUC: adjustmentUC,
		KitUC:        kitUC,
		BreakKitUC:   breakKitUC,
		StockUC:      stockUC,
		JWTSecret:    cfg.JWT.Secret,
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

// newMemoryStore arma el almacén en memoria y carga el catálogo de DB_SEED_CSV si está definido.
func newMemoryStore(cfg config.DBConfig, log *logger.Logger) *memory.Store {
	store := memory.NewStore()
	if cfg.SeedCSV == "" {
		log.Warn().Msg("modo memory sin DB_SEED_CSV: catálogo de repuestos vacío")
		return store
	}
	f, err := os.Open(cfg.SeedCSV)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SeedCSV).Msg("abrir catálogo")
	}
	defer f.Close()
	parts, err := catalog.ReadParts(f, false)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SeedCSV).Msg("leer catálogo")
	}
	store.AddParts(parts...)
	log.Info().Int("parts", len(parts)).Msg("catálogo cargado en memoria")
	return store
}
