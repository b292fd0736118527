package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"pricewatch/internal/adapters/cache"
	"pricewatch/internal/adapters/catalog"
	"pricewatch/internal/adapters/fetch"
	v1 "pricewatch/internal/adapters/handler/http/v1"
	"pricewatch/internal/adapters/report"
	"pricewatch/internal/adapters/repository/postgres"
	"pricewatch/internal/adapters/sellers"
	"pricewatch/internal/config"
	"pricewatch/internal/core/port"
	"pricewatch/internal/core/service/collect"
	"pricewatch/internal/core/service/health"
	"pricewatch/internal/core/service/prices"
)

type App struct {
	cfg         *config.Config
	router      *http.ServeMux
	pool        *pgxpool.Pool
	redisClient *redis.Client

	// Services
	ledger           port.Ledger
	collectorService *collect.CollectService
	priceService     port.PriceService
	healthService    port.HealthService
	reportBuilder    *report.Builder

	// For graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (app *App) Initialize() error {
	slog.Info("Initializing application...")
	app.router = http.NewServeMux()

	// Database connection and ledger
	initCtx, cancel := context.WithTimeout(app.ctx, 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(initCtx, &app.cfg.Repository)
	if err != nil {
		slog.Error("Connection to database failed", "error", err)
		return err
	}
	app.pool = pool

	ledger, err := postgres.NewLedger(initCtx, pool)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger: %w", err)
	}
	app.ledger = ledger
	slog.Info("Database connected successfully")

	// Redis connection; the cache is optional
	redisClient := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", app.cfg.Cache.RedisHost, app.cfg.Cache.RedisPort),
		Password:     app.cfg.Cache.RedisPassword,
		DB:           app.cfg.Cache.RedisDB,
		PoolSize:     app.cfg.Cache.PoolSize,
		MinIdleConns: app.cfg.Cache.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	var cacheAdapter port.Cache
	if err := redisClient.Ping(initCtx).Err(); err != nil {
		slog.Warn("Redis connection failed, continuing without cache", "error", err)
		app.redisClient = nil
	} else {
		app.redisClient = redisClient
		cacheAdapter = cache.NewRedisAdapter(redisClient)
		slog.Info("Redis connected successfully")
	}

	// Seller profiles and catalog
	profiles := sellers.Enabled(app.cfg.Tracking.Sellers)
	if len(profiles) == 0 {
		return fmt.Errorf("no seller profiles enabled (configured: %v)", app.cfg.Tracking.Sellers)
	}
	productCatalog := catalog.NewCSVCatalog(app.cfg.Tracking.CatalogPath, profiles)

	// Collector with its live/test fetcher pair
	app.collectorService = collect.NewCollectService(
		ledger,
		cacheAdapter,
		productCatalog,
		profiles,
		fetch.NewHTTPFetcher(25*time.Second),
		fetch.NewStaticFetcher(),
		app.cfg.Tracking.TrackedSeller,
		time.Duration(app.cfg.Tracking.RequestDelayMs)*time.Millisecond,
	)
	if app.cfg.Tracking.Mode == collect.ModeTest {
		if err := app.collectorService.SwitchToTestMode(); err != nil {
			return err
		}
	}

	// Query and health services
	app.priceService = prices.NewPriceService(ledger, cacheAdapter, app.cfg.Tracking.TrackedSeller)
	app.healthService = health.NewHealthService(ledger, cacheAdapter, app.collectorService)
	app.reportBuilder = report.NewBuilder(ledger, app.cfg.Tracking.TrackedSeller)

	// Handlers (adapters layer)
	priceHandler := v1.NewPriceHandler(app.priceService, app.reportBuilder)
	collectorHandler := v1.NewCollectorHandler(app.collectorService)
	healthHandler := v1.NewHealthHandler(app.healthService)

	v1.SetRoutes(app.router, priceHandler, collectorHandler, healthHandler)

	// Recurring collection
	if err := app.collectorService.StartSchedule(app.cfg.Tracking.Schedule); err != nil {
		return err
	}

	slog.Info("Application initialized successfully")
	return nil
}

func (app *App) Run() {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.App.Port),
		Handler: app.router,
	}

	slog.Info("Starting server", "port", app.cfg.App.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server error", "error", err)
		return
	}
}

// CollectOnce runs a single collection pass and writes the report file.
// Used by the --once flag for cron-less operation.
func (app *App) CollectOnce() error {
	rows, err := app.collectorService.Run(app.ctx)
	if err != nil {
		return err
	}
	slog.Info("Collection finished", "rows", rows)

	path, err := app.reportBuilder.Write(app.ctx, app.cfg.Tracking.ReportDir)
	if err != nil {
		return err
	}
	slog.Info("Report written", "path", path)

	changes, err := app.priceService.RankChanges(app.ctx)
	if err != nil {
		return err
	}
	if body := report.AlertBody(changes); body != "" {
		slog.Info("Rank changes detected", "count", len(changes))
		fmt.Print(body)
	} else {
		slog.Info("No rank changes detected")
	}
	return nil
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	slog.Info("Shutting down application...")

	// Cancel context to stop background work
	app.cancel()

	if app.collectorService != nil {
		app.collectorService.StopSchedule()
	}

	if app.pool != nil {
		app.pool.Close()
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}
