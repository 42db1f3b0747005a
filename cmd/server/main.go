package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountapp "github.com/ecuDickens/project-orders-backend/internal/application/account"
	billingapp "github.com/ecuDickens/project-orders-backend/internal/application/billing"
	catalogapp "github.com/ecuDickens/project-orders-backend/internal/application/catalog"
	orderingapp "github.com/ecuDickens/project-orders-backend/internal/application/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/cache"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/config"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/logger"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/persistence"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/telemetry"
	"github.com/ecuDickens/project-orders-backend/internal/interfaces/http/handler"
	"github.com/ecuDickens/project-orders-backend/internal/interfaces/http/middleware"
	"github.com/ecuDickens/project-orders-backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting orders backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Tracing and profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingEndpoint,
		ApplicationName: cfg.App.Name,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler, continuing without it", zap.Error(err))
	} else if profiler.IsEnabled() {
		defer profiler.Stop()
		if tracerProvider.IsEnabled() {
			if err := tracerProvider.EnableSpanProfiles(); err != nil {
				log.Warn("Failed to enable span profiles", zap.Error(err))
			}
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled && tracerProvider.IsEnabled() {
		if err := db.EnableTracing(cfg.Database.DBName); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Product cache (redis or in-process, per config)
	productCache := cache.NewProductCache(cfg, log)

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	ledger := persistence.NewGormBillingLedger(db.DB)

	// Application services
	accountService := accountapp.NewAccountService(accountRepo)
	productService := catalogapp.NewProductService(productRepo, productCache)
	orderService := orderingapp.NewOrderService(orderRepo, accountRepo, productService)
	billingService := billingapp.NewBillingService(ledger, invoiceRepo, log)
	billingMetrics, err := telemetry.NewBillingMetrics(meterProvider.Meter("billing"), log)
	if err != nil {
		log.Fatal("Failed to initialize billing metrics", zap.Error(err))
	}
	billingService.SetMetrics(billingMetrics)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// System endpoints live outside API versioning
	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAccountHandler(accountService, orderService, billingService))
	r.Register(handler.NewProductHandler(productService))
	r.Register(handler.NewOrderHandler(orderService))
	r.Register(handler.NewInvoiceHandler(billingService))

	if cfg.Generator.Enabled {
		generatorService := billingapp.NewGeneratorService(accountService, productService, orderService, billingService, cfg.Generator.MaxCount, log)
		r.Register(handler.NewGeneratorHandler(generatorService, cfg.Generator.MaxCount))
		log.Info("Demo data generator enabled", zap.Int("max_count", cfg.Generator.MaxCount))
	}

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
