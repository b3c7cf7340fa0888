package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/supplychain/backend/internal/application/catalog"
	identityapp "github.com/supplychain/backend/internal/application/identity"
	partnerapp "github.com/supplychain/backend/internal/application/partner"
	procurementapp "github.com/supplychain/backend/internal/application/procurement"
	"github.com/supplychain/backend/internal/infrastructure/auth"
	"github.com/supplychain/backend/internal/infrastructure/config"
	"github.com/supplychain/backend/internal/infrastructure/event"
	"github.com/supplychain/backend/internal/infrastructure/logger"
	"github.com/supplychain/backend/internal/infrastructure/persistence"
	"github.com/supplychain/backend/internal/infrastructure/telemetry"
	"github.com/supplychain/backend/internal/interfaces/http/handler"
	"github.com/supplychain/backend/internal/interfaces/http/middleware"
	"github.com/supplychain/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting supply chain backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry providers; both are no-ops when telemetry is disabled
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}

	// Tee application logs into the collector alongside stdout
	otelCore := telemetry.NewZapCore(loggerProvider, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))
	log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	dbTracingCfg := telemetry.DefaultDBTracingConfig()
	dbTracingCfg.Enabled = cfg.Telemetry.Enabled
	dbTracingCfg.DBName = cfg.Database.DBName
	if err := telemetry.NewDBTracing(dbTracingCfg, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, transactionRepo, orderRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo, productRepo, orderRepo)
	userService := identityapp.NewUserService(userRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	orderService := procurementapp.NewPurchaseOrderService(orderRepo, supplierRepo, productRepo)

	// Event bus: received goods replenish product stock asynchronously
	// from the order aggregate's point of view
	eventBus := event.NewInMemoryEventBus(log)
	goodsReceived := procurementapp.NewGoodsReceivedHandler(productService, log)
	eventBus.Subscribe(goodsReceived)
	orderService.SetEventPublisher(eventBus)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	if err := middleware.RegisterCustomValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := router.New(router.Config{
		JWTService: jwtService,
		HTTP:       cfg.HTTP,
		Telemetry:  cfg.Telemetry,
		Logger:     log,
		Public: []router.RouteRegistrar{
			handler.NewSystemHandler(db, cfg.App.Name, version),
			handler.NewAuthHandler(authService),
		},
		Protected: []router.RouteRegistrar{
			handler.NewProductHandler(productService),
			handler.NewSupplierHandler(supplierService),
			handler.NewUserHandler(userService),
			handler.NewPurchaseOrderHandler(orderService),
		},
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete")

	// Last so shutdown logs still reach the collector
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Logger provider shutdown failed", zap.Error(err))
	}
}
