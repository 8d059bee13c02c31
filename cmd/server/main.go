// Package main runs the transfer broker HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wasit/internal/config"
	"wasit/internal/events"
	"wasit/internal/handlers"
	"wasit/internal/logger"
	"wasit/internal/metrics"
	"wasit/internal/middleware"
	"wasit/internal/repositories"
	"wasit/internal/repositories/cache"
	"wasit/internal/routes"
	"wasit/internal/services/auth"
	"wasit/internal/services/fee"
	"wasit/internal/services/feerule"
	"wasit/internal/services/method"
	"wasit/internal/services/order"
	"wasit/internal/services/transfer"
	"wasit/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zl := logger.Must(cfg.Env)
	defer func() { _ = zl.Sync() }()

	db, err := repositories.Open(cfg.DB, zl)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			zl.Warn("failed to close database", zap.Error(err))
		}
	}()
	if err := repositories.Migrate(db, cfg.DB, zl); err != nil {
		zl.Fatal("migrations", zap.Error(err))
	}

	stop := make(chan struct{})
	defer close(stop)
	repositories.StartPoolMonitor(db, time.Minute, zl, stop)

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cacheService := cache.NewCacheService(redisClient, cfg.Redis.MethodsCacheTTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			zl.Warn("failed to close redis", zap.Error(err))
		}
	}()

	// The cache is optional: without redis the method list reads straight from postgres.
	var methodCache method.Cache = cacheService
	var redisCheck handlers.Pinger = cacheService
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheService.HealthCheck(pingCtx); err != nil {
		zl.Warn("redis unavailable, method cache disabled", zap.Error(err))
		methodCache = nil
		redisCheck = nil
	} else if err := cacheService.InvalidateMethods(pingCtx); err != nil {
		zl.Warn("failed to reset method cache", zap.Error(err))
	}
	cancel()

	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		publisher = events.NewKafkaPublisher(brokers, cfg.Kafka.Topic, zl)
		zl.Info("publishing order events", zap.Strings("brokers", brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			zl.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	methodRepo := repositories.NewMethodRepository(db)
	ruleRepo := repositories.NewFeeRuleRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)

	evaluator := fee.NewEvaluator(methodRepo, ruleRepo, zl)
	transferService, err := transfer.NewService(evaluator, orderRepo, publisher, collector, transfer.Config{
		BrokerPhone:   cfg.Transfer.BrokerPhone,
		RequireReview: cfg.Transfer.RequireReview,
		Currency:      cfg.Transfer.Currency,
	}, zl)
	if err != nil {
		zl.Fatal("transfer service", zap.Error(err))
	}
	methodService := method.NewService(methodRepo, methodCache, collector, zl)
	feeRuleService := feerule.NewService(ruleRepo, methodRepo, zl)
	orderService := order.NewService(orderRepo, publisher, collector, cfg.Transfer.Currency, zl)

	issuer := utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	authService := auth.NewService(userRepo, issuer, zl)

	app := fiber.New(fiber.Config{
		AppName:      "wasit " + version,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return utils.Fail(c, err)
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.ReplaceAll(cfg.CORSOrigins, " ", ""),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Transfer: handlers.NewTransferHandler(transferService, methodService),
		Admin:    handlers.NewAdminHandler(methodService, feeRuleService, orderService),
		Auth:     handlers.NewAuthHandler(authService, cfg.IsProduction(), cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL),
		Health: handlers.NewHealthHandler(version, map[string]handlers.Pinger{
			"database": handlers.PingFunc(func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}),
			"redis": redisCheck,
		}),
		AuthMW:   middleware.NewAuthMiddleware(authService, zl),
		Gatherer: reg,
	}, routes.DefaultRateLimit)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Error("server stopped", zap.Error(err))
		}
	}()
	zl.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
