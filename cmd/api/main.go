package main

import (
	"context"
	"net/http"
	"os"

	"github.com/farm2home/storefront-backend/api/routes"
	"github.com/farm2home/storefront-backend/internal/cart"
	"github.com/farm2home/storefront-backend/internal/catalog"
	"github.com/farm2home/storefront-backend/internal/orders"
	"github.com/farm2home/storefront-backend/internal/paymentmethods"
	"github.com/farm2home/storefront-backend/internal/prefs"
	"github.com/farm2home/storefront-backend/internal/reorder"
	"github.com/farm2home/storefront-backend/pkg/config"
	"github.com/farm2home/storefront-backend/pkg/logger"
	"github.com/farm2home/storefront-backend/pkg/metrics"
	"github.com/farm2home/storefront-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	reconcileMetrics := metrics.NewReconcileMetrics(registry)

	catalogClient, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}
	catalogService := catalog.NewService(catalogClient, logg)

	ordersClient, err := orders.NewClient(cfg.Orders)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders client", err)
		os.Exit(1)
	}
	reconciler, err := reorder.NewReconciler(cfg.RemoteCart, reconcileMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart reconciler", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(ordersClient, reconciler, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	cartRepo, err := cart.NewRedisRepository(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart repository", err)
		os.Exit(1)
	}
	cartManager, err := cart.NewManager(cartRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	paymentMethodsService, err := paymentmethods.NewService(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment methods service", err)
		os.Exit(1)
	}
	prefsService, err := prefs.NewService(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create preferences service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			Redis:          redisClient,
			Catalog:        catalogService,
			CatalogSource:  catalogClient,
			CartManager:    cartManager,
			Orders:         ordersService,
			PaymentMethods: paymentMethodsService,
			Prefs:          prefsService,
			HTTPMetrics:    httpMetrics,
			Gatherer:       registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
