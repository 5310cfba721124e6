package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"desithreads-api/internal/auth"
	"desithreads-api/internal/config"
	"desithreads-api/internal/db"
	"desithreads-api/internal/httpserver"
	"desithreads-api/internal/metrics"
	"desithreads-api/internal/payment"
	cartrepo "desithreads-api/internal/repository/cart"
	categoryrepo "desithreads-api/internal/repository/category"
	orderrepo "desithreads-api/internal/repository/order"
	productrepo "desithreads-api/internal/repository/product"
	cartsvc "desithreads-api/internal/service/cart"
	catalogsvc "desithreads-api/internal/service/catalog"
	checkoutsvc "desithreads-api/internal/service/checkout"
	ordersvc "desithreads-api/internal/service/order"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.GatewayKeyID == "" || cfg.GatewayKeySecret == "" {
		logger.Fatalf("GATEWAY_KEY_ID and GATEWAY_KEY_SECRET are required")
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	sessions, err := auth.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		logger.Fatalf("init sessions: %v", err)
	}

	gateway := payment.NewRazorpay(cfg.GatewayBaseURL, cfg.GatewayKeyID, cfg.GatewayKeySecret, cfg.GatewayTimeout, logger)
	checkoutMetrics := metrics.NewCheckout(prometheus.DefaultRegisterer)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	catalogService := catalogsvc.New(productRepo, categoryRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	checkoutService := checkoutsvc.New(cartRepo, orderRepo, gateway, cfg.GatewayKeySecret, cfg.Currency, logger, checkoutMetrics)
	orderService := ordersvc.New(orderRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:    catalogService,
		CartSvc:       cartService,
		CheckoutSvc:   checkoutService,
		OrderSvc:      orderService,
		Sessions:      sessions,
		WebhookSecret: cfg.GatewayKeySecret,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
