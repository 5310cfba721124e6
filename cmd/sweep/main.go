package main

import (
	"context"
	"log"
	"os"

	"desithreads-api/internal/config"
	"desithreads-api/internal/db"
	orderrepo "desithreads-api/internal/repository/order"
	ordersvc "desithreads-api/internal/service/order"
	"github.com/joho/godotenv"
)

// sweep fails orders stuck at pending_payment past the configured TTL.
// Run it from cron; the webhook handles failures the gateway reports, this
// covers the ones it never does.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[sweep] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	svc := ordersvc.New(orderrepo.NewPostgres(pool, logger), logger)
	n, err := svc.SweepStale(ctx, cfg.PendingOrderTTL)
	if err != nil {
		logger.Fatalf("sweep: %v", err)
	}

	logger.Printf("sweep done, %d orders failed", n)
}
