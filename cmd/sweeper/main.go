package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"stablegate/config"
	pgStorage "stablegate/internal/adapter/storage/postgres"
	"stablegate/internal/service"
	"stablegate/pkg/logger"
)

// The sweeper binary transitions invoices past expiry in bounded
// batches (spec.md §4.4). Multiple instances can run concurrently — the
// lease held in ports.LeaseRepository keeps only one sweeping at a time.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Msg("starting stablegate sweeper")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := pgStorage.NewInvoiceRepo(pool)
	intentRepo := pgStorage.NewIntentRepo(pool)
	outboxRepo := pgStorage.NewOutboxRepo(pool)
	leaseRepo := pgStorage.NewLeaseRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	instanceID := uuid.NewString()

	sweeperSvc := service.NewSweeperService(
		invoiceRepo, intentRepo, outboxRepo, leaseRepo, transactor,
		instanceID, cfg.Sweeper.LeaseTTL, log,
	)

	ticker := time.NewTicker(cfg.Sweeper.PollInterval)
	defer ticker.Stop()

	log.Info().Str("instance_id", instanceID).Dur("interval", cfg.Sweeper.PollInterval).Msg("sweeper poll loop running")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("sweeper shutting down")
			return
		case <-ticker.C:
			n, err := sweeperSvc.SweepExpired(ctx, cfg.Sweeper.BatchSize)
			if err != nil {
				log.Error().Err(err).Msg("sweep batch failed")
				continue
			}
			if n > 0 {
				log.Info().Int("swept", n).Msg("sweep batch processed")
			}
		}
	}
}
