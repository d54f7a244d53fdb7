package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stablegate/config"
	"stablegate/internal/adapter/blockchain"
	pgStorage "stablegate/internal/adapter/storage/postgres"
	"stablegate/internal/service"
	"stablegate/pkg/logger"
)

// The dispatcher binary drives two background loops against the
// shared outbox table (spec.md §4.3): re-evaluating confirmation depth
// for PAID invoices, and claiming/delivering due outbox records.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Msg("starting stablegate dispatcher")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := pgStorage.NewInvoiceRepo(pool)
	intentRepo := pgStorage.NewIntentRepo(pool)
	transferRepo := pgStorage.NewTransferRepo(pool)
	outboxRepo := pgStorage.NewOutboxRepo(pool)
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()

	blockchainReader := blockchain.NewClient(cfg.Blockchain.Endpoints)

	confirmSvc := service.NewConfirmationService(
		invoiceRepo, intentRepo, transferRepo, outboxRepo,
		blockchainReader, transactor, cfg.Confirmations.Required, log,
	)

	dispatchSvc := service.NewDispatcherService(
		outboxRepo, invoiceRepo, intentRepo, merchantRepo, transferRepo,
		encSvc, sigSvc, confirmSvc,
		cfg.Sweeper.PollInterval, log,
	)

	ticker := time.NewTicker(cfg.Sweeper.PollInterval)
	defer ticker.Stop()

	log.Info().Dur("interval", cfg.Sweeper.PollInterval).Msg("dispatcher poll loop running")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("dispatcher shutting down")
			return
		case <-ticker.C:
			n, err := dispatchSvc.DispatchBatch(ctx, cfg.Sweeper.BatchSize)
			if err != nil {
				log.Error().Err(err).Msg("dispatch batch failed")
				continue
			}
			if n > 0 {
				log.Info().Int("claimed", n).Msg("dispatch batch processed")
			}
		}
	}
}
