package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stablegate/config"
	"stablegate/internal/adapter/depositaddress"
	httpHandler "stablegate/internal/adapter/http/handler"
	"stablegate/internal/adapter/pricing"
	pgStorage "stablegate/internal/adapter/storage/postgres"
	redisStorage "stablegate/internal/adapter/storage/redis"
	"stablegate/internal/core/ports"
	"stablegate/internal/service"
	"stablegate/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("starting stablegate api")

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Repositories
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	invoiceRepo := pgStorage.NewInvoiceRepo(pool)
	intentRepo := pgStorage.NewIntentRepo(pool)
	transferRepo := pgStorage.NewTransferRepo(pool)
	intentFundRepo := pgStorage.NewIntentFundRepo(pool)
	outboxRepo := pgStorage.NewOutboxRepo(pool)
	idempotencyRepo := pgStorage.NewIdempotencyRepo(pool)
	unmatchedRepo := pgStorage.NewUnmatchedTransferRepo(pool)
	poisonRepo := pgStorage.NewPoisonEventRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Out-of-scope external collaborators, stood in with minimal
	// deterministic adapters (no custodial wallet or pricing-feed SDK
	// appears anywhere in this repo's dependency pack).
	allocator := depositaddress.NewDeterministicAllocator()
	pricingCalc := pricing.NewFixedRateCalculator(defaultRateTable())

	ingressSvc := service.NewIngressService(
		invoiceRepo, intentRepo, transferRepo, intentFundRepo,
		outboxRepo, unmatchedRepo, poisonRepo, transactor, log,
	)
	invoiceSvc := service.NewInvoiceService(
		invoiceRepo, intentRepo, transferRepo, intentFundRepo, outboxRepo, unmatchedRepo,
		allocator, pricingCalc, idempotencyCache, idempotencyRepo,
		transactor, time.Duration(cfg.Invoice.DefaultExpirySeconds)*time.Second, log,
	)

	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		InvoiceSvc:     invoiceSvc,
		IngressSvc:     ingressSvc,
		MerchantRepo:   merchantRepo,
		WebhookSecret:  cfg.Provider.WebhookSecret,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// defaultRateTable is the fixed-rate stand-in for the out-of-scope
// pricing feed (spec.md §1), one atomic-token-per-fiat-cent rate per
// stablecoin on each supported chain. A production deployment replaces
// this with a live oracle behind the same ports.PricingCalculator.
func defaultRateTable() map[string]map[string]pricing.Rate {
	// 1 USD cent == 0.01 USDC/USDT, both minted with 6 decimals, so
	// 1 cent == 10_000 atomic units: Numerator/Denominator = 10000/1.
	usdRates := map[string]pricing.Rate{
		"USDC": {Numerator: 10000, Denominator: 1},
		"USDT": {Numerator: 10000, Denominator: 1},
	}
	return map[string]map[string]pricing.Rate{
		"USD": usdRates,
		"EUR": usdRates,
	}
}
