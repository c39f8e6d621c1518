package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"escrow-settlement/config"
	gatewayClient "escrow-settlement/internal/adapter/gateway"
	httpHandler "escrow-settlement/internal/adapter/http/handler"
	"escrow-settlement/internal/adapter/notify"
	pgStorage "escrow-settlement/internal/adapter/storage/postgres"
	redisStorage "escrow-settlement/internal/adapter/storage/redis"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/internal/service"
	"escrow-settlement/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Escrow Settlement Service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	txnRepo := pgStorage.NewTransactionRepo(pool)
	payoutRepo := pgStorage.NewPayoutRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	sellerRepo := pgStorage.NewSellerRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	eventCache := redisStorage.NewEventCache(rdb)

	// Initialize notification sink
	var notifier ports.NotificationSink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink := notify.NewKafkaSink(cfg.Kafka, logger.For(log, "kafka"))
		defer kafkaSink.Close()
		notifier = kafkaSink
	} else {
		notifier = notify.NewLogSink(logger.For(log, "notify"))
	}

	// Initialize gateway client
	gateway := gatewayClient.NewClient(cfg.Gateway, logger.For(log, "gateway"))

	// Initialize business services
	ledger := service.NewLedger(walletRepo, transactor, logger.For(log, "ledger"))
	stateMach := service.NewStateMachine(txnRepo, logger.For(log, "statemachine"))
	payoutSvc := service.NewPayoutService(
		payoutRepo,
		sellerRepo,
		ledger,
		gateway,
		transactor,
		notifier,
		service.PayoutConfig{
			Currency:     cfg.Gateway.Currency,
			RetryBackoff: cfg.Payout.RetryBackoff,
			MaxBackoff:   cfg.Payout.MaxBackoff,
		},
		logger.For(log, "payout"),
	)
	scheduler := service.NewPayoutScheduler(
		payoutRepo,
		walletRepo,
		payoutSvc,
		service.SchedulerConfig{
			SweepInterval: cfg.Payout.SweepInterval,
			SweepLimit:    cfg.Payout.SweepLimit,
			TransferRate:  cfg.Payout.TransferRate,
			TransferBurst: cfg.Payout.TransferBurst,
		},
		logger.For(log, "scheduler"),
	)
	txnSvc := service.NewTransactionService(
		txnRepo,
		stateMach,
		gateway,
		transactor,
		scheduler,
		notifier,
		cfg.Gateway.Currency,
		logger.For(log, "transaction"),
	)
	webhookSvc := service.NewWebhookService(
		gateway,
		txnRepo,
		payoutRepo,
		ledger,
		stateMach,
		payoutSvc,
		eventCache,
		transactor,
		notifier,
		logger.For(log, "webhook"),
	)

	// Start the payout retry scheduler
	go scheduler.Run(ctx)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TxnSvc:         txnSvc,
		WebhookSvc:     webhookSvc,
		SellerRepo:     sellerRepo,
		WalletRepo:     walletRepo,
		PayoutRepo:     payoutRepo,
		TxnRepo:        txnRepo,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         logger.For(log, "http"),
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown: first signal stops the scheduler via ctx, then the
	// server drains in-flight requests.
	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
