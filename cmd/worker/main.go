// Package main is the entry point for the oilbook notification worker.
// It drains the notification outbox and posts Discord messages for the
// offices that configured a webhook.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"oilbook/internal/config"
	"oilbook/internal/infrastructure/notify"
	"oilbook/internal/infrastructure/storage/postgres"
	"oilbook/internal/infrastructure/storage/postgres/catalog_repo"
	"oilbook/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting oilbook notification worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	notifier := notify.NewDiscordNotifier(catalog_repo.NewOfficeRepo(txManager))
	relay := postgres.NewOutboxRelay(pool.Unwrap(), cfg.OutboxBatchSize, notifier)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		run(ctx, log, relay, cfg.OutboxInterval)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// run drains the outbox on a fixed interval until the context ends.
func run(ctx context.Context, log *logger.Logger, relay *postgres.OutboxRelay, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sent, err := relay.ProcessBatch(ctx)
			if err != nil {
				log.Warnw("outbox batch failed", "error", err)
				continue
			}
			if sent > 0 {
				log.Infow("notifications delivered", "count", sent)
			}
		}
	}
}
