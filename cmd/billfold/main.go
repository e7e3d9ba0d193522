package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"billfold/internal/amqp"
	"billfold/internal/cli"
	billfoldhttp "billfold/internal/http"
	"billfold/internal/log"
	"billfold/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)

	logger.Info("Starting billfold")

	cfg := cli.LoadAndValidateConfig(logger)

	store, closeStore := cli.OpenStore(logger, cfg)
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	// AMQP is optional; without it budget alerts are simply not published.
	var alerts services.AlertPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		alerts = amqpClient
		logger.Info("AMQP connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled, budget alerts will not be published")
	}

	auth := services.NewAuthService(store, store, cfg.SessionTTL)
	expenses := services.NewExpenseService(store, store, alerts, nil)
	budgets := services.NewBudgetService(store, store, nil)
	analytics := services.NewAnalyticsService(store, store, nil)

	server := billfoldhttp.NewServer(billfoldhttp.Config{
		Addr:         ":" + cfg.Port,
		SecureCookie: cfg.SecureCookie,
		SessionTTL:   cfg.SessionTTL,
		CacheSize:    cfg.CacheSize,
		CacheTTL:     cfg.CacheTTL,
	}, auth, expenses, budgets, analytics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
