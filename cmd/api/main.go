package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supermanager/internal/config"
	"supermanager/internal/database"
	"supermanager/internal/handler"
	"supermanager/internal/notification"
	"supermanager/internal/repository"
	"supermanager/internal/router"
	"supermanager/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting supermanager API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Ensure schema and seed data. The catalogue is seeded only when
	// empty; the demo account only when absent.
	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := database.SeedProducts(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	if err := database.SeedDemoUser(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	authService := service.NewAuthService(
		userRepo,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		logger,
	)

	// Initialize the notification subsystem: alerts are logged and kept
	// in memory for the alerts API.
	sink := notification.NewMemorySink(100)
	sender := notification.Fanout{notification.NewLogSender(logger), sink}
	notifier := notification.NewNotifier(productService, sender, notification.Settings{
		LowStockEnabled:     cfg.Notification.LowStockEnabled,
		LowStockThreshold:   cfg.Notification.LowStockThreshold,
		StockCheckHours:     cfg.Notification.StockCheckHours,
		DailyReportEnabled:  cfg.Notification.DailyReportEnabled,
		DailyReportHour:     cfg.Notification.DailyReportHour,
		DailyReportMinute:   cfg.Notification.DailyReportMinute,
		WeeklyReportEnabled: cfg.Notification.WeeklyReportEnabled,
		WeeklyReportDay:     cfg.Notification.WeeklyReportDay,
		ReminderEnabled:     cfg.Notification.ReminderEnabled,
	}, logger)

	if err := notifier.Start(); err != nil {
		return fmt.Errorf("failed to start notification scheduler: %w", err)
	}
	defer notifier.Stop()

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	alertHandler := handler.NewAlertHandler(notifier, sink, logger)

	// Initialize router
	mux := router.New(productHandler, authHandler, alertHandler, cfg.Auth.JWTSecret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
