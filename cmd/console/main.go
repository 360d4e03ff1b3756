package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jakeadel/bank-demo/internal/adapter/backendclient"
	httpAdapter "github.com/jakeadel/bank-demo/internal/adapter/http"
	"github.com/jakeadel/bank-demo/internal/adapter/http/handler"
	"github.com/jakeadel/bank-demo/internal/adapter/repository/memory"
	"github.com/jakeadel/bank-demo/internal/infrastructure/config"
	"github.com/jakeadel/bank-demo/internal/infrastructure/invalidation"
	"github.com/jakeadel/bank-demo/internal/infrastructure/logger"
	"github.com/jakeadel/bank-demo/internal/infrastructure/metrics"
	"github.com/jakeadel/bank-demo/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	m := metrics.New(prometheus.DefaultRegisterer)

	// Backend client
	backend := backendclient.New(backendclient.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Logger:  logg,
		Metrics: m,
	})

	ctx := context.Background()
	if err := backend.WaitReady(ctx, cfg.BackendReadyWait); err != nil {
		logg.Fatal().Err(err).Str("url", cfg.BackendURL).Msg("backend never became ready")
	}
	logg.Info().Str("url", cfg.BackendURL).Msg("connected to backend")

	// Core components
	store := memory.NewLedgerStore()
	errs := usecase.NewErrorLog(m)
	bus := invalidation.NewBus(logg)
	reconciler := usecase.NewBalanceReconciler(backend, store, errs, logg, m)
	coordinator := usecase.NewCoordinator(backend, store, reconciler, bus, errs, logg, m)
	history := usecase.NewHistoryCache(backend, bus, errs, logg, m)

	// Warm the mirror. Like the dashboard's first render, a failed initial
	// load is logged and the console starts empty.
	if err := coordinator.LoadUsers(ctx); err != nil {
		logg.Warn().Err(err).Msg("initial user load failed, starting with an empty mirror")
	}

	// Router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:     handler.NewUserHandler(coordinator),
		AccountHandler:  handler.NewAccountHandler(coordinator, history),
		TransferHandler: handler.NewTransferHandler(coordinator),
		ErrorLogHandler: handler.NewErrorLogHandler(errs),
		HealthHandler:   handler.NewHealthHandler(backend),
		Logger:          logg,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		logg.Info().Str("port", cfg.HTTPPort).Msg("starting console")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("shutting down console...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logg.Info().Msg("console stopped")
}
