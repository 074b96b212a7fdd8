// Package main is the entry point for the Zodiac API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapponejosh/zodiac-api/internal/api"
	"github.com/zapponejosh/zodiac-api/internal/calendar"
	"github.com/zapponejosh/zodiac-api/internal/config"
	"github.com/zapponejosh/zodiac-api/internal/database"
	"github.com/zapponejosh/zodiac-api/internal/logger"
	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("starting zodiac API",
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.Int("min_year", cfg.MinYear),
		slog.Int("max_year", cfg.MaxYear),
	)

	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	ephemeris, err := calendar.NewDefaultEphemeris(cfg.MinYear, cfg.MaxYear, log)
	if err != nil {
		return fmt.Errorf("build ephemeris: %w", err)
	}
	resolver := zodiac.NewResolver(ephemeris,
		zodiac.WithSignCacheSize(cfg.SignCacheSize),
		zodiac.WithLogger(log),
	)

	handlers := api.NewHandlers(db, resolver, cfg, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("zodiac API ready", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	signs, boundaries := resolver.CacheStats()
	log.Info("server stopped",
		slog.Uint64("sign_cache_hits", signs.Hits),
		slog.Uint64("sign_cache_misses", signs.Misses),
		slog.Int("boundary_cache_entries", boundaries.Entries),
	)
	return nil
}
