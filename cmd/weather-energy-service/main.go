package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/weather-energy-service/internal/api/http"
	"github.com/i474232898/weather-energy-service/internal/cli"
	"github.com/i474232898/weather-energy-service/internal/config"
	"github.com/i474232898/weather-energy-service/internal/scheduler"
	"github.com/i474232898/weather-energy-service/internal/store"
	"github.com/i474232898/weather-energy-service/internal/weather"
	"github.com/i474232898/weather-energy-service/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Open-Meteo needs no API key; one attempt per request, bounded by HTTPTimeout.
	provider := providers.NewOpenMeteoProvider(cfg.HTTPTimeout, providers.WithBaseURL(cfg.OpenMeteoURL))

	// In-memory probe history with configured retention.
	probeStore := store.NewMemoryStore(cfg.ProbeMaxHistory, cfg.ProbeMaxAge)

	service := weather.NewService(provider, probeStore, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.New(cli.Deps{
		Service: service,
		Serve: func(ctx context.Context) error {
			return serve(ctx, cfg, service, logger)
		},
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// serve runs the HTTP API and the probe scheduler until ctx is done.
func serve(ctx context.Context, cfg *config.AppConfig, service *weather.Service, logger *slog.Logger) error {
	sched := scheduler.New(cfg.ProbeLocation, cfg.ProbeInterval, service, logger)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, httpapi.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:        true,
		Logger:           logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr())
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
