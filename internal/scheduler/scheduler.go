package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-energy-service/internal/weather"
)

// probeTimeout bounds a single probe run.
const probeTimeout = 30 * time.Second

// Prober is the part of weather.Service the scheduler needs.
type Prober interface {
	Probe(ctx context.Context, loc weather.Coordinate) weather.ProbeResult
}

// Scheduler periodically probes the weather provider for a fixed coordinate.
type Scheduler struct {
	scheduler *gocron.Scheduler
	prober    Prober
	location  weather.Coordinate
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. A non-positive interval disables probing.
func New(location weather.Coordinate, interval time.Duration, prober Prober, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		prober:    prober,
		location:  location,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic probe and starts the underlying scheduler.
// The first probe runs immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("probe interval not set; upstream probing disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("upstream probing started", "interval", s.interval.String())
	return nil
}

// RunOnce performs a single probe.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	result := s.prober.Probe(ctx, s.location)
	if !result.OK {
		s.logger.Warn("upstream probe failed",
			"provider", result.Provider,
			"latency", result.Latency.String(),
			"error", result.Error,
		)
		return
	}
	s.logger.Debug("upstream probe succeeded",
		"provider", result.Provider,
		"latency", result.Latency.String(),
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
