package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service fetches provider data for a coordinate and reshapes it into
// forecast or summary responses.
type Service struct {
	provider Provider
	probes   ProbeStore
	logger   *slog.Logger
}

// NewService creates a new Service. probes may be nil when background
// probing is not used.
func NewService(provider Provider, probes ProbeStore, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		probes:   probes,
		logger:   logger.With("component", "weather-service"),
	}
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// GetForecast returns the 7-day forecast with an energy estimate per day.
func (s *Service) GetForecast(ctx context.Context, loc Coordinate) (ForecastResponse, error) {
	series, err := s.fetch(ctx, Query{Coordinate: loc})
	if err != nil {
		return ForecastResponse{}, err
	}

	resp, err := BuildForecast(loc, series.Daily)
	if err != nil {
		s.logger.Error("failed to build forecast", "provider", s.provider.Name(), "error", err)
		return ForecastResponse{}, err
	}
	return resp, nil
}

// GetSummary returns aggregates over the 7-day window.
func (s *Service) GetSummary(ctx context.Context, loc Coordinate) (SummaryResponse, error) {
	series, err := s.fetch(ctx, Query{Coordinate: loc, IncludePressure: true})
	if err != nil {
		return SummaryResponse{}, err
	}
	if series.Hourly == nil {
		return SummaryResponse{}, fmt.Errorf("%w: hourly series missing", ErrUpstreamMalformed)
	}

	resp, err := BuildSummary(series.Daily, *series.Hourly)
	if err != nil {
		s.logger.Error("failed to build summary", "provider", s.provider.Name(), "error", err)
		return SummaryResponse{}, err
	}
	return resp, nil
}

// Probe fetches the forecast for loc and records the outcome in the probe store.
func (s *Service) Probe(ctx context.Context, loc Coordinate) ProbeResult {
	start := time.Now()
	_, err := s.GetForecast(ctx, loc)

	result := ProbeResult{
		Provider:  s.provider.Name(),
		Timestamp: start.UTC(),
		OK:        err == nil,
		Latency:   time.Since(start),
	}
	if err != nil {
		result.Error = publicMessage(err)
	}

	if s.probes != nil {
		s.probes.SaveProbe(result)
	}
	return result
}

// LatestProbe returns the most recent probe result for the provider.
func (s *Service) LatestProbe() (ProbeResult, bool) {
	if s.probes == nil {
		return ProbeResult{}, false
	}
	r, err := s.probes.GetLatest(s.provider.Name())
	if err != nil {
		return ProbeResult{}, false
	}
	return r, true
}

// ProbeFailures counts the failed probes still retained in the probe store.
func (s *Service) ProbeFailures() int {
	if s.probes == nil {
		return 0
	}
	results, err := s.probes.GetRange(s.provider.Name(), time.Time{}, time.Now().UTC())
	if err != nil {
		return 0
	}

	failures := 0
	for _, r := range results {
		if !r.OK {
			failures++
		}
	}
	return failures
}

func (s *Service) fetch(ctx context.Context, q Query) (Series, error) {
	s.logger.Debug("fetching weather data",
		"provider", s.provider.Name(),
		"latitude", q.Coordinate.Latitude,
		"longitude", q.Coordinate.Longitude,
		"hourly", q.IncludePressure,
	)

	series, err := s.provider.Fetch(ctx, q)
	if err != nil {
		s.logger.Error("provider fetch failed",
			"provider", s.provider.Name(),
			"latitude", q.Coordinate.Latitude,
			"longitude", q.Coordinate.Longitude,
			"error", err,
		)
		return Series{}, err
	}
	return series, nil
}

func publicMessage(err error) string {
	if pub := PublicError(err); pub != nil {
		return pub.Error()
	}
	return "unexpected error"
}
