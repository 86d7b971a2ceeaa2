package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-energy-service/internal/weather"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=52.23&longitude=21.01&daily=weathercode,temperature_2m_max,temperature_2m_min,sunshine_duration&hourly=surface_pressure&timezone=auto&forecast_days=7
const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"
	DefaultTimeout   = 10 * time.Second
)

var (
	openMeteoDailyVars  = []string{"weathercode", "temperature_2m_max", "temperature_2m_min", "sunshine_duration"}
	openMeteoHourlyVars = []string{"surface_pressure"}
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

// OpenMeteoOption customizes an OpenMeteoProvider.
type OpenMeteoOption func(*OpenMeteoProvider)

// WithBaseURL points the provider at a different forecast endpoint.
func WithBaseURL(baseURL string) OpenMeteoOption {
	return func(p *OpenMeteoProvider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithBreaker overrides the circuit breaker settings.
func WithBreaker(cfg BreakerConfig) OpenMeteoOption {
	return func(p *OpenMeteoProvider) {
		p.circuit = newCircuitBreaker(p.name, cfg)
	}
}

// NewOpenMeteoProvider creates a provider whose requests time out after timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewOpenMeteoProvider(timeout time.Duration, opts ...OpenMeteoOption) *OpenMeteoProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	p := &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: OpenMeteoBaseURL,
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
	p.circuit = newCircuitBreaker(p.name, DefaultBreakerConfig())

	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// Fetch requests the 7-day daily series, plus hourly surface pressure when
// q.IncludePressure is set. Exactly one HTTP attempt is made.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, q weather.Query) (weather.Series, error) {
	params := map[string]string{
		"latitude":      formatCoordinate(q.Coordinate.Latitude),
		"longitude":     formatCoordinate(q.Coordinate.Longitude),
		"daily":         strings.Join(openMeteoDailyVars, ","),
		"timezone":      "auto",
		"forecast_days": strconv.Itoa(weather.ForecastDays),
	}
	if q.IncludePressure {
		params["hourly"] = strings.Join(openMeteoHourlyVars, ",")
	}

	body, err := doRequest(p.circuit, func() (*resty.Response, error) {
		return p.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(p.baseURL)
	})
	if err != nil {
		return weather.Series{}, err
	}

	var payload struct {
		Daily  *weather.DailySeries  `json:"daily"`
		Hourly *weather.HourlySeries `json:"hourly"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Series{}, fmt.Errorf("%w: decode response: %v", weather.ErrUpstreamMalformed, err)
	}

	if payload.Daily == nil {
		return weather.Series{}, fmt.Errorf("%w: response has no daily data", weather.ErrUpstreamMalformed)
	}

	series := weather.Series{Daily: *payload.Daily}
	if q.IncludePressure {
		if payload.Hourly == nil {
			return weather.Series{}, fmt.Errorf("%w: response has no hourly data", weather.ErrUpstreamMalformed)
		}
		series.Hourly = payload.Hourly
	}
	return series, nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
