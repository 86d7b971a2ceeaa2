package providers

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-energy-service/internal/weather"
)

// BreakerConfig controls when the circuit breaker opens and how long it stays open.
// The breaker counts transport failures only.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts are cleared.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker.
	ConsecutiveFailures uint32
}

// DefaultBreakerConfig mirrors the settings used for every provider.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:         5,
		Interval:            1 * time.Minute,
		Timeout:             2 * time.Minute,
		ConsecutiveFailures: 5,
	}
}

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		// Only transport faults count against the breaker. An upstream that
		// answers, even with an error status, keeps it closed.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, weather.ErrUpstreamUnavailable)
		},
	})
}

// doRequest executes a single attempt through the circuit breaker and
// returns the response body. Transport failures map to
// weather.ErrUpstreamUnavailable and non-2xx statuses to weather.ErrUpstreamError.
func doRequest(
	cb *gobreaker.CircuitBreaker,
	send func() (*resty.Response, error),
) ([]byte, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		resp, sendErr := send()
		if sendErr != nil {
			return nil, fmt.Errorf("%w: %v", weather.ErrUpstreamUnavailable, sendErr)
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("%w: status %d", weather.ErrUpstreamError, resp.StatusCode())
		}
		return resp.Body(), nil
	})
	if err != nil {
		// Rejected by the breaker without calling the provider.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", weather.ErrUpstreamUnavailable, err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}
