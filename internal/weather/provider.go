package weather

import (
	"context"
	"time"
)

// Provider abstracts a weather data source (e.g. Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query) (Series, error)
}

// ProbeStore is the contract the in-memory probe history must satisfy.
type ProbeStore interface {
	SaveProbe(result ProbeResult)
	GetLatest(provider string) (ProbeResult, error)
	GetRange(provider string, from, to time.Time) ([]ProbeResult, error)
}
