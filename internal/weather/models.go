package weather

import (
	"time"
)

// Coordinate is a validated geographic point.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"gte=-180,lte=180"`
}

// DailySeries holds the provider's per-day arrays. Entries are aligned by index.
type DailySeries struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weathercode"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	SunshineDuration []float64 `json:"sunshine_duration"` // seconds
}

// Len returns the number of days in the series.
func (d DailySeries) Len() int {
	return len(d.Time)
}

// HourlySeries holds the provider's per-hour arrays.
type HourlySeries struct {
	Time            []string  `json:"time"`
	SurfacePressure []float64 `json:"surface_pressure"` // hPa
}

// Query describes a single provider fetch.
type Query struct {
	Coordinate Coordinate

	// IncludePressure additionally requests hourly surface pressure.
	IncludePressure bool
}

// Series is what a provider returns for a Query.
// Hourly is nil unless the query asked for pressure.
type Series struct {
	Daily  DailySeries
	Hourly *HourlySeries
}

// DailyRecord is one day of the forecast response.
type DailyRecord struct {
	Date               string  `json:"date" yaml:"date"`
	WeatherCode        int     `json:"weather_code" yaml:"weather_code"`
	TemperatureMax     float64 `json:"temp_max" yaml:"temp_max"`
	TemperatureMin     float64 `json:"temp_min" yaml:"temp_min"`
	SunshineHours      float64 `json:"sunshine_time_hours" yaml:"sunshine_time_hours"`
	GeneratedEnergyKWh float64 `json:"generated_energy_kWh" yaml:"generated_energy_kWh"`
}

// ForecastResponse is the body of GET /forecast/.
type ForecastResponse struct {
	Forecast []DailyRecord `json:"forecast" yaml:"forecast"`
	Location Coordinate    `json:"location" yaml:"location"`
}

// TemperatureExtremes are the week's highest high and lowest low.
type TemperatureExtremes struct {
	Max float64 `json:"max" yaml:"max"`
	Min float64 `json:"min" yaml:"min"`
}

// SummaryResponse is the body of GET /summary/.
type SummaryResponse struct {
	AveragePressure      float64             `json:"average_pressure" yaml:"average_pressure"`
	AverageSunshineHours float64             `json:"average_sunshine_hours" yaml:"average_sunshine_hours"`
	ExtremeTemperatures  TemperatureExtremes `json:"extreme_temperatures" yaml:"extreme_temperatures"`
	WeatherSummary       string              `json:"weather_summary" yaml:"weather_summary"`
	RainyDaysCount       int                 `json:"rainy_days_count" yaml:"rainy_days_count"`
}

// ProbeResult records one background health check against a provider.
type ProbeResult struct {
	Provider  string        `json:"provider"`
	Timestamp time.Time     `json:"timestamp"` // always UTC
	OK        bool          `json:"ok"`
	Latency   time.Duration `json:"latency_ns"`
	Error     string        `json:"error,omitempty"`
}
