package weather

import (
	"fmt"
	"math"
)

const (
	// ForecastDays is the fixed window requested from providers.
	ForecastDays = 7

	// Solar installation used for the energy estimate.
	PlantRatingKW   = 2.5
	PanelEfficiency = 0.2

	// Provider weather codes from drizzle (51) through thunderstorm with hail (99).
	rainyCodeMin = 51
	rainyCodeMax = 99

	// A week with at least this many rainy days is reported as wet.
	precipitationDaysThreshold = 4

	SummaryWithPrecipitation = "with precipitation"
	SummaryNoPrecipitation   = "no precipitation"
)

// BuildForecast turns the daily series into per-day records with an energy estimate.
// Records keep the order returned by the provider.
func BuildForecast(loc Coordinate, daily DailySeries) (ForecastResponse, error) {
	if err := daily.validate(); err != nil {
		return ForecastResponse{}, err
	}

	records := make([]DailyRecord, 0, daily.Len())
	for i := range daily.Time {
		hours := sunshineHours(daily.SunshineDuration[i])
		records = append(records, DailyRecord{
			Date:               daily.Time[i],
			WeatherCode:        daily.WeatherCode[i],
			TemperatureMax:     daily.TemperatureMax[i],
			TemperatureMin:     daily.TemperatureMin[i],
			SunshineHours:      round2(hours),
			GeneratedEnergyKWh: round2(generatedEnergyKWh(hours)),
		})
	}

	return ForecastResponse{
		Forecast: records,
		Location: loc,
	}, nil
}

// BuildSummary reduces the week into averages, extremes and a precipitation verdict.
func BuildSummary(daily DailySeries, hourly HourlySeries) (SummaryResponse, error) {
	if err := daily.validate(); err != nil {
		return SummaryResponse{}, err
	}
	if len(hourly.SurfacePressure) == 0 {
		return SummaryResponse{}, fmt.Errorf("%w: no hourly pressure samples", ErrInsufficientData)
	}

	var sumSunshine float64
	for _, seconds := range daily.SunshineDuration {
		sumSunshine += sunshineHours(seconds)
	}

	extremes := TemperatureExtremes{
		Max: daily.TemperatureMax[0],
		Min: daily.TemperatureMin[0],
	}
	for i := 1; i < daily.Len(); i++ {
		extremes.Max = math.Max(extremes.Max, daily.TemperatureMax[i])
		extremes.Min = math.Min(extremes.Min, daily.TemperatureMin[i])
	}

	rainy := 0
	for _, code := range daily.WeatherCode {
		if isRainy(code) {
			rainy++
		}
	}

	summary := SummaryNoPrecipitation
	if rainy >= precipitationDaysThreshold {
		summary = SummaryWithPrecipitation
	}

	return SummaryResponse{
		AveragePressure:      round2(mean(hourly.SurfacePressure)),
		AverageSunshineHours: round2(sumSunshine / float64(daily.Len())),
		ExtremeTemperatures:  extremes,
		WeatherSummary:       summary,
		RainyDaysCount:       rainy,
	}, nil
}

// validate checks that every daily array is present and index-aligned.
func (d DailySeries) validate() error {
	n := d.Len()
	if n == 0 {
		return fmt.Errorf("%w: daily series is empty", ErrUpstreamMalformed)
	}
	if len(d.WeatherCode) != n || len(d.TemperatureMax) != n ||
		len(d.TemperatureMin) != n || len(d.SunshineDuration) != n {
		return fmt.Errorf("%w: daily arrays are not aligned (time=%d weathercode=%d max=%d min=%d sunshine=%d)",
			ErrUpstreamMalformed, n, len(d.WeatherCode), len(d.TemperatureMax),
			len(d.TemperatureMin), len(d.SunshineDuration))
	}
	return nil
}

func sunshineHours(seconds float64) float64 {
	return seconds / 3600
}

func generatedEnergyKWh(hours float64) float64 {
	return PlantRatingKW * hours * PanelEfficiency
}

func isRainy(code int) bool {
	return code >= rainyCodeMin && code <= rainyCodeMax
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// round2 rounds to two decimal places, halves to even.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
