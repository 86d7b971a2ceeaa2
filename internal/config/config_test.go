package config

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-energy-service/internal/weather"
)

// chdir switches the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

// clearEnv blanks every key Load reads; empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "HTTP_TIMEOUT", "OPEN_METEO_URL", "CORS_ALLOW_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT", "PROBE_INTERVAL", "PROBE_LATITUDE",
		"PROBE_LONGITUDE", "PROBE_MAX_HISTORY", "PROBE_MAX_AGE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Errorf("Port = %q, Addr = %q", cfg.Port, cfg.Addr())
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.OpenMeteoURL != "https://api.open-meteo.com/v1/forecast" {
		t.Errorf("OpenMeteoURL = %q", cfg.OpenMeteoURL)
	}
	if cfg.CORSAllowOrigins != "*" {
		t.Errorf("CORSAllowOrigins = %q, want *", cfg.CORSAllowOrigins)
	}
	if cfg.ProbeInterval != 15*time.Minute || cfg.ProbeMaxAge != 24*time.Hour || cfg.ProbeMaxHistory != 96 {
		t.Errorf("probe settings = %v/%v/%d", cfg.ProbeInterval, cfg.ProbeMaxAge, cfg.ProbeMaxHistory)
	}
	want := weather.Coordinate{Latitude: 52.23, Longitude: 21.01}
	if cfg.ProbeLocation != want {
		t.Errorf("ProbeLocation = %+v, want %+v", cfg.ProbeLocation, want)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("PROBE_INTERVAL", "0")
	t.Setenv("PROBE_LATITUDE", "-33.87")
	t.Setenv("PROBE_LONGITUDE", "151.21")
	t.Setenv("PROBE_MAX_HISTORY", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %q, want :9090", cfg.Addr())
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v, want 3s", cfg.HTTPTimeout)
	}
	if cfg.ProbeInterval != 0 {
		t.Errorf("ProbeInterval = %v, want 0", cfg.ProbeInterval)
	}
	if cfg.ProbeLocation.Latitude != -33.87 || cfg.ProbeLocation.Longitude != 151.21 {
		t.Errorf("ProbeLocation = %+v", cfg.ProbeLocation)
	}
	if cfg.ProbeMaxHistory != 96 {
		t.Errorf("ProbeMaxHistory = %d, want default 96 for invalid input", cfg.ProbeMaxHistory)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad timeout", "HTTP_TIMEOUT", "ten seconds", "HTTP_TIMEOUT"},
		{"bad probe interval", "PROBE_INTERVAL", "often", "PROBE_INTERVAL"},
		{"bad probe age", "PROBE_MAX_AGE", "1 day", "PROBE_MAX_AGE"},
		{"probe latitude out of range", "PROBE_LATITUDE", "123", "PROBE_LATITUDE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &AppConfig{LogLevel: tt.level, LogFormat: "json"}
			logger := cfg.NewLogger()

			if !logger.Enabled(context.Background(), tt.want) {
				t.Errorf("level %v should be enabled", tt.want)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-1) {
				t.Errorf("level below %v should be disabled", tt.want)
			}
		})
	}
}
