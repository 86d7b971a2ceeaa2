package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-energy-service/internal/weather"
)

type fakeProber struct {
	calls      atomic.Int32
	noDeadline atomic.Bool
	seen       chan weather.Coordinate
	ok         bool
}

func (f *fakeProber) Probe(ctx context.Context, loc weather.Coordinate) weather.ProbeResult {
	f.calls.Add(1)
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		f.noDeadline.Store(true)
	}
	if f.seen != nil {
		select {
		case f.seen <- loc:
		default:
		}
	}
	return weather.ProbeResult{Provider: "fake", Timestamp: time.Now(), OK: f.ok}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_DisabledInterval(t *testing.T) {
	prober := &fakeProber{}
	s := New(weather.Coordinate{}, 0, prober, discardLogger())

	if err := s.Start(); err != nil {
		t.Fatalf("Start() unexpected error = %v", err)
	}
	s.Stop()

	if n := prober.calls.Load(); n != 0 {
		t.Errorf("prober called %d times with probing disabled", n)
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	for _, ok := range []bool{true, false} {
		prober := &fakeProber{ok: ok}
		s := New(weather.Coordinate{Latitude: 1, Longitude: 2}, time.Minute, prober, discardLogger())

		s.RunOnce()

		if n := prober.calls.Load(); n != 1 {
			t.Errorf("ok=%v: prober called %d times, want 1", ok, n)
		}
		if prober.noDeadline.Load() {
			t.Errorf("ok=%v: probe ran without a deadline", ok)
		}
	}
}

func TestScheduler_StartProbesImmediately(t *testing.T) {
	loc := weather.Coordinate{Latitude: 52.23, Longitude: 21.01}
	prober := &fakeProber{ok: true, seen: make(chan weather.Coordinate, 1)}
	s := New(loc, time.Hour, prober, discardLogger())

	if err := s.Start(); err != nil {
		t.Fatalf("Start() unexpected error = %v", err)
	}
	defer s.Stop()

	select {
	case got := <-prober.seen:
		if got != loc {
			t.Errorf("probed %+v, want %+v", got, loc)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("first probe did not run after Start")
	}
}
