package source

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ForecastLens/internal/model"
)

func sampleSet() *model.ForecastSet {
	m := NewMockSource()
	m.HistoricalDays = 5
	m.ForecastDays = 3
	m.Anchor = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	set, _ := m.Load(context.Background(), "ACME")
	return set
}

func TestMockSource_DefaultRamp(t *testing.T) {
	m := NewMockSource()
	m.Anchor = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	set, err := m.Load(context.Background(), "SPX500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Historical) != 100 || len(set.Forecast) != 60 {
		t.Fatalf("expected 100/60 points, got %d/%d", len(set.Historical), len(set.Forecast))
	}
	if set.Historical[0].Price != 100 || set.Historical[99].Price != 200 {
		t.Errorf("historical should ramp 100->200, got %v->%v", set.Historical[0].Price, set.Historical[99].Price)
	}
	if math.Abs(set.Forecast[59].Price-220) > 1e-9 || set.Forecast[0].Price <= 200 {
		t.Errorf("forecast should continue 200->220, got %v->%v", set.Forecast[0].Price, set.Forecast[59].Price)
	}
	if set.Forecast[0].Date != "2024-01-01" || set.Historical[99].Date != "2023-12-31" {
		t.Errorf("unexpected boundary dates %s / %s", set.Historical[99].Date, set.Forecast[0].Date)
	}
	if err := Validate(set); err != nil {
		t.Errorf("mock set should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ForecastSet)
		ok     bool
	}{
		{"valid", func(*model.ForecastSet) {}, true},
		{"no forecast", func(s *model.ForecastSet) { s.Forecast = nil }, true},
		{"no history", func(s *model.ForecastSet) { s.Historical = nil }, false},
		{"bad date", func(s *model.ForecastSet) { s.Historical[1].Date = "06/11/2024" }, false},
		{"out of order", func(s *model.ForecastSet) { s.Forecast[0].Date = s.Historical[0].Date }, false},
		{"nan price", func(s *model.ForecastSet) { s.Forecast[2].Price = math.NaN() }, false},
	}
	for _, tt := range tests {
		set := sampleSet()
		tt.mutate(set)
		err := Validate(set)
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestFileSource_RoundTrip(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "forecasts"))
	set := sampleSet()
	if err := src.Save(set); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := src.Load(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Verdict != set.Verdict || len(got.Historical) != 5 || len(got.Forecast) != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Forecast[2] != set.Forecast[2] {
		t.Errorf("expected %+v, got %+v", set.Forecast[2], got.Forecast[2])
	}

	if _, err := src.Load(context.Background(), "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := src.Load(context.Background(), "../etc/passwd"); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for path-like symbol, got %v", err)
	}
}

func TestListSymbols(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "forecasts")
	src := NewFileSource(dir)

	syms, err := ListSymbols(ctx, src)
	if err != nil || len(syms) != 0 {
		t.Errorf("missing dir should list nothing, got %v (%v)", syms, err)
	}

	for _, sym := range []string{"ZETA", "ACME"} {
		set := sampleSet()
		set.Symbol = sym
		if err := src.Save(set); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "bad name.json"), []byte("{}"), 0644)

	syms, err = ListSymbols(ctx, src)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(syms) != 2 || syms[0] != "ACME" || syms[1] != "ZETA" {
		t.Errorf("expected [ACME ZETA], got %v", syms)
	}

	if _, err := ListSymbols(ctx, NewMockSource()); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("mock source should not list, got %v", err)
	}
}

func TestSQLiteSource_RoundTrip(t *testing.T) {
	src, err := NewSQLiteSource(filepath.Join(t.TempDir(), "lens.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()
	ctx := context.Background()

	set := sampleSet()
	if err := src.Save(ctx, set); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := src.Load(ctx, "ACME")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Summary != set.Summary || got.Verdict != set.Verdict {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if len(got.Historical) != len(set.Historical) || len(got.Forecast) != len(set.Forecast) {
		t.Fatalf("expected %d/%d points, got %d/%d",
			len(set.Historical), len(set.Forecast), len(got.Historical), len(got.Forecast))
	}
	for i := range set.Historical {
		if got.Historical[i] != set.Historical[i] {
			t.Errorf("historical %d: expected %+v, got %+v", i, set.Historical[i], got.Historical[i])
		}
	}

	// saving again replaces the points
	set.Forecast = set.Forecast[:1]
	set.Verdict = "Hold"
	if err := src.Save(ctx, set); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err = src.Load(ctx, "ACME")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Forecast) != 1 || got.Verdict != "Hold" {
		t.Errorf("expected replaced set, got %d forecast points, verdict %q", len(got.Forecast), got.Verdict)
	}

	if _, err := src.Load(ctx, "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	syms, err := src.Symbols(ctx)
	if err != nil || len(syms) != 1 || syms[0] != "ACME" {
		t.Errorf("expected [ACME], got %v (%v)", syms, err)
	}
}

func TestCollector_Collect(t *testing.T) {
	m := NewMockSource()
	c := NewCollector(m)

	set, err := c.Collect(context.Background(), " spx500 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Symbol != "SPX500" {
		t.Errorf("expected normalised symbol, got %q", set.Symbol)
	}

	if _, err := c.Collect(context.Background(), "a/b"); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}

	m.HistoricalDays = 0
	if _, err := c.Collect(context.Background(), "SPX500"); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty history should fail validation, got %v", err)
	}

	fc := NewCollector(NewFileSource(t.TempDir()))
	if _, err := fc.Collect(context.Background(), "MISSING"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound, got %v", err)
	}
}
