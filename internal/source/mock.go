package source

import (
	"context"
	"time"

	"ForecastLens/internal/model"
)

// MockSource returns controllable synthetic ramps for development and testing.
// Historical prices rise linearly from Start to Pivot; the forecast continues
// from Pivot to Target.
type MockSource struct {
	HistoricalDays int
	ForecastDays   int
	Start          float64
	Pivot          float64
	Target         float64
	Verdict        string
	Summary        string
	// Anchor is the first forecast date; zero means today (UTC).
	Anchor time.Time
}

// NewMockSource returns the stock 100-day history / 60-day forecast ramp.
func NewMockSource() *MockSource {
	return &MockSource{
		HistoricalDays: 100,
		ForecastDays:   60,
		Start:          100,
		Pivot:          200,
		Target:         220,
		Verdict:        "Bullish",
		Summary:        "Steady uptrend expected to continue at a slower pace.",
	}
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Load(_ context.Context, symbol string) (*model.ForecastSet, error) {
	anchor := m.Anchor
	if anchor.IsZero() {
		anchor = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return &model.ForecastSet{
		Symbol:     symbol,
		Summary:    m.Summary,
		Verdict:    m.Verdict,
		Historical: generateRamp(anchor.AddDate(0, 0, -m.HistoricalDays), m.HistoricalDays, m.Start, m.Pivot, true),
		Forecast:   generateRamp(anchor, m.ForecastDays, m.Pivot, m.Target, false),
	}, nil
}

// generateRamp returns count daily points moving linearly from `from` to `to`.
// With includeFrom the first point sits on `from`; otherwise the ramp starts
// one step after it, as a continuation does.
func generateRamp(first time.Time, count int, from, to float64, includeFrom bool) model.Series {
	if count <= 0 {
		return nil
	}
	points := make(model.Series, count)
	for i := 0; i < count; i++ {
		var frac float64
		switch {
		case includeFrom && count > 1:
			frac = float64(i) / float64(count-1)
		case includeFrom:
			frac = 0
		default:
			frac = float64(i+1) / float64(count)
		}
		points[i] = model.Point{
			Date:  first.AddDate(0, 0, i).Format(model.DateLayout),
			Price: from + (to-from)*frac,
		}
	}
	return points
}
