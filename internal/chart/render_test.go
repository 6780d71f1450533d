package chart

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"ForecastLens/internal/model"
)

func TestRender_FullView(t *testing.T) {
	h, f := exampleSeries()
	m := Render(model.Viewport{Start: 0, End: 159}, h, f, 1000, 500, DefaultOptions())

	if len(m.Visible) != 160 || m.StartIndex != 0 {
		t.Fatalf("expected 160 visible points from 0, got %d from %d", len(m.Visible), m.StartIndex)
	}
	if math.Abs(m.YMin-88) > eps || math.Abs(m.YMax-232) > eps {
		t.Errorf("expected y range [88,232], got [%v,%v]", m.YMin, m.YMax)
	}
	if len(m.Historical.Vertices) != 100 {
		t.Errorf("expected 100 historical vertices, got %d", len(m.Historical.Vertices))
	}
	if len(m.Forecast.Vertices) != 60 {
		t.Errorf("expected 60 forecast vertices, got %d", len(m.Forecast.Vertices))
	}
	if len(m.CombinedForecast.Vertices) != 61 {
		t.Errorf("expected 61 combined forecast vertices, got %d", len(m.CombinedForecast.Vertices))
	}
	if first := m.Historical.Vertices[0]; first.X != 0 || math.Abs(first.Y-(500-12.0/144*500)) > 1e-6 {
		t.Errorf("unexpected first historical vertex %+v", first)
	}
	if !m.Boundary.Visible || math.Abs(m.Boundary.X-99.0/159*1000) > 1e-6 {
		t.Errorf("expected visible boundary at x=%v, got %+v", 99.0/159*1000, m.Boundary)
	}
}

func TestRender_Ticks(t *testing.T) {
	h, f := exampleSeries()
	m := Render(model.Viewport{Start: 0, End: 159}, h, f, 1000, 500, DefaultOptions())

	wantLabels := []string{"88", "124", "160", "196", "232"}
	if len(m.Ticks) != len(wantLabels) {
		t.Fatalf("expected %d ticks, got %d", len(wantLabels), len(m.Ticks))
	}
	for i, tk := range m.Ticks {
		if tk.Label != wantLabels[i] {
			t.Errorf("tick %d: expected label %q, got %q", i, wantLabels[i], tk.Label)
		}
	}
	if m.Ticks[0].Y != 500 {
		t.Errorf("lowest tick should sit on the plot bottom, got y=%v", m.Ticks[0].Y)
	}
	if math.Abs(m.Ticks[4].Y) > 1e-6 {
		t.Errorf("highest tick should sit on the plot top, got y=%v", m.Ticks[4].Y)
	}

	opts := DefaultOptions()
	opts.TickDecimals = 2
	opts.TickCount = 3
	m = Render(model.Viewport{Start: 0, End: 159}, h, f, 1000, 500, opts)
	if len(m.Ticks) != 3 || m.Ticks[1].Label != "160.00" {
		t.Errorf("expected 3 ticks with middle label 160.00, got %+v", m.Ticks)
	}
}

func TestRender_Deterministic(t *testing.T) {
	h, f := exampleSeries()
	vp := model.Viewport{Start: 12.75, End: 131.4}
	a := Render(vp, h, f, 987, 431, DefaultOptions())
	b := Render(vp, h, f, 987, 431, DefaultOptions())

	if a.Historical.D != b.Historical.D || a.Forecast.D != b.Forecast.D || a.CombinedForecast.D != b.CombinedForecast.D {
		t.Error("path strings differ between identical renders")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("render models differ between identical renders")
	}
}

func TestRender_CombinedForecastContinuity(t *testing.T) {
	h, f := exampleSeries()
	for _, vp := range []model.Viewport{
		{Start: 0, End: 159},
		{Start: 60.3, End: 140.1},
		{Start: 95, End: 110},
	} {
		m := Render(vp, h, f, 1000, 500, DefaultOptions())
		last := m.Historical.Vertices[len(m.Historical.Vertices)-1]
		first := m.CombinedForecast.Vertices[0]
		if first != last {
			t.Errorf("viewport %+v: combined path starts at %+v, last historical is %+v", vp, first, last)
		}
		if m.CombinedForecast.Vertices[1] != m.Forecast.Vertices[0] {
			t.Errorf("viewport %+v: combined path should continue with the forecast vertices", vp)
		}
		if !strings.HasPrefix(m.CombinedForecast.D, "M ") || strings.Count(m.CombinedForecast.D, " L ") != len(m.Forecast.Vertices) {
			t.Errorf("viewport %+v: malformed combined path %q", vp, m.CombinedForecast.D)
		}
	}
}

func TestRender_ForecastOnlyWindow(t *testing.T) {
	h, f := exampleSeries()
	m := Render(model.Viewport{Start: 120, End: 159}, h, f, 1000, 500, DefaultOptions())

	if !m.Historical.Empty() || m.Historical.D != "" {
		t.Errorf("historical path should be empty, got %q", m.Historical.D)
	}
	if m.CombinedForecast.D != m.Forecast.D {
		t.Error("combined path should equal the forecast path when the boundary is off screen")
	}
	if m.Boundary.Visible {
		t.Error("boundary marker should be hidden")
	}
}

func TestRender_SingleForecastPointJoinsBoundary(t *testing.T) {
	h, f := exampleSeries()
	m := Render(model.Viewport{Start: 80, End: 99.5}, h, f, 1000, 500, DefaultOptions())

	if !m.Forecast.Empty() {
		t.Errorf("a single forecast point must not render on its own, got %q", m.Forecast.D)
	}
	if len(m.CombinedForecast.Vertices) != 2 {
		t.Errorf("expected boundary + one forecast vertex, got %d", len(m.CombinedForecast.Vertices))
	}
	if !m.Boundary.Visible {
		t.Error("boundary at index 99 should be visible")
	}
}

func TestRender_FlatSeriesUsesFallbackPadding(t *testing.T) {
	flat := model.Series{
		{Date: "2024-03-01", Price: 50},
		{Date: "2024-03-02", Price: 50},
		{Date: "2024-03-03", Price: 50},
	}
	m := Render(model.Viewport{Start: 0, End: 2}, flat, nil, 200, 100, DefaultOptions())
	if m.YMin != 49 || m.YMax != 51 {
		t.Errorf("expected [49,51], got [%v,%v]", m.YMin, m.YMax)
	}
	for _, v := range m.Historical.Vertices {
		if v.Y != 50 {
			t.Errorf("flat series should render mid-plot, got y=%v", v.Y)
		}
	}
}

func TestRender_EmptyInput(t *testing.T) {
	m := Render(model.Viewport{}, nil, nil, 300, 130, DefaultOptions())
	if !m.Empty() {
		t.Error("expected empty render model")
	}
	if m.Historical.D != "" || m.Forecast.D != "" || m.CombinedForecast.D != "" || len(m.Ticks) != 0 {
		t.Errorf("expected nothing to draw, got %+v", m)
	}
}

func TestRender_OverflowingSpanRendersNothing(t *testing.T) {
	huge := model.Series{
		{Date: "2024-03-01", Price: 1e308},
		{Date: "2024-03-02", Price: -1e308},
		{Date: "2024-03-03", Price: 5},
	}
	m := Render(model.Viewport{Start: 0, End: 2}, huge, nil, 900, 400, DefaultOptions())
	if !m.Empty() || len(m.Ticks) != 0 || m.Historical.D != "" || m.Boundary.Visible {
		t.Errorf("expected empty render model for an unscalable span, got %+v", m)
	}

	c := NewController(huge, nil, DefaultOptions())
	c.Zoom(450, -1, 900)
	if m := c.Render(900, 400); !m.Empty() {
		t.Error("controller render should stay empty")
	}
}

func TestRender_NoForecast(t *testing.T) {
	h, _ := exampleSeries()
	c := NewController(h, nil, DefaultOptions())
	m := c.Render(1000, 500)

	if m.Historical.Empty() {
		t.Fatal("historical line should render")
	}
	if !m.Forecast.Empty() || !m.CombinedForecast.Empty() {
		t.Error("forecast paths should be empty without forecast data")
	}
	if !m.Boundary.Visible || m.Boundary.X != 1000 {
		t.Errorf("boundary should sit on the right edge, got %+v", m.Boundary)
	}
}

func TestNewPath_Format(t *testing.T) {
	p := newPath([]model.Vertex{{X: 0, Y: 100}, {X: 50, Y: 25.5}, {X: 100, Y: 0}})
	if p.D != "M 0 100 L 50 25.5 L 100 0" {
		t.Errorf("unexpected path %q", p.D)
	}
	if single := newPath([]model.Vertex{{X: 1, Y: 1}}); !single.Empty() || single.D != "" {
		t.Errorf("single vertex should give an empty path, got %q", single.D)
	}
}
