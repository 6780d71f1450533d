package draw

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ForecastLens/internal/model"
)

// PNG renders the visible window of the render model as a PNG image.
// It works in data space (index, price) and lets go-chart do the scaling,
// pinned to the same viewport and y range as the SVG output.
func PNG(m *model.RenderModel, o Options) ([]byte, error) {
	if m.Empty() {
		return nil, fmt.Errorf("nothing visible to render")
	}

	var histX, histY, fcX, fcY []float64
	boundary := m.HistoricalCount - 1
	for i, p := range m.Visible {
		idx := m.StartIndex + i
		if idx < m.HistoricalCount {
			histX = append(histX, float64(idx))
			histY = append(histY, p.Price)
		}
		// the forecast line starts on the last historical point
		if idx >= m.HistoricalCount || (idx == boundary && !m.CombinedForecast.Empty()) {
			fcX = append(fcX, float64(idx))
			fcY = append(fcY, p.Price)
		}
	}

	var series []chart.Series
	if len(histX) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Historical",
			XValues: histX,
			YValues: histY,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(colorHistorical[1:]),
				StrokeWidth: 2,
			},
		})
	}
	if len(fcX) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Forecast",
			XValues: fcX,
			YValues: fcY,
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex(colorForecast[1:]),
				StrokeWidth:     2,
				StrokeDashArray: []float64{4, 4},
			},
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("need at least 2 visible points, got %d", len(m.Visible))
	}

	ticks := make([]chart.Tick, len(m.Ticks))
	for i, t := range m.Ticks {
		ticks[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}

	l := o.Layout
	graph := chart.Chart{
		Title:  o.Title(),
		Width:  int(l.Width),
		Height: int(l.Height),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    int(l.Margin.Top),
				Left:   int(l.Margin.Left),
				Right:  int(l.Margin.Right),
				Bottom: int(l.Margin.Bottom),
			},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: m.Viewport.Start, Max: m.Viewport.End},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return dateAt(m, f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: m.YMin, Max: m.YMax},
			Ticks: ticks,
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.ColorFromHex(colorGrid[1:]),
				StrokeWidth: 0.5,
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// dateAt returns the date of the visible point nearest to a combined index.
func dateAt(m *model.RenderModel, index float64) string {
	i := int(index+0.5) - m.StartIndex
	if i < 0 || i >= len(m.Visible) {
		return ""
	}
	return m.Visible[i].Date
}
