package chart

import (
	"math"

	"github.com/shopspring/decimal"

	"ForecastLens/internal/calculator"
	"ForecastLens/internal/model"
)

// Render derives the visible slice, y range, paths, ticks and boundary
// marker for a viewport. It is a pure function: the same inputs always
// produce byte-identical paths.
func Render(vp model.Viewport, historical, forecast model.Series, plotWidth, plotHeight float64, opts Options) *model.RenderModel {
	opts = opts.withDefaults()
	out := &model.RenderModel{
		Viewport:        vp,
		HistoricalCount: len(historical),
		Width:           plotWidth,
		Height:          plotHeight,
	}

	all := model.Combine(historical, forecast)
	n := len(all)
	startIdx := int(math.Floor(vp.Start))
	endIdx := int(math.Ceil(vp.End))
	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > n-1 {
		endIdx = n - 1
	}
	if n == 0 || startIdx > endIdx {
		return out
	}
	visible := all[startIdx : endIdx+1]

	low, high, err := calculator.PriceRange(visible.Prices())
	if err != nil {
		return out
	}
	yMin, yMax := calculator.PadRange(low, high, opts.PaddingRatio, flatPadding)
	// a span beyond float64 has no drawable scale
	if span := yMax - yMin; math.IsInf(span, 0) || math.IsNaN(span) {
		return out
	}

	xScale := calculator.Linear{D0: vp.Start, D1: vp.End, R0: 0, R1: plotWidth}
	yScale := calculator.Linear{D0: yMin, D1: yMax, R0: plotHeight, R1: 0}
	vertexAt := func(i int) model.Vertex {
		return model.Vertex{X: xScale.Map(float64(i)), Y: yScale.Map(all[i].Price)}
	}

	h := len(historical)
	var histVerts []model.Vertex
	for i := startIdx; i < min(h, endIdx+1); i++ {
		histVerts = append(histVerts, vertexAt(i))
	}
	var forecastVerts []model.Vertex
	for i := max(h, startIdx); i <= endIdx; i++ {
		forecastVerts = append(forecastVerts, vertexAt(i))
	}

	// Splice the last historical point onto the forecast line so the two
	// segments read as one continuous line.
	combinedVerts := forecastVerts
	boundary := h - 1
	if h > 0 && len(forecastVerts) > 0 && startIdx <= boundary && boundary <= endIdx {
		combinedVerts = make([]model.Vertex, 0, len(forecastVerts)+1)
		combinedVerts = append(combinedVerts, vertexAt(boundary))
		combinedVerts = append(combinedVerts, forecastVerts...)
	}

	out.StartIndex = startIdx
	out.Visible = visible
	out.YMin = yMin
	out.YMax = yMax
	out.Historical = newPath(histVerts)
	out.Forecast = newPath(forecastVerts)
	out.CombinedForecast = newPath(combinedVerts)
	out.Ticks = buildTicks(yMin, yMax, yScale, opts)
	if h > 0 && vp.Contains(float64(boundary)) {
		out.Boundary = model.Boundary{Visible: true, X: xScale.Map(float64(boundary))}
	}
	return out
}

func buildTicks(yMin, yMax float64, yScale calculator.Linear, opts Options) []model.Tick {
	values := calculator.EvenSteps(yMin, yMax, opts.TickCount)
	ticks := make([]model.Tick, len(values))
	for i, v := range values {
		ticks[i] = model.Tick{
			Value: v,
			Y:     yScale.Map(v),
			Label: decimal.NewFromFloat(v).StringFixed(opts.TickDecimals),
		}
	}
	return ticks
}
