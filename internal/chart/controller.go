package chart

import (
	"ForecastLens/internal/model"
)

const (
	DefaultMinZoomWidth = 10.0
	DefaultZoomStep     = 1.1
	DefaultTickCount    = 5
	DefaultPaddingRatio = 0.1

	// flatPadding widens the y range of a flat series.
	flatPadding = 1.0
)

// Options tunes the viewport behaviour and derived render data.
type Options struct {
	MinZoomWidth float64 `yaml:"min_zoom_width"`
	ZoomStep     float64 `yaml:"zoom_step"`
	TickCount    int     `yaml:"tick_count"`
	PaddingRatio float64 `yaml:"padding_ratio"`
	TickDecimals int32   `yaml:"tick_decimals"`
}

// DefaultOptions returns the stock chart tuning.
func DefaultOptions() Options {
	return Options{
		MinZoomWidth: DefaultMinZoomWidth,
		ZoomStep:     DefaultZoomStep,
		TickCount:    DefaultTickCount,
		PaddingRatio: DefaultPaddingRatio,
	}
}

// withDefaults fills zero fields.
func (o Options) withDefaults() Options {
	if o.MinZoomWidth <= 0 {
		o.MinZoomWidth = DefaultMinZoomWidth
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = DefaultZoomStep
	}
	if o.TickCount <= 0 {
		o.TickCount = DefaultTickCount
	}
	if o.PaddingRatio <= 0 {
		o.PaddingRatio = DefaultPaddingRatio
	}
	if o.TickDecimals < 0 {
		o.TickDecimals = 0
	}
	return o
}

// Controller owns the viewport over a combined historical+forecast series
// and applies zoom and pan gestures to it. It is not safe for concurrent use.
type Controller struct {
	opts       Options
	historical model.Series
	forecast   model.Series
	n          int

	vp         model.Viewport
	panning    bool
	panAnchorX float64
}

// NewController creates a Controller showing the full combined range.
func NewController(historical, forecast model.Series, opts Options) *Controller {
	c := &Controller{opts: opts.withDefaults()}
	c.SetSeries(historical, forecast)
	return c
}

// SetSeries replaces both input series. Replacing the inputs always resets
// zoom and pan state.
func (c *Controller) SetSeries(historical, forecast model.Series) {
	c.historical = historical
	c.forecast = forecast
	c.n = len(historical) + len(forecast)
	c.panning = false
	c.Reset()
}

// Len returns the combined series length.
func (c *Controller) Len() int { return c.n }

// Viewport returns the current viewport.
func (c *Controller) Viewport() model.Viewport { return c.vp }

// IsPanning reports whether a drag is in progress.
func (c *Controller) IsPanning() bool { return c.panning }

// maxWidth is the widest allowed viewport, N-1.
func (c *Controller) maxWidth() float64 {
	if c.n < 1 {
		return 0
	}
	return float64(c.n - 1)
}

// Reset shows the full combined range.
func (c *Controller) Reset() {
	c.vp = model.Viewport{Start: 0, End: c.maxWidth()}
}

// Zoom scales the viewport around the index under pointerX. A negative
// wheelDeltaSign zooms in, zero or positive zooms out. pointerX is in
// plot-local pixels and plotWidth is the current plot width in pixels.
func (c *Controller) Zoom(pointerX, wheelDeltaSign, plotWidth float64) {
	if plotWidth <= 0 || c.n < 2 {
		return
	}
	width := c.vp.Width()
	ratio := pointerX / plotWidth
	hoverIndex := c.vp.Start + ratio*width

	factor := c.opts.ZoomStep
	if wheelDeltaSign < 0 {
		factor = 1 / c.opts.ZoomStep
	}

	newWidth := width * factor
	if newWidth < c.opts.MinZoomWidth {
		newWidth = c.opts.MinZoomWidth
	}
	// the data bound wins over the minimum zoom width on short series
	if newWidth > c.maxWidth() {
		newWidth = c.maxWidth()
	}

	c.vp = c.clamp(hoverIndex-ratio*newWidth, newWidth)
}

// PanStart begins a drag at pointerX. Ignored while already panning.
func (c *Controller) PanStart(pointerX float64) {
	if c.panning {
		return
	}
	c.panning = true
	c.panAnchorX = pointerX
}

// PanMove drags the content by the pointer movement since the last call.
// Dragging right reveals earlier data. The viewport width never changes.
func (c *Controller) PanMove(pointerX, plotWidth float64) {
	if !c.panning || plotWidth <= 0 || c.n < 2 {
		return
	}
	dx := pointerX - c.panAnchorX
	c.panAnchorX = pointerX
	c.PanBy(dx, plotWidth)
}

// PanBy shifts the content by dx pixels as one complete drag. It does not
// touch a drag in progress.
func (c *Controller) PanBy(dx, plotWidth float64) {
	if plotWidth <= 0 || c.n < 2 {
		return
	}
	width := c.vp.Width()
	dIndex := (dx / plotWidth) * width
	c.vp = c.clamp(c.vp.Start-dIndex, width)
}

// PanEnd finishes a drag.
func (c *Controller) PanEnd() {
	c.panning = false
}

// clamp shifts a window of the given width so it lies inside [0, N-1].
func (c *Controller) clamp(start, width float64) model.Viewport {
	end := start + width
	if start < 0 {
		start, end = 0, width
	}
	if end > c.maxWidth() {
		start, end = c.maxWidth()-width, c.maxWidth()
	}
	return model.Viewport{Start: start, End: end}
}

// Render computes the render model of the current viewport for a plot
// area of the given size.
func (c *Controller) Render(plotWidth, plotHeight float64) *model.RenderModel {
	return Render(c.vp, c.historical, c.forecast, plotWidth, plotHeight, c.opts)
}
