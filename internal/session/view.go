package session

import (
	"bytes"
	"sync"
	"time"

	"ForecastLens/internal/chart"
	"ForecastLens/internal/draw"
	"ForecastLens/internal/model"
	"ForecastLens/internal/verdict"
)

// View is one open chart: a forecast set, its viewport controller and the
// layout it is drawn at. All methods are safe for concurrent use.
type View struct {
	ID string

	mu         sync.Mutex
	set        *model.ForecastSet
	ctrl       *chart.Controller
	layout     model.Layout
	lastActive time.Time
	now        func() time.Time
}

// Frame is the state a host needs to draw a view.
type Frame struct {
	ID           string             `json:"id"`
	Symbol       string             `json:"symbol"`
	Title        string             `json:"title"`
	Summary      string             `json:"summary"`
	Verdict      string             `json:"verdict"`
	VerdictClass verdict.Class      `json:"verdictClass"`
	Layout       model.Layout       `json:"layout"`
	Viewport     model.Viewport     `json:"viewport"`
	Panning      bool               `json:"panning"`
	Render       *model.RenderModel `json:"render"`
}

func newView(id string, set *model.ForecastSet, layout model.Layout, opts chart.Options, now func() time.Time) *View {
	return &View{
		ID:         id,
		set:        set,
		ctrl:       chart.NewController(set.Historical, set.Forecast, opts),
		layout:     layout,
		lastActive: now(),
		now:        now,
	}
}

// Symbol returns the symbol the view was opened for.
func (v *View) Symbol() string { return v.set.Symbol }

// Layout returns the layout the view renders at.
func (v *View) Layout() model.Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout
}

// LastActive returns the time of the last gesture or render.
func (v *View) LastActive() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastActive
}

// Zoom applies a wheel gesture. Only the sign of deltaY matters.
func (v *View) Zoom(pointerX, deltaY, plotWidth float64) Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.Zoom(pointerX, deltaY, plotWidth)
	return v.frameLocked()
}

// Pan applies a complete drag from fromX to toX. A drag in progress from
// another host keeps its anchor.
func (v *View) Pan(fromX, toX, plotWidth float64) Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.PanBy(toX-fromX, plotWidth)
	return v.frameLocked()
}

// PanStart begins a drag at pointerX.
func (v *View) PanStart(pointerX float64) Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.PanStart(pointerX)
	return v.frameLocked()
}

// PanMove continues a drag.
func (v *View) PanMove(pointerX, plotWidth float64) Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.PanMove(pointerX, plotWidth)
	return v.frameLocked()
}

// PanEnd finishes a drag.
func (v *View) PanEnd() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.PanEnd()
	return v.frameLocked()
}

// Reset shows the full range again.
func (v *View) Reset() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.Reset()
	return v.frameLocked()
}

// Resize changes the layout. The viewport is kept.
func (v *View) Resize(layout model.Layout) Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.layout = layout
	return v.frameLocked()
}

// Frame returns the current state without changing it.
func (v *View) Frame() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frameLocked()
}

func (v *View) frameLocked() Frame {
	v.lastActive = v.now()
	return Frame{
		ID:           v.ID,
		Symbol:       v.set.Symbol,
		Title:        v.drawOptions().Title(),
		Summary:      v.set.Summary,
		Verdict:      v.set.Verdict,
		VerdictClass: verdict.Classify(v.set.Verdict),
		Layout:       v.layout,
		Viewport:     v.ctrl.Viewport(),
		Panning:      v.ctrl.IsPanning(),
		Render:       v.ctrl.Render(v.layout.InnerWidth(), v.layout.InnerHeight()),
	}
}

func (v *View) drawOptions() draw.Options {
	return draw.Options{
		Layout:         v.layout,
		HistoricalDays: len(v.set.Historical),
		ForecastDays:   len(v.set.Forecast),
		Verdict:        v.set.Verdict,
		Summary:        v.set.Summary,
	}
}

// SVG renders the current window as an SVG document.
func (v *View) SVG() ([]byte, error) {
	v.mu.Lock()
	f := v.frameLocked()
	o := v.drawOptions()
	v.mu.Unlock()

	var buf bytes.Buffer
	if err := draw.SVG(&buf, f.Render, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PNG renders the current window as a PNG image.
func (v *View) PNG() ([]byte, error) {
	v.mu.Lock()
	f := v.frameLocked()
	o := v.drawOptions()
	v.mu.Unlock()

	return draw.PNG(f.Render, o)
}
