package model

// Margin is the space around the plot area, in layout units.
type Margin struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Layout describes the render dimensions requested by the host.
type Layout struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Margin Margin  `json:"margin" yaml:"margin"`
}

// DefaultLayout is the inline card size.
func DefaultLayout() Layout {
	return Layout{
		Width:  300,
		Height: 180,
		Margin: Margin{Top: 20, Right: 10, Bottom: 30, Left: 35},
	}
}

// InnerWidth returns the plot width after margins, never negative.
func (l Layout) InnerWidth() float64 {
	w := l.Width - l.Margin.Left - l.Margin.Right
	if w < 0 {
		return 0
	}
	return w
}

// InnerHeight returns the plot height after margins, never negative.
func (l Layout) InnerHeight() float64 {
	h := l.Height - l.Margin.Top - l.Margin.Bottom
	if h < 0 {
		return 0
	}
	return h
}
