package model

// Viewport is the continuous range of combined indices currently visible.
type Viewport struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Width returns End - Start.
func (v Viewport) Width() float64 {
	return v.End - v.Start
}

// Contains reports whether index lies inside [Start, End].
func (v Viewport) Contains(index float64) bool {
	return v.Start <= index && index <= v.End
}
