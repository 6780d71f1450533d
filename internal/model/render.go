package model

// Vertex is a point in plot-local coordinates.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Path is a polyline in plot-local coordinates. D holds the move/line
// command string; both fields are empty when fewer than two vertices exist.
type Path struct {
	D        string   `json:"d"`
	Vertices []Vertex `json:"vertices"`
}

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool {
	return len(p.Vertices) < 2
}

// Tick is a horizontal gridline with its label.
type Tick struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Boundary is the historical/forecast separator marker.
type Boundary struct {
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
}

// RenderModel is everything derived from a viewport and its two series.
// It is recomputed on every state change and never patched in place.
type RenderModel struct {
	Viewport         Viewport `json:"viewport"`
	StartIndex       int      `json:"startIndex"`
	Visible          Series   `json:"visible"`
	HistoricalCount  int      `json:"historicalCount"`
	YMin             float64  `json:"yMin"`
	YMax             float64  `json:"yMax"`
	Historical       Path     `json:"historical"`
	Forecast         Path     `json:"forecast"`
	CombinedForecast Path     `json:"combinedForecast"`
	Ticks            []Tick   `json:"ticks"`
	Boundary         Boundary `json:"boundary"`
	Width            float64  `json:"width"`
	Height           float64  `json:"height"`
}

// Empty reports whether nothing is visible.
func (m *RenderModel) Empty() bool {
	return len(m.Visible) == 0
}
