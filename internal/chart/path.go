package chart

import (
	"strconv"
	"strings"

	"ForecastLens/internal/model"
)

// newPath builds a polyline from vertices in index order. Fewer than two
// vertices give an empty path so no stray single-point marks are drawn.
func newPath(vertices []model.Vertex) model.Path {
	if len(vertices) < 2 {
		return model.Path{}
	}
	var b strings.Builder
	for i, v := range vertices {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatCoord(v.X))
		b.WriteByte(' ')
		b.WriteString(formatCoord(v.Y))
	}
	return model.Path{D: b.String(), Vertices: vertices}
}

// formatCoord prints the shortest exact representation of v.
func formatCoord(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
