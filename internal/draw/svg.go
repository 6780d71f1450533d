package draw

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"ForecastLens/internal/model"
	"ForecastLens/internal/verdict"
)

// Palette of the chart.
const (
	colorBackground = "#1D2023"
	colorGrid       = "#374151"
	colorLabel      = "#9CA3AF"
	colorHistorical = "#60A5FA"
	colorForecast   = "#84E46E"
	colorBoundary   = "#4B5563"
)

// Options describes the document around a render model.
type Options struct {
	Layout         model.Layout
	HistoricalDays int
	ForecastDays   int
	Verdict        string
	Summary        string
}

// Title returns the chart title, e.g. "100-Day History with 60-Day Forecast".
func (o Options) Title() string {
	return fmt.Sprintf("%d-Day History with %d-Day Forecast", o.HistoricalDays, o.ForecastDays)
}

// SVG writes a standalone SVG document for the render model. The model
// must have been rendered for o.Layout's inner plot size.
func SVG(w io.Writer, m *model.RenderModel, o Options) error {
	l := o.Layout
	iw, ih := l.InnerWidth(), l.InnerHeight()
	var b bytes.Buffer

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" role="img" aria-labelledby="chart-title">`,
		num(l.Width), num(l.Height))
	fmt.Fprintf(&b, `<title id="chart-title">%s</title>`, html.EscapeString(o.Title()))
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, colorBackground)
	fmt.Fprintf(&b, `<defs><clipPath id="chart-clip"><rect x="0" y="0" width="%s" height="%s"/></clipPath></defs>`,
		num(iw), num(ih))
	fmt.Fprintf(&b, `<g transform="translate(%s, %s)">`, num(l.Margin.Left), num(l.Margin.Top))

	for _, t := range m.Ticks {
		fmt.Fprintf(&b, `<line x1="0" x2="%s" y1="%s" y2="%s" stroke="%s" stroke-width="0.5"/>`,
			num(iw), num(t.Y), num(t.Y), colorGrid)
	}
	for _, t := range m.Ticks {
		fmt.Fprintf(&b, `<text x="-5" y="%s" text-anchor="end" dominant-baseline="middle" fill="%s" font-size="10">%s</text>`,
			num(t.Y), colorLabel, html.EscapeString(t.Label))
	}

	b.WriteString(`<g clip-path="url(#chart-clip)">`)
	if !m.Historical.Empty() {
		fmt.Fprintf(&b, `<path class="historical" d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round"/>`,
			m.Historical.D, colorHistorical)
	}
	if !m.CombinedForecast.Empty() {
		fmt.Fprintf(&b, `<path class="forecast" d="%s" fill="none" stroke="%s" stroke-width="2" stroke-dasharray="4 4" stroke-linecap="round"/>`,
			m.CombinedForecast.D, colorForecast)
	}
	b.WriteString(`</g>`)

	if m.Boundary.Visible {
		fmt.Fprintf(&b, `<line class="boundary" x1="%s" x2="%s" y1="0" y2="%s" stroke="%s" stroke-width="1" stroke-dasharray="2 3"/>`,
			num(m.Boundary.X), num(m.Boundary.X), num(ih), colorBoundary)
	}
	b.WriteString(`</g>`)

	writeLegend(&b, l)
	if o.Verdict != "" {
		writeBadge(&b, l, o.Verdict)
	}
	b.WriteString(`</svg>`)

	_, err := w.Write(b.Bytes())
	return err
}

func writeLegend(b *bytes.Buffer, l model.Layout) {
	y := l.Height - l.Margin.Bottom/3
	cx := l.Width / 2
	fmt.Fprintf(b, `<g class="legend" font-size="10" fill="%s">`, colorLabel)
	fmt.Fprintf(b, `<line x1="%s" x2="%s" y1="%s" y2="%s" stroke="%s" stroke-width="2"/>`,
		num(cx-90), num(cx-78), num(y), num(y), colorHistorical)
	fmt.Fprintf(b, `<text x="%s" y="%s" dominant-baseline="middle">Historical</text>`, num(cx-72), num(y))
	fmt.Fprintf(b, `<line x1="%s" x2="%s" y1="%s" y2="%s" stroke="%s" stroke-width="2" stroke-dasharray="4 4"/>`,
		num(cx+10), num(cx+22), num(y), num(y), colorForecast)
	fmt.Fprintf(b, `<text x="%s" y="%s" dominant-baseline="middle">Forecast</text>`, num(cx+28), num(y))
	b.WriteString(`</g>`)
}

func writeBadge(b *bytes.Buffer, l model.Layout, v string) {
	class := verdict.Classify(v)
	st := verdict.StyleFor(class)
	label := strings.ToUpper(strings.TrimSpace(v))
	x := l.Width - l.Margin.Right
	y := l.Margin.Top / 2
	fmt.Fprintf(b, `<text class="verdict verdict-%s" x="%s" y="%s" text-anchor="end" dominant-baseline="middle" font-size="10" font-weight="bold" fill="%s" stroke="%s" stroke-width="0.2">%s</text>`,
		class, num(x), num(y), st.Text, st.Border, html.EscapeString(label))
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
