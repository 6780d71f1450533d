package notifier

import (
	"fmt"
	"html"
	"strings"

	"ForecastLens/internal/calculator"
	"ForecastLens/internal/model"
	"ForecastLens/internal/verdict"
)

var classIcons = map[verdict.Class]string{
	verdict.ClassPositive: "🟢",
	verdict.ClassNeutral:  "🟡",
	verdict.ClassNegative: "🔴",
	verdict.ClassUnknown:  "⚪",
}

// FormatChartSummary formats the caption of a chart reply: verdict, the
// visible date range and the visible price range.
func FormatChartSummary(symbol, verdictText, summary string, m *model.RenderModel) string {
	var b strings.Builder

	class := verdict.Classify(verdictText)
	b.WriteString(fmt.Sprintf("📈 <b>%s</b>", html.EscapeString(symbol)))
	if verdictText != "" {
		b.WriteString(fmt.Sprintf(" | %s %s", classIcons[class], html.EscapeString(strings.ToUpper(verdictText))))
	}
	b.WriteString("\n")
	if summary != "" {
		b.WriteString(html.EscapeString(summary) + "\n")
	}
	b.WriteString("\n")

	if m == nil || m.Empty() {
		b.WriteString("Nothing visible.")
		return b.String()
	}

	first, last := m.Visible[0], m.Visible[len(m.Visible)-1]
	b.WriteString(fmt.Sprintf("Range: %s → %s (%d points)\n", first.Date, last.Date, len(m.Visible)))
	if low, high, err := calculator.PriceRange(m.Visible.Prices()); err == nil {
		b.WriteString(fmt.Sprintf("Price: %.2f to %.2f\n", low, high))
	}
	b.WriteString(fmt.Sprintf("Window: %.1f to %.1f", m.Viewport.Start, m.Viewport.End))
	if m.Boundary.Visible {
		b.WriteString(" | forecast boundary in view")
	}
	return b.String()
}

// FormatHelp lists the chat commands.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	b.WriteString("• /chart SYMBOL open a chart\n")
	b.WriteString("• /list stored symbols\n")
	b.WriteString("• /zoomin /zoomout zoom around the centre\n")
	b.WriteString("• /left /right pan by a quarter window\n")
	b.WriteString("• /reset show the full range\n")
	b.WriteString("• /close close the chart")
	return b.String()
}
