package verdict

import "strings"

// Class is the visual treatment applied to a verdict.
type Class string

const (
	ClassPositive Class = "positive"
	ClassNeutral  Class = "neutral"
	ClassNegative Class = "negative"
	ClassUnknown  Class = "unknown"
)

// Style is the badge palette for a class.
type Style struct {
	Text       string
	Background string
	Border     string
}

// Categories lists the recognised verdicts per class, lower-cased.
var Categories = []struct {
	Class    Class
	Verdicts []string
}{
	{ClassPositive, []string{"strong buy", "buy", "bullish", "positive trend"}},
	{ClassNeutral, []string{"hold", "neutral", "stable"}},
	{ClassNegative, []string{"sell", "strong sell", "bearish", "negative trend", "volatile"}},
}

var styles = map[Class]Style{
	ClassPositive: {Text: "#4ADE80", Background: "#22C55E1A", Border: "#22C55E80"},
	ClassNeutral:  {Text: "#FACC15", Background: "#EAB3081A", Border: "#EAB30880"},
	ClassNegative: {Text: "#F87171", Background: "#EF44441A", Border: "#EF444480"},
	ClassUnknown:  {Text: "#9CA3AF", Background: "#6B72801A", Border: "#6B728080"},
}

// Classify maps a verdict to its class, ignoring case and surrounding
// whitespace. Unrecognised verdicts fall back to ClassUnknown.
func Classify(verdict string) Class {
	v := strings.ToLower(strings.TrimSpace(verdict))
	for _, c := range Categories {
		for _, known := range c.Verdicts {
			if v == known {
				return c.Class
			}
		}
	}
	return ClassUnknown
}

// StyleFor returns the palette of a class.
func StyleFor(c Class) Style {
	if s, ok := styles[c]; ok {
		return s
	}
	return styles[ClassUnknown]
}
