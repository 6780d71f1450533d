package calculator

// Linear maps the domain [D0, D1] onto the range [R0, R1].
// An inverted range (R0 > R1) flips the axis, as screen y does.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// Map converts a domain value to its range position. A zero-width domain
// maps everything to R0.
func (l Linear) Map(v float64) float64 {
	span := l.D1 - l.D0
	if span == 0 {
		return l.R0
	}
	return l.R0 + (v-l.D0)/span*(l.R1-l.R0)
}
