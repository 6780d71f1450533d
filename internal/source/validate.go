package source

import (
	"fmt"
	"math"
	"time"

	"ForecastLens/internal/model"
)

// Validate checks the contract a chart view relies on: a non-empty
// historical series, ISO dates strictly increasing across the combined
// series, and finite prices. The forecast may be empty.
func Validate(set *model.ForecastSet) error {
	if set == nil {
		return fmt.Errorf("%w: nil set", ErrInvalid)
	}
	if len(set.Historical) == 0 {
		return fmt.Errorf("%w: historical series is empty", ErrInvalid)
	}
	var prev time.Time
	for i, p := range model.Combine(set.Historical, set.Forecast) {
		d, err := time.Parse(model.DateLayout, p.Date)
		if err != nil {
			return fmt.Errorf("%w: point %d: bad date %q", ErrInvalid, i, p.Date)
		}
		if i > 0 && !d.After(prev) {
			return fmt.Errorf("%w: point %d: date %s is not after %s", ErrInvalid, i, p.Date, prev.Format(model.DateLayout))
		}
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return fmt.Errorf("%w: point %d: price is not finite", ErrInvalid, i)
		}
		prev = d
	}
	return nil
}
