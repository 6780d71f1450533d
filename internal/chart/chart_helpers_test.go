package chart

import (
	"time"

	"ForecastLens/internal/model"
)

const eps = 1e-9

// rampSeries returns n points moving linearly from `from` towards `to`,
// dated one day apart starting at start.
func rampSeries(start time.Time, n int, from, to float64, includeFrom bool) model.Series {
	s := make(model.Series, n)
	for i := 0; i < n; i++ {
		var p float64
		if includeFrom {
			p = from + (to-from)*float64(i)/float64(n-1)
		} else {
			p = from + (to-from)*float64(i+1)/float64(n)
		}
		s[i] = model.Point{Date: start.AddDate(0, 0, i).Format(model.DateLayout), Price: p}
	}
	return s
}

// exampleSeries is 100 historical points rising 100->200 followed by
// 60 forecast points continuing 200->220.
func exampleSeries() (model.Series, model.Series) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := rampSeries(t0, 100, 100, 200, true)
	f := rampSeries(t0.AddDate(0, 0, 100), 60, 200, 220, false)
	return h, f
}
