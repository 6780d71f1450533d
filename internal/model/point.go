package model

// DateLayout is the ISO calendar date format used by Point.Date.
const DateLayout = "2006-01-02"

// Point is a single dated price observation or projection.
type Point struct {
	Date  string  `json:"date" yaml:"date"`
	Price float64 `json:"price" yaml:"price"`
}

// Series is an ordered, chronological sequence of points.
type Series []Point

// Prices returns the price column of the series.
func (s Series) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// Combine concatenates historical and forecast into one index space:
// historical occupies [0, H) and forecast [H, H+F).
func Combine(historical, forecast Series) Series {
	all := make(Series, 0, len(historical)+len(forecast))
	all = append(all, historical...)
	all = append(all, forecast...)
	return all
}

// ForecastSet is what a data source hands to a chart view.
type ForecastSet struct {
	Symbol     string `json:"symbol" yaml:"symbol"`
	Summary    string `json:"summary" yaml:"summary"`
	Verdict    string `json:"verdict" yaml:"verdict"`
	Historical Series `json:"historical" yaml:"historical"`
	Forecast   Series `json:"forecast" yaml:"forecast"`
}

// Len returns the combined series length.
func (s *ForecastSet) Len() int {
	return len(s.Historical) + len(s.Forecast)
}
