package source

import (
	"context"
	"fmt"
	"log"

	"ForecastLens/internal/model"
)

// Collector loads forecast sets from a Source and checks them before they
// reach a chart view.
type Collector struct {
	Source Source
}

// NewCollector creates a new Collector.
func NewCollector(src Source) *Collector {
	return &Collector{Source: src}
}

// Collect loads and validates the forecast set for symbol.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.ForecastSet, error) {
	sym := NormalizeSymbol(symbol)
	if !validSymbol(sym) {
		return nil, fmt.Errorf("%w: symbol %q", ErrInvalid, symbol)
	}
	set, err := c.Source.Load(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("load %s from %s: %w", sym, c.Source.Name(), err)
	}
	if err := Validate(set); err != nil {
		return nil, fmt.Errorf("validate %s: %w", sym, err)
	}
	if set.Symbol == "" {
		set.Symbol = sym
	}
	if len(set.Forecast) == 0 {
		log.Printf("[WARN] %s has no forecast points, chart shows history only", sym)
	}
	log.Printf("[INFO] loaded %s from %s: %d historical, %d forecast points",
		sym, c.Source.Name(), len(set.Historical), len(set.Forecast))
	return set, nil
}
