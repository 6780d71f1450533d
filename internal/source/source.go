package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"ForecastLens/internal/model"
)

var (
	// ErrNotFound is returned when a source has no forecast set for a symbol.
	ErrNotFound = errors.New("forecast set not found")
	// ErrInvalid wraps every validation failure of a forecast set or symbol.
	ErrInvalid = errors.New("invalid forecast set")
)

// Source supplies the historical and forecast series for a symbol.
type Source interface {
	Load(ctx context.Context, symbol string) (*model.ForecastSet, error)
	Name() string
}

// Lister is implemented by sources that can enumerate their symbols.
type Lister interface {
	Symbols(ctx context.Context) ([]string, error)
}

// ListSymbols returns the symbols src can load, sorted. Sources that cannot
// enumerate yield errors.ErrUnsupported.
func ListSymbols(ctx context.Context, src Source) ([]string, error) {
	l, ok := src.(Lister)
	if !ok {
		return nil, fmt.Errorf("list symbols from %s: %w", src.Name(), errors.ErrUnsupported)
	}
	syms, err := l.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("list symbols from %s: %w", src.Name(), err)
	}
	sort.Strings(syms)
	return syms, nil
}

// NormalizeSymbol upper-cases and trims a symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// validSymbol accepts ticker-like symbols only, so they are safe as file names.
func validSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > 32 {
		return false
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '^', r == '=':
		default:
			return false
		}
	}
	return true
}
