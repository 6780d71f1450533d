package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ForecastLens/internal/model"
)

// FileSource reads forecast sets from <Dir>/<SYMBOL>.json.
type FileSource struct {
	Dir string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) path(symbol string) string {
	return filepath.Join(f.Dir, symbol+".json")
}

// Load reads the forecast set for symbol. A missing file yields ErrNotFound.
func (f *FileSource) Load(_ context.Context, symbol string) (*model.ForecastSet, error) {
	if !validSymbol(symbol) {
		return nil, fmt.Errorf("%w: symbol %q", ErrInvalid, symbol)
	}
	data, err := os.ReadFile(f.path(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", symbol, err)
	}
	var set model.ForecastSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode %s: %w", symbol, err)
	}
	if set.Symbol == "" {
		set.Symbol = symbol
	}
	return &set, nil
}

// Symbols lists the symbols with a JSON file in Dir. A missing Dir has none.
func (f *FileSource) Symbols(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		sym, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok || !validSymbol(sym) {
			continue
		}
		out = append(out, sym)
	}
	return out, nil
}

// Save writes the forecast set to its JSON file, creating Dir if needed.
func (f *FileSource) Save(set *model.ForecastSet) error {
	sym := NormalizeSymbol(set.Symbol)
	if !validSymbol(sym) {
		return fmt.Errorf("%w: symbol %q", ErrInvalid, set.Symbol)
	}
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(sym), data, 0644)
}
