package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ForecastLens/internal/chart"
	"ForecastLens/internal/model"
	"ForecastLens/internal/source"
)

// ErrNotFound is returned for an unknown or already closed view id.
var ErrNotFound = errors.New("chart view not found")

// Manager owns the open chart views.
type Manager struct {
	mu        sync.Mutex
	views     map[string]*View
	collector *source.Collector
	layout    model.Layout
	opts      chart.Options
	now       func() time.Time
}

// NewManager creates a manager loading series through col. layout is used
// when Open is called with a zero layout.
func NewManager(col *source.Collector, layout model.Layout, opts chart.Options) *Manager {
	return &Manager{
		views:     make(map[string]*View),
		collector: col,
		layout:    layout,
		opts:      opts,
		now:       time.Now,
	}
}

// Open loads the forecast set for symbol and opens a new view over it.
func (m *Manager) Open(ctx context.Context, symbol string, layout model.Layout) (*View, error) {
	set, err := m.collector.Collect(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", symbol, err)
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		layout = m.layout
	}

	v := newView(uuid.NewString(), set, layout, m.opts, m.now)
	m.mu.Lock()
	m.views[v.ID] = v
	m.mu.Unlock()
	log.Printf("[INFO] opened view %s for %s: %d points at %.0fx%.0f", v.ID, set.Symbol, set.Len(), layout.Width, layout.Height)
	return v, nil
}

// Symbols lists the symbols that can be opened.
func (m *Manager) Symbols(ctx context.Context) ([]string, error) {
	return source.ListSymbols(ctx, m.collector.Source)
}

// Get returns the open view with the given id.
func (m *Manager) Get(id string) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return v, nil
}

// Close dismisses a view. Its viewport state is discarded.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.views[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.views, id)
	log.Printf("[INFO] closed view %s", id)
	return nil
}

// Len returns the number of open views.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}

// Sweep closes views idle for longer than maxIdle and returns how many
// were closed. A non-positive maxIdle closes nothing.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	closed := 0
	for id, v := range m.views {
		if v.LastActive().Before(cutoff) {
			delete(m.views, id)
			closed++
		}
	}
	return closed
}
