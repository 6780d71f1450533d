package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"ForecastLens/internal/model"
)

const (
	segmentHistorical = "historical"
	segmentForecast   = "forecast"
)

// SQLiteSource stores forecast sets in a SQLite database.
type SQLiteSource struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteSource opens (or creates) the SQLite database and runs migrations.
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers (chart views) run while a loader writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteSource{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite source opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteSource) Name() string { return "sqlite" }

func (s *SQLiteSource) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS forecast_sets (
			symbol     TEXT PRIMARY KEY,
			summary    TEXT,
			verdict    TEXT,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS forecast_points (
			symbol   TEXT NOT NULL,
			segment  TEXT NOT NULL,
			position INTEGER NOT NULL,
			date     TEXT NOT NULL,
			price    REAL NOT NULL,
			PRIMARY KEY (symbol, segment, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_points_symbol ON forecast_points(symbol)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// Save replaces the stored forecast set for set.Symbol.
func (s *SQLiteSource) Save(ctx context.Context, set *model.ForecastSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sym := NormalizeSymbol(set.Symbol)
	if !validSymbol(sym) {
		return fmt.Errorf("%w: symbol %q", ErrInvalid, set.Symbol)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO forecast_sets
		(symbol, summary, verdict, updated_at) VALUES (?,?,?,?)`,
		sym, set.Summary, set.Verdict, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("upsert set: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM forecast_points WHERE symbol = ?`, sym); err != nil {
		return fmt.Errorf("clear points: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO forecast_points
		(symbol, segment, position, date, price) VALUES (?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare points: %w", err)
	}
	defer stmt.Close()

	insert := func(segment string, series model.Series) error {
		for i, p := range series {
			if _, err := stmt.ExecContext(ctx, sym, segment, i, p.Date, p.Price); err != nil {
				return fmt.Errorf("insert %s point %d: %w", segment, i, err)
			}
		}
		return nil
	}
	if err := insert(segmentHistorical, set.Historical); err != nil {
		return err
	}
	if err := insert(segmentForecast, set.Forecast); err != nil {
		return err
	}
	return tx.Commit()
}

// Load reads the forecast set for symbol, or ErrNotFound.
func (s *SQLiteSource) Load(ctx context.Context, symbol string) (*model.ForecastSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := &model.ForecastSet{Symbol: symbol}
	err := s.db.QueryRowContext(ctx,
		`SELECT summary, verdict FROM forecast_sets WHERE symbol = ?`, symbol,
	).Scan(&set.Summary, &set.Verdict)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query set: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT segment, date, price FROM forecast_points
		WHERE symbol = ?
		ORDER BY CASE segment WHEN 'historical' THEN 0 ELSE 1 END, position`, symbol)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var segment string
		var p model.Point
		if err := rows.Scan(&segment, &p.Date, &p.Price); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		if segment == segmentHistorical {
			set.Historical = append(set.Historical, p)
		} else {
			set.Forecast = append(set.Forecast, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
	}
	return set, nil
}

// Symbols lists the stored symbols in alphabetical order.
func (s *SQLiteSource) Symbols(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT symbol FROM forecast_sets ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

func (s *SQLiteSource) Close() error {
	log.Println("[INFO] closing sqlite source")
	return s.db.Close()
}
