// Command chartrender renders one forecast chart window to an SVG or PNG
// file. Gestures given on the command line are applied in the order
// zoom, then pan, before rendering.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"ForecastLens/internal/config"
	"ForecastLens/internal/model"
	"ForecastLens/internal/session"
	"ForecastLens/internal/source"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	_ = godotenv.Load()

	var (
		cfgPath = flag.String("config", "configs/config.yaml", "config file")
		kind    = flag.String("source", "", "series source: mock, file or sqlite (default from config)")
		symbol  = flag.String("symbol", "SPY", "symbol to render")
		out     = flag.String("out", "chart.svg", "output file, .svg or .png")
		width   = flag.Float64("width", 0, "image width (default from config)")
		height  = flag.Float64("height", 0, "image height (default from config)")
		zoom    = flag.Int("zoom", 0, "wheel steps; positive zooms in, negative zooms out")
		at      = flag.Float64("at", 0.5, "zoom anchor as a fraction of the plot width")
		pan     = flag.Float64("pan", 0, "drag distance in pixels; positive reveals earlier data")
		frame   = flag.Bool("json", false, "print the frame as JSON to stdout")
		seed    = flag.Bool("seed", false, "store the loaded forecast set in the sqlite database")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *kind != "" {
		cfg.Source.Kind = *kind
	}
	if *width > 0 && *height > 0 {
		cfg.Chart.Layout.Width, cfg.Chart.Layout.Height = *width, *height
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	src, closeSrc, err := openSource(cfg)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	defer closeSrc()

	ctx := context.Background()
	if *seed {
		if err := seedSQLite(ctx, cfg.Source.SQLitePath, src, *symbol); err != nil {
			log.Fatalf("[FATAL] seed: %v", err)
		}
	}

	sessions := session.NewManager(source.NewCollector(src), cfg.Chart.Layout, cfg.Chart.Options)
	v, err := sessions.Open(ctx, *symbol, model.Layout{})
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	pw := cfg.Chart.Layout.InnerWidth()
	for i := 0; i < abs(*zoom); i++ {
		sign := -1.0
		if *zoom < 0 {
			sign = 1
		}
		v.Zoom(*at*pw, sign, pw)
	}
	if *pan != 0 {
		v.Pan(0, *pan, pw)
	}

	if *frame {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v.Frame()); err != nil {
			log.Fatalf("[FATAL] encode frame: %v", err)
		}
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(*out)) {
	case ".png":
		data, err = v.PNG()
	case ".svg":
		data, err = v.SVG()
	default:
		log.Fatalf("[FATAL] unsupported output %q, use .svg or .png", *out)
	}
	if err != nil {
		log.Fatalf("[FATAL] render: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("[FATAL] write %s: %v", *out, err)
	}
	vp := v.Frame().Viewport
	log.Printf("[INFO] wrote %s (window %.2f to %.2f)", *out, vp.Start, vp.End)
}

func openSource(cfg *config.Config) (source.Source, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceFile:
		return source.NewFileSource(cfg.Source.DataDir), func() {}, nil
	case config.SourceSQLite:
		ss, err := source.NewSQLiteSource(cfg.Source.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite source: %w", err)
		}
		return ss, func() { ss.Close() }, nil
	default:
		return source.NewMockSource(), func() {}, nil
	}
}

// seedSQLite copies the forecast set for symbol from src into the database.
func seedSQLite(ctx context.Context, dbPath string, src source.Source, symbol string) error {
	set, err := source.NewCollector(src).Collect(ctx, symbol)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := source.NewSQLiteSource(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Save(ctx, set); err != nil {
		return err
	}
	log.Printf("[INFO] seeded %s into %s", set.Symbol, dbPath)
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
