package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ForecastLens/internal/chart"
	"ForecastLens/internal/model"
)

// Source kinds.
const (
	SourceMock   = "mock"
	SourceFile   = "file"
	SourceSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Chart struct {
		Layout  model.Layout  `yaml:",inline"`
		Options chart.Options `yaml:",inline"`
	} `yaml:"chart"`
	Source struct {
		Kind       string `yaml:"kind"`
		DataDir    string `yaml:"data_dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"source"`
	Session struct {
		IdleTimeout time.Duration `yaml:"idle_timeout"`
		SweepCron   string        `yaml:"sweep_cron"`
	} `yaml:"session"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CHART_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SOURCE_KIND"); v != "" {
		cfg.Source.Kind = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Source.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Source.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SESSION_IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Session.IdleTimeout = d
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Chart.Layout.Width == 0 && c.Chart.Layout.Height == 0 {
		c.Chart.Layout = model.Layout{
			Width:  1000,
			Height: 500,
			Margin: model.DefaultLayout().Margin,
		}
	}
	def := chart.DefaultOptions()
	if c.Chart.Options.MinZoomWidth == 0 {
		c.Chart.Options.MinZoomWidth = def.MinZoomWidth
	}
	if c.Chart.Options.ZoomStep == 0 {
		c.Chart.Options.ZoomStep = def.ZoomStep
	}
	if c.Chart.Options.TickCount == 0 {
		c.Chart.Options.TickCount = def.TickCount
	}
	if c.Chart.Options.PaddingRatio == 0 {
		c.Chart.Options.PaddingRatio = def.PaddingRatio
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceMock
	}
	if c.Source.DataDir == "" {
		c.Source.DataDir = "data/forecasts"
	}
	if c.Source.SQLitePath == "" {
		c.Source.SQLitePath = "data/forecast_lens.db"
	}
	if c.Session.IdleTimeout == 0 {
		c.Session.IdleTimeout = 30 * time.Minute
	}
	if c.Session.SweepCron == "" {
		c.Session.SweepCron = "0 */5 * * * *"
	}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Source.Kind {
	case SourceMock, SourceFile, SourceSQLite:
	default:
		return fmt.Errorf("source.kind %q is not one of mock, file, sqlite", c.Source.Kind)
	}
	if c.Chart.Layout.InnerWidth() <= 0 || c.Chart.Layout.InnerHeight() <= 0 {
		return fmt.Errorf("chart width/height must leave a positive plot area after margins")
	}
	if c.Chart.Options.MinZoomWidth <= 0 {
		return fmt.Errorf("chart.min_zoom_width must be positive")
	}
	if c.Chart.Options.ZoomStep <= 1 {
		return fmt.Errorf("chart.zoom_step must be greater than 1")
	}
	if c.Chart.Options.TickCount < 2 {
		return fmt.Errorf("chart.tick_count must be at least 2")
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("session.idle_timeout must be positive")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	return nil
}

// TelegramEnabled reports whether the chat host should run.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}
