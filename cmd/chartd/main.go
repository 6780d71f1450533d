package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ForecastLens/internal/bot"
	"ForecastLens/internal/config"
	"ForecastLens/internal/notifier"
	"ForecastLens/internal/scheduler"
	"ForecastLens/internal/server"
	"ForecastLens/internal/session"
	"ForecastLens/internal/source"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ForecastLens starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init series source
	var src source.Source
	switch cfg.Source.Kind {
	case config.SourceFile:
		src = source.NewFileSource(cfg.Source.DataDir)
	case config.SourceSQLite:
		ss, err := source.NewSQLiteSource(cfg.Source.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] init sqlite source: %v", err)
		}
		defer ss.Close()
		src = ss
	default:
		src = source.NewMockSource()
	}
	log.Printf("[INFO] series source: %s", src.Name())

	sessions := session.NewManager(source.NewCollector(src), cfg.Chart.Layout, cfg.Chart.Options)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(sessions, cfg.Session.IdleTimeout)
	if err := sched.RegisterAll(cfg.Session.SweepCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start HTTP host
	srv := server.NewServer(cfg.Server.Addr, sessions)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
	}()

	// Start Telegram polling
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		b := bot.New(sessions, cfg.Chart.Layout)
		go tn.StartPolling(ctx, b.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	} else {
		log.Println("[INFO] Telegram disabled, no bot token configured")
	}

	log.Println("[INFO] ForecastLens is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] ForecastLens stopped")
}
