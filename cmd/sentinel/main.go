package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"FusionSentinel/internal/collector"
	"FusionSentinel/internal/config"
	"FusionSentinel/internal/logger"
	"FusionSentinel/internal/metrics"
	"FusionSentinel/internal/notifier"
	"FusionSentinel/internal/recorder"
	"FusionSentinel/internal/scheduler"
	"FusionSentinel/internal/strategy"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("FusionSentinel starting")

	// Engine
	profiles, err := cfg.WeightProfiles()
	if err != nil {
		log.Fatal().Err(err).Msg("weight profiles")
	}
	mode := cfg.Mode()
	opts := []strategy.Option{strategy.WithProfiles(profiles)}
	for m, bt := range cfg.Backtests() {
		opts = append(opts, strategy.WithBacktest(m, bt))
	}
	engine, err := strategy.NewEngine(opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("init engine")
	}

	// Data source
	fetcher, err := collector.NewFetcher(cfg.DataSource.Provider, cfg.DataSource.BaseURL,
		cfg.DataSource.APIKey, cfg.DataSource.Proxy)
	if err != nil {
		log.Fatal().Err(err).Msg("init fetcher")
	}
	log.Info().Str("provider", fetcher.Name()).Strs("symbols", cfg.DataSource.Symbols).Msg("data source ready")
	col := collector.NewCollector(fetcher, cfg.DataSource.Days)

	// Recorder
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}
	defer rec.Close()

	// Metrics
	var m *metrics.Recorder
	var srv *http.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram
	var tn *notifier.TelegramNotifier
	var sink notifier.Notifier
	if cfg.Telegram.Enabled {
		tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.DataSource.Proxy)
		if err != nil {
			log.Fatal().Err(err).Msg("init telegram")
		}
		sink = tn
	}

	sched := scheduler.NewScheduler(ctx, col, engine, sink, rec, m, cfg.DataSource.Symbols, mode)
	if err := sched.RegisterAll(cfg.Schedule.AnalyzeCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, analyzing now")
		go sched.RunNow()
	}

	log.Info().Msg("FusionSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	sched.Stop()
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}
	log.Info().Msg("FusionSentinel stopped")
}
