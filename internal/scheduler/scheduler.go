package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"FusionSentinel/internal/collector"
	"FusionSentinel/internal/metrics"
	"FusionSentinel/internal/model"
	"FusionSentinel/internal/notifier"
	"FusionSentinel/internal/recorder"
)

// Analyzer turns a price series into a report.
type Analyzer interface {
	Analyze(series *model.PriceSeries, mode model.Mode) (*model.Report, error)
}

// Scheduler runs analyses on a cron schedule and on command.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    Analyzer
	Notifier  notifier.Notifier // nil disables notifications
	Recorder  recorder.Recorder
	Metrics   *metrics.Recorder // nil disables metrics
	Symbols   []string
	Mode      model.Mode
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, engine Analyzer, tn notifier.Notifier,
	rec recorder.Recorder, m *metrics.Recorder, symbols []string, mode model.Mode) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Engine:    engine,
		Notifier:  tn,
		Recorder:  rec,
		Metrics:   m,
		Symbols:   symbols,
		Mode:      mode,
		Ctx:       ctx,
	}
}

// RegisterAll registers the periodic analysis task.
func (s *Scheduler) RegisterAll(analyzeCron string) error {
	if _, err := s.Cron.AddFunc(analyzeCron, s.analyzeAll); err != nil {
		return fmt.Errorf("register analyze task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("symbols", len(s.Symbols)).Str("mode", string(s.Mode)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow analyzes every configured symbol immediately.
func (s *Scheduler) RunNow() {
	s.analyzeAll()
}

func (s *Scheduler) analyzeAll() {
	log.Info().Strs("symbols", s.Symbols).Msg("running scheduled analysis")
	for _, sym := range s.Symbols {
		if s.Ctx.Err() != nil {
			return
		}
		rep, err := s.AnalyzeSymbol(s.Ctx, sym, s.Mode)
		if err != nil {
			s.trySend(notifier.FormatError(sym, err))
			continue
		}
		s.trySend(notifier.FormatReport(rep))
	}
}

// AnalyzeSymbol fetches, analyzes and records one symbol.
func (s *Scheduler) AnalyzeSymbol(ctx context.Context, symbol string, mode model.Mode) (*model.Report, error) {
	start := time.Now()
	logger := log.With().Str("symbol", symbol).Str("mode", string(mode)).Logger()

	series, err := s.Collector.Collect(ctx, symbol)
	if err != nil {
		logger.Error().Err(err).Msg("collect failed")
		s.recordError("fetch")
		return nil, err
	}

	rep, err := s.Engine.Analyze(series, mode)
	if err != nil {
		logger.Error().Err(err).Msg("analysis failed")
		s.recordError("analyze")
		return nil, err
	}

	runID := uuid.NewString()
	if err := s.Recorder.RecordReport(runID, rep); err != nil {
		logger.Error().Err(err).Msg("record report")
		s.recordError("record")
	}
	if s.Metrics != nil {
		s.Metrics.RecordReport(rep, time.Since(start))
	}
	logger.Info().Str("run_id", runID).Str("signal", rep.Fusion.Classification.String()).
		Float64("score", rep.Fusion.Score).Float64("confidence", rep.Fusion.Confidence).Msg("analysis complete")
	return rep, nil
}

const helpText = "Available commands:\n" +
	"• /analyze [symbol] (configured mode)\n" +
	"• /long [symbol]\n" +
	"• /short [symbol]\n" +
	"• /history [symbol]\n" +
	"• /help"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	name, _, _ := strings.Cut(fields[0], "@")
	symbol := ""
	if len(s.Symbols) > 0 {
		symbol = s.Symbols[0]
	}
	if len(fields) > 1 {
		symbol = strings.ToUpper(fields[1])
	}

	var mode model.Mode
	switch name {
	case "/analyze":
		mode = s.Mode
	case "/long":
		mode = model.ModeLongTerm
	case "/short":
		mode = model.ModeShortTerm
	case "/history":
		rows, err := s.Recorder.Recent(symbol, 10)
		if err != nil {
			return notifier.FormatError(symbol, err)
		}
		return notifier.FormatHistory(symbol, rows)
	default:
		return helpText
	}
	if symbol == "" {
		return "No symbol configured. Usage: " + name + " SYMBOL"
	}

	rep, err := s.AnalyzeSymbol(ctx, symbol, mode)
	if err != nil {
		return notifier.FormatError(symbol, err)
	}
	return notifier.FormatReport(rep)
}

func (s *Scheduler) recordError(stage string) {
	if s.Metrics != nil {
		s.Metrics.RecordError(stage)
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
		s.recordError("notify")
	}
}
