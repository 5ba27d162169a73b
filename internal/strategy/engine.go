// Package strategy scores an instrument along four dimensions and fuses them
// into one classified signal.
package strategy

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"FusionSentinel/internal/backtest"
	"FusionSentinel/internal/calculator"
	"FusionSentinel/internal/model"
	"FusionSentinel/internal/report"
	"FusionSentinel/internal/risk"
)

// Engine runs the full analysis pipeline. It holds no per-run state and is
// safe for concurrent use.
type Engine struct {
	profiles map[model.Mode]model.WeightProfile
	scorers  []Scorer
	backtest map[model.Mode]backtest.Config
	clock    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine) error

// WithProfiles overrides the weight profile of the modes it names.
func WithProfiles(profiles map[model.Mode]model.WeightProfile) Option {
	return func(e *Engine) error {
		merged, err := MergeProfiles(profiles)
		if err != nil {
			return err
		}
		e.profiles = merged
		return nil
	}
}

// WithSource backs a non-technical dimension with a data source.
func WithSource(d model.Dimension, src Source) Option {
	return func(e *Engine) error {
		if d == model.DimTechnical {
			return fmt.Errorf("the %s dimension is scored from indicators", d)
		}
		for i, s := range e.scorers {
			if s.Dimension() == d {
				e.scorers[i] = SimulatedScorer{Dim: d, Source: src}
				return nil
			}
		}
		return fmt.Errorf("unknown dimension %q", d)
	}
}

// WithClock stamps reports with now() instead of the latest bar's time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		e.clock = now
		return nil
	}
}

// WithBacktest sets the crossover configuration used for a mode.
func WithBacktest(mode model.Mode, cfg backtest.Config) Option {
	return func(e *Engine) error {
		if _, err := model.ParseMode(string(mode)); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.backtest[mode] = cfg
		return nil
	}
}

// NewEngine builds an engine with the default profiles and unsourced
// simulated dimensions, then applies opts.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		profiles: DefaultProfiles(),
		scorers: []Scorer{
			TechnicalScorer{},
			SimulatedScorer{Dim: model.DimFundamental},
			SimulatedScorer{Dim: model.DimPositioning},
			SimulatedScorer{Dim: model.DimNews},
		},
		backtest: map[model.Mode]backtest.Config{
			model.ModeLongTerm:  backtest.DefaultConfig(model.ModeLongTerm),
			model.ModeShortTerm: backtest.DefaultConfig(model.ModeShortTerm),
		},
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("configure engine: %w", err)
		}
	}
	return e, nil
}

// Analyze produces the report for one series under mode. It fails only when
// the mode is unknown or the series is malformed; every other shortfall is
// reported inside the Report.
func (e *Engine) Analyze(series *model.PriceSeries, mode model.Mode) (*model.Report, error) {
	if _, err := model.ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	profile := e.profiles[mode]

	var (
		set *model.IndicatorSet
		bt  model.BacktestSummary
	)
	var g errgroup.Group
	g.Go(func() error {
		set = calculator.Compute(series.Bars)
		return nil
	})
	g.Go(func() error {
		bt = backtest.Run(series.Bars, e.backtest[mode])
		return nil
	})
	_ = g.Wait()

	in := Inputs{Series: series, Indicators: set}
	results := make([]model.DimensionScore, len(e.scorers))
	var sg errgroup.Group
	for i, s := range e.scorers {
		sg.Go(func() error {
			results[i] = s.Score(in)
			return nil
		})
	}
	_ = sg.Wait()

	scores := make(map[model.Dimension]model.DimensionScore, len(results))
	for _, r := range results {
		scores[r.Dimension] = r
		if r.Degraded {
			log.Debug().Str("symbol", series.Symbol).Str("dimension", string(r.Dimension)).
				Strs("rationale", r.Rationale).Msg("dimension degraded")
		}
	}

	fusion := Fuse(scores, profile)
	atr := 0.0
	if ind, ok := set.Get(model.IndATR); ok && ind.OK() {
		atr = ind.Value
	}
	lv := risk.Levels(set.Close, atr, fusion.Classification.Direction())

	return report.Assemble(report.Parts{
		Symbol:      series.Symbol,
		Mode:        mode,
		GeneratedAt: e.stamp(series),
		Indicators:  set,
		Dimensions:  scores,
		Fusion:      &fusion,
		Backtest:    &bt,
		Risk:        &lv,
	}), nil
}

func (e *Engine) stamp(series *model.PriceSeries) time.Time {
	if e.clock != nil {
		return e.clock()
	}
	if bar, ok := series.Last(); ok {
		return bar.Time
	}
	return time.Time{}
}

var defaultEngine, _ = NewEngine()

// Analyze runs the default engine.
func Analyze(series *model.PriceSeries, mode model.Mode) (*model.Report, error) {
	return defaultEngine.Analyze(series, mode)
}
