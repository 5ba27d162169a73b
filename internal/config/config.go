package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"FusionSentinel/internal/backtest"
	"FusionSentinel/internal/model"
)

var validate = validator.New()

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		Enabled  bool   `yaml:"enabled" default:"true"`
		BotToken string `yaml:"bot_token" validate:"required_if=Enabled true"`
		ChatID   string `yaml:"chat_id" validate:"required_if=Enabled true"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider string   `yaml:"provider" default:"yahoo" validate:"oneof=yahoo http mock"`
		BaseURL  string   `yaml:"base_url" validate:"omitempty,url"`
		APIKey   string   `yaml:"api_key"`
		Symbols  []string `yaml:"symbols" validate:"required,min=1,dive,required"`
		Days     int      `yaml:"days" default:"300" validate:"gte=2,lte=5000"`
		Proxy    string   `yaml:"proxy" validate:"omitempty,url"`
	} `yaml:"data_source"`
	Schedule struct {
		AnalyzeCron string `yaml:"analyze_cron" default:"0 0 22 * * 1-5" validate:"required"`
	} `yaml:"schedule"`
	Analysis struct {
		Mode       string             `yaml:"mode" default:"long-term" validate:"oneof=long-term short-term"`
		AllowShort bool               `yaml:"allow_short"`
		Profiles   map[string]Weights `yaml:"profiles"`
	} `yaml:"analysis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/fusion_sentinel.db"`
	} `yaml:"database"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr" default:":9090" validate:"required_if=Enabled true"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
	} `yaml:"logging"`
}

// Weights is a weight profile override as written in the config file.
type Weights struct {
	Technical   float64 `yaml:"technical"`
	Fundamental float64 `yaml:"fundamental"`
	Positioning float64 `yaml:"positioning"`
	News        float64 `yaml:"news"`
}

// Load applies struct defaults, then the YAML file, then environment variable
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"^GSPC"}
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.DataSource.Symbols = append(cfg.DataSource.Symbols, s)
			}
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("ANALYSIS_MODE"); v != "" {
		cfg.Analysis.Mode = v
	}
	if v := os.Getenv("CRON_ANALYZE"); v != "" {
		cfg.Schedule.AnalyzeCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks struct constraints and the weight profile overrides.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("config %s: failed %q rule", e.Namespace(), e.Tag())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	if c.DataSource.Provider == "http" && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required for the http provider")
	}
	if _, err := c.WeightProfiles(); err != nil {
		return err
	}
	return nil
}

// Mode returns the configured default analysis mode.
func (c *Config) Mode() model.Mode {
	m, err := model.ParseMode(c.Analysis.Mode)
	if err != nil {
		return model.ModeLongTerm
	}
	return m
}

// WeightProfiles converts the profile overrides into validated weight profiles.
func (c *Config) WeightProfiles() (map[model.Mode]model.WeightProfile, error) {
	out := make(map[model.Mode]model.WeightProfile, len(c.Analysis.Profiles))
	for name, w := range c.Analysis.Profiles {
		mode, err := model.ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("analysis.profiles: %w", err)
		}
		p := model.WeightProfile{Name: mode, Weights: map[model.Dimension]float64{
			model.DimTechnical:   w.Technical,
			model.DimFundamental: w.Fundamental,
			model.DimPositioning: w.Positioning,
			model.DimNews:        w.News,
		}}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("analysis.profiles: %w", err)
		}
		out[mode] = p
	}
	return out, nil
}

// Backtest returns the crossover configuration for a mode.
func (c *Config) Backtest(mode model.Mode) backtest.Config {
	bt := backtest.DefaultConfig(mode)
	bt.AllowShort = c.Analysis.AllowShort
	return bt
}

// Backtests returns the crossover configuration of every mode, so commands
// that switch mode at runtime see the same settings as the scheduled run.
func (c *Config) Backtests() map[model.Mode]backtest.Config {
	return map[model.Mode]backtest.Config{
		model.ModeLongTerm:  c.Backtest(model.ModeLongTerm),
		model.ModeShortTerm: c.Backtest(model.ModeShortTerm),
	}
}
