package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FusionSentinel/internal/model"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATA_PROVIDER", "DATA_BASE_URL", "DATA_API_KEY",
		"SYMBOLS", "HTTPS_PROXY", "ANALYSIS_MODE", "CRON_ANALYZE", "SQLITE_PATH", "METRICS_ADDR", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Telegram.Enabled)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, 300, cfg.DataSource.Days)
	assert.Equal(t, []string{"^GSPC"}, cfg.DataSource.Symbols)
	assert.Equal(t, "0 0 22 * * 1-5", cfg.Schedule.AnalyzeCron)
	assert.Equal(t, model.ModeLongTerm, cfg.Mode())
	assert.Equal(t, "data/fusion_sentinel.db", cfg.Database.SQLitePath)
	assert.Equal(t, "info", cfg.Logging.Level)

	// telegram is enabled by default but has no credentials
	assert.Error(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  enabled: false
data_source:
  provider: mock
  symbols: [AAPL, MSFT]
  days: 120
analysis:
  mode: short-term
  allow_short: true
  profiles:
    short-term: {technical: 0.7, fundamental: 0.0, positioning: 0.1, news: 0.2}
`)
	t.Setenv("SYMBOLS", "TSLA, NVDA")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.False(t, cfg.Telegram.Enabled)
	assert.Equal(t, "mock", cfg.DataSource.Provider)
	assert.Equal(t, 120, cfg.DataSource.Days)
	assert.Equal(t, []string{"TSLA", "NVDA"}, cfg.DataSource.Symbols)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, model.ModeShortTerm, cfg.Mode())

	profiles, err := cfg.WeightProfiles()
	require.NoError(t, err)
	assert.Equal(t, 0.7, profiles[model.ModeShortTerm].Weights[model.DimTechnical])

	bt := cfg.Backtest(model.ModeShortTerm)
	assert.True(t, bt.AllowShort)
	assert.Equal(t, 5, bt.Fast)

	// allow_short reaches the mode that is not the configured default too
	all := cfg.Backtests()
	require.Len(t, all, 2)
	assert.True(t, all[model.ModeLongTerm].AllowShort)
	assert.Equal(t, 20, all[model.ModeLongTerm].Fast)
	assert.True(t, all[model.ModeShortTerm].AllowShort)
}

func TestValidate_Rejects(t *testing.T) {
	tests := map[string]string{
		"bad-provider": "telegram: {enabled: false}\ndata_source: {provider: ftp}\n",
		"http-no-url":  "telegram: {enabled: false}\ndata_source: {provider: http}\n",
		"bad-mode":     "telegram: {enabled: false}\nanalysis: {mode: weekly}\n",
		"bad-profile":  "telegram: {enabled: false}\nanalysis: {profiles: {long-term: {technical: 0.9, fundamental: 0.9}}}\n",
		"bad-level":    "telegram: {enabled: false}\nlogging: {level: loud}\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := Load(writeConfig(t, body))
			require.NoError(t, err)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_ParseError(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "telegram: [unclosed"))
	assert.Error(t, err)
}
