package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"Order Date", "Ship Date"}, cfg.Pipeline.DateColumns)
	assert.Equal(t, "Order Date", cfg.Pipeline.DateIndexColumn)
	assert.Equal(t, 12, cfg.Pipeline.SeasonalPeriod)
	assert.Equal(t, []int{3, 6}, cfg.Pipeline.RollingWindows)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
		},
		{
			name:   "empty log level",
			mutate: func(c *Config) { c.Logging.Level = "" },
		},
		{
			name:   "seasonal period below minimum",
			mutate: func(c *Config) { c.Pipeline.SeasonalPeriod = 1 },
		},
		{
			name:   "missing date index column",
			mutate: func(c *Config) { c.Pipeline.DateIndexColumn = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMergeConfigsEnvTakesPrecedence(t *testing.T) {
	fileCfg := Config{
		Logging: LoggingConfig{Level: "debug", Output: "file", FilePath: "logs/file.log"},
		Pipeline: PipelineConfig{
			DateColumns:     []string{"Order Date"},
			DateIndexColumn: "Order Date",
			SeasonalPeriod:  6,
			RollingWindows:  []int{2},
		},
	}
	envCfg := Config{
		Logging: LoggingConfig{Level: "warn"},
	}

	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, "warn", merged.Logging.Level, "env value wins")
	assert.Equal(t, "file", merged.Logging.Output, "file value fills the gap")
	assert.Equal(t, 6, merged.Pipeline.SeasonalPeriod)
	assert.Equal(t, []int{2}, merged.Pipeline.RollingWindows)
}
