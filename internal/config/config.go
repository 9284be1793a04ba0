package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"required,oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"required,oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/pipeline.log"`
}

// PipelineConfig contains the tunable knobs of the two pipeline stages.
// File locations stay in Paths; these are behavioral settings only.
type PipelineConfig struct {
	// DateColumns are the raw columns normalized to calendar dates in stage 1.
	DateColumns []string `yaml:"date_columns" envconfig:"DATE_COLUMNS" default:"Order Date,Ship Date" validate:"min=1"`
	// DateIndexColumn keys the daily table in stage 2.
	DateIndexColumn string `yaml:"date_index_column" envconfig:"DATE_INDEX_COLUMN" default:"Order Date" validate:"required"`
	// SeasonalPeriod is the decomposition period in months.
	SeasonalPeriod int `yaml:"seasonal_period" envconfig:"SEASONAL_PERIOD" default:"12" validate:"min=2"`
	// RollingWindows are the trailing monthly mean windows.
	RollingWindows []int `yaml:"rolling_windows" envconfig:"ROLLING_WINDOWS" default:"3,6" validate:"min=1"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SALESPIPE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no environment or file
// overrides are present. Stage binaries fall back to it when Load fails.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: "logs/pipeline.log",
		},
		Pipeline: PipelineConfig{
			DateColumns:     []string{"Order Date", "Ship Date"},
			DateIndexColumn: "Order Date",
			SeasonalPeriod:  12,
			RollingWindows:  []int{3, 6},
		},
	}
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if len(envConfig.Pipeline.DateColumns) == 0 {
		envConfig.Pipeline.DateColumns = fileConfig.Pipeline.DateColumns
	}
	if envConfig.Pipeline.DateIndexColumn == "" {
		envConfig.Pipeline.DateIndexColumn = fileConfig.Pipeline.DateIndexColumn
	}
	if envConfig.Pipeline.SeasonalPeriod == 0 {
		envConfig.Pipeline.SeasonalPeriod = fileConfig.Pipeline.SeasonalPeriod
	}
	if len(envConfig.Pipeline.RollingWindows) == 0 {
		envConfig.Pipeline.RollingWindows = fileConfig.Pipeline.RollingWindows
	}
	return envConfig
}

// getConfigFilePath returns the config file location next to the executable
func getConfigFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yaml")
}
