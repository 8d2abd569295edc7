package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Input struct {
		CSVPath  string `yaml:"csv_path"`
		Symbol   string `yaml:"symbol"`
		FromYear int    `yaml:"from_year"`
		ToYear   int    `yaml:"to_year"`
	} `yaml:"input"`
	Analysis struct {
		PeriodsPerYear float64 `yaml:"periods_per_year"`
		MinTradingDays int     `yaml:"min_trading_days"`
		ATRPeriod      int     `yaml:"atr_period"`
		RollingWindow  int     `yaml:"rolling_window"`
	} `yaml:"analysis"`
	Output struct {
		CSVPath    string `yaml:"csv_path"`
		ChartPath  string `yaml:"chart_path"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"output"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; flags and env
// can carry the whole configuration.
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
	if v := os.Getenv("VOLSCOPE_CSV"); v != "" {
		cfg.Input.CSVPath = v
	}
	if v := os.Getenv("VOLSCOPE_SYMBOL"); v != "" {
		cfg.Input.Symbol = v
	}
	if v := os.Getenv("VOLSCOPE_SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}
	if v := os.Getenv("VOLSCOPE_REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("VOLSCOPE_ATR_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.ATRPeriod = n
		}
	}

	// Defaults
	if cfg.Input.Symbol == "" {
		cfg.Input.Symbol = "SPY"
	}
	if cfg.Input.FromYear == 0 {
		cfg.Input.FromYear = 2015
	}
	if cfg.Input.ToYear == 0 {
		cfg.Input.ToYear = 2025
	}
	if cfg.Analysis.PeriodsPerYear == 0 {
		cfg.Analysis.PeriodsPerYear = 252
	}
	if cfg.Analysis.MinTradingDays == 0 {
		cfg.Analysis.MinTradingDays = 10
	}
	if cfg.Analysis.ATRPeriod == 0 {
		cfg.Analysis.ATRPeriod = 14
	}
	if cfg.Analysis.RollingWindow == 0 {
		cfg.Analysis.RollingWindow = 30
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "out/volatility_summary.csv"
	}
	if cfg.Output.ChartPath == "" {
		cfg.Output.ChartPath = "out/volatility_report.html"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.Input.CSVPath == "" {
		return fmt.Errorf("input.csv_path is required")
	}
	if c.Input.FromYear > c.Input.ToYear {
		return fmt.Errorf("input.from_year %d is after input.to_year %d", c.Input.FromYear, c.Input.ToYear)
	}
	if c.Analysis.PeriodsPerYear <= 0 {
		return fmt.Errorf("analysis.periods_per_year must be positive")
	}
	if c.Analysis.MinTradingDays < 2 {
		return fmt.Errorf("analysis.min_trading_days must be at least 2")
	}
	if c.Analysis.ATRPeriod <= 0 {
		return fmt.Errorf("analysis.atr_period must be positive")
	}
	if c.Analysis.RollingWindow < 2 {
		return fmt.Errorf("analysis.rolling_window must be at least 2")
	}
	return nil
}
