package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default source endpoints, in fallback priority order.
const (
	DefaultLottolyzerURL = "https://en.lottolyzer.com/history/hong-kong/mark-six"
	DefaultIcelamURL     = "https://raw.githubusercontent.com/icelam/mark-six-data-visualization/master/data/all.json"
	DefaultWilliammwURL  = "https://raw.githubusercontent.com/williammw/marksixheatmap/master/MarkSix.csv"
)

// Config holds all application configuration.
type Config struct {
	Sources struct {
		LottolyzerURL string `yaml:"lottolyzer_url"`
		IcelamURL     string `yaml:"icelam_url"`
		WilliammwURL  string `yaml:"williammw_url"`
	} `yaml:"sources"`
	HistoryFile string `yaml:"history_file"`
	Database    struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
	Proxy              string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error: the tool runs on defaults.
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
	if v := os.Getenv("MARKSIX_HISTORY_FILE"); v != "" {
		cfg.HistoryFile = v
	}
	if v := os.Getenv("MARKSIX_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MARKSIX_HTTP_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTPTimeoutSeconds = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Sources.LottolyzerURL == "" {
		cfg.Sources.LottolyzerURL = DefaultLottolyzerURL
	}
	if cfg.Sources.IcelamURL == "" {
		cfg.Sources.IcelamURL = DefaultIcelamURL
	}
	if cfg.Sources.WilliammwURL == "" {
		cfg.Sources.WilliammwURL = DefaultWilliammwURL
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = "data/history.csv"
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 15
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Sources.LottolyzerURL == "" {
		return fmt.Errorf("sources.lottolyzer_url is required")
	}
	if c.Sources.IcelamURL == "" {
		return fmt.Errorf("sources.icelam_url is required")
	}
	if c.Sources.WilliammwURL == "" {
		return fmt.Errorf("sources.williammw_url is required")
	}
	if c.HistoryFile == "" {
		return fmt.Errorf("history_file is required")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("http_timeout_seconds must be positive")
	}
	return nil
}
