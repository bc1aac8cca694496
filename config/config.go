package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds enrichment run configuration.
type Config struct {
	WSKey         string
	WSSecret      string
	TokenURL      string
	BaseURL       string
	Timeout       time.Duration
	SearchLimit   int
	SearchOffset  int // the catalog uses 1-based offsets
	StrategyPause time.Duration
	RequestPause  time.Duration
	InputFile     string
	OutputFile    string
	OutputFormat  string // csv, json, or dual
	MetricsAddr   string
	Verbose       bool
}

// DefaultConfig returns the production defaults for the WorldCat Search
// API v2.
func DefaultConfig() *Config {
	return &Config{
		TokenURL:      "https://oauth.oclc.org/token",
		BaseURL:       "https://americas.discovery.api.oclc.org/worldcat/search/v2",
		Timeout:       30 * time.Second,
		SearchLimit:   10,
		SearchOffset:  1,
		StrategyPause: 200 * time.Millisecond,
		RequestPause:  300 * time.Millisecond,
		OutputFile:    "output/avocado_output.csv",
		OutputFormat:  "csv",
		Verbose:       false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.WSKey == "" {
		return fmt.Errorf("WSKey cannot be empty")
	}
	if c.WSSecret == "" {
		return fmt.Errorf("WSSecret cannot be empty")
	}
	if err := validateURL("token URL", c.TokenURL); err != nil {
		return err
	}
	if err := validateURL("base URL", c.BaseURL); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search limit must be positive")
	}
	if c.SearchOffset < 0 {
		return fmt.Errorf("search offset cannot be negative")
	}
	if c.StrategyPause < 0 {
		return fmt.Errorf("strategy pause cannot be negative")
	}
	if c.RequestPause < 0 {
		return fmt.Errorf("request pause cannot be negative")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	return nil
}

func validateURL(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}

// EnvString reads a non-empty environment variable.
func EnvString(name string) (string, bool) {
	value := os.Getenv(name)
	if value == "" {
		return "", false
	}
	return value, true
}

// EnvInt reads an integer environment variable. The second return value
// reports whether the variable was set.
func EnvInt(name string) (int, bool, error) {
	raw, ok := EnvString(name)
	if !ok {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return value, true, nil
}
