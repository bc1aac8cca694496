package config

import (
	"strings"
	"testing"
	"time"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.WSKey = "key"
	cfg.WSSecret = "secret"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "missing key",
			mutate: func(cfg *Config) {
				cfg.WSKey = ""
			},
			wantErr: "WSKey",
		},
		{
			name: "missing secret",
			mutate: func(cfg *Config) {
				cfg.WSSecret = ""
			},
			wantErr: "WSSecret",
		},
		{
			name: "empty base url",
			mutate: func(cfg *Config) {
				cfg.BaseURL = ""
			},
			wantErr: "base URL",
		},
		{
			name: "base url without host",
			mutate: func(cfg *Config) {
				cfg.BaseURL = "https://"
			},
			wantErr: "base URL",
		},
		{
			name: "empty token url",
			mutate: func(cfg *Config) {
				cfg.TokenURL = ""
			},
			wantErr: "token URL",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "zero search limit",
			mutate: func(cfg *Config) {
				cfg.SearchLimit = 0
			},
			wantErr: "search limit",
		},
		{
			name: "negative strategy pause",
			mutate: func(cfg *Config) {
				cfg.StrategyPause = -time.Millisecond
			},
			wantErr: "strategy pause",
		},
		{
			name: "negative request pause",
			mutate: func(cfg *Config) {
				cfg.RequestPause = -time.Millisecond
			},
			wantErr: "request pause",
		},
		{
			name: "empty output file",
			mutate: func(cfg *Config) {
				cfg.OutputFile = ""
			},
			wantErr: "output file",
		},
		{
			name: "bad output format",
			mutate: func(cfg *Config) {
				cfg.OutputFormat = "xml"
			},
			wantErr: "output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValidWithCredentials(t *testing.T) {
	if err := testConfig().Validate(); err != nil {
		t.Fatalf("default config with credentials should validate, got %v", err)
	}
}

func TestDefaultConfigSearchOffset(t *testing.T) {
	if got := DefaultConfig().SearchOffset; got != 1 {
		t.Fatalf("search offset = %d, want 1", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("AVOCADO_TEST_INT", "42")
	value, ok, err := EnvInt("AVOCADO_TEST_INT")
	if err != nil || !ok || value != 42 {
		t.Fatalf("EnvInt = (%d, %v, %v), want (42, true, nil)", value, ok, err)
	}

	t.Setenv("AVOCADO_TEST_INT", "forty-two")
	if _, _, err := EnvInt("AVOCADO_TEST_INT"); err == nil {
		t.Fatalf("expected error for non-integer value")
	}
}
