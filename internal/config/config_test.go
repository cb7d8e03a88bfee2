package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCurrentFiscalYear(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"january stays in the calendar year", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 2026},
		{"september stays in the calendar year", time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), 2026},
		{"october rolls into the next fiscal year", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), 2027},
		{"december rolls into the next fiscal year", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), 2027},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentFiscalYear(tt.now); got != tt.want {
				t.Errorf("CurrentFiscalYear(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Category != "IND" {
		t.Errorf("Expected default category to be 'IND', got '%s'", cfg.Category)
	}
	if cfg.Variant != "standard" {
		t.Errorf("Expected default variant to be 'standard', got '%s'", cfg.Variant)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 50*1024*1024 {
		t.Errorf("Expected default max file size to be 50MB, got %d", cfg.MaxFileSize)
	}
	if cfg.FiscalYear != CurrentFiscalYear(time.Now()) {
		t.Errorf("Expected default fiscal year to match the clock, got %d", cfg.FiscalYear)
	}
	if !cfg.Interactive {
		t.Error("Expected default config to be interactive")
	}
	if len(cfg.SkipMarkers) == 0 {
		t.Error("Expected default skip markers to be populated")
	}
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.InboxDir = dir
	cfg.ArchiveDir = filepath.Join(dir, "archive")
	cfg.RecordStorePath = filepath.Join(dir, "records.json")
	cfg.TSVLogPath = filepath.Join(dir, "awards.tsv")
	cfg.CounterStorePath = filepath.Join(dir, "log_id.yaml")
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*testing.T, *Config) {},
			wantErr: false,
		},
		{
			name:    "empty inbox",
			mutate:  func(_ *testing.T, c *Config) { c.InboxDir = "" },
			wantErr: true,
		},
		{
			name:    "missing inbox",
			mutate:  func(_ *testing.T, c *Config) { c.InboxDir = "/nonexistent/inbox/path" },
			wantErr: true,
		},
		{
			name: "target file set",
			mutate: func(t *testing.T, c *Config) {
				path := filepath.Join(c.InboxDir, "form042.pdf")
				if err := os.WriteFile(path, []byte("%PDF-1.7"), 0o600); err != nil {
					t.Fatalf("Failed to write target file: %v", err)
				}
				c.TargetFile = path
			},
			wantErr: false,
		},
		{
			name:    "missing target file",
			mutate:  func(_ *testing.T, c *Config) { c.TargetFile = "/nonexistent/form042.pdf" },
			wantErr: true,
		},
		{
			name:    "target file is a directory",
			mutate:  func(_ *testing.T, c *Config) { c.TargetFile = c.InboxDir },
			wantErr: true,
		},
		{
			name:    "empty counter path",
			mutate:  func(_ *testing.T, c *Config) { c.CounterStorePath = "" },
			wantErr: true,
		},
		{
			name:    "empty category",
			mutate:  func(_ *testing.T, c *Config) { c.Category = "" },
			wantErr: true,
		},
		{
			name:    "unknown variant",
			mutate:  func(_ *testing.T, c *Config) { c.Variant = "experimental" },
			wantErr: true,
		},
		{
			name:    "stale fiscal year",
			mutate:  func(_ *testing.T, c *Config) { c.FiscalYear-- },
			wantErr: true,
		},
		{
			name:    "zero max file size",
			mutate:  func(_ *testing.T, c *Config) { c.MaxFileSize = 0 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(_ *testing.T, c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(t, cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
