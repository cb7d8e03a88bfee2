package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/hrops/award-intake/internal/config"
	"github.com/hrops/award-intake/internal/logging"
)

func TestPrintVersion(t *testing.T) {
	// Save original stdout
	originalStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	// Redirect stdout to the pipe
	os.Stdout = w

	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = "1.2.3"
	buildTime = "2026-08-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
		os.Stdout = originalStdout
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	output := buf.String()

	expectedStrings := []string{
		"Award Intake",
		"Version: 1.2.3",
		"Build Time: 2026-08-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestVersionFlagDetection(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		hasVersion bool
	}{
		{
			name:       "no version flag",
			args:       []string{"program"},
			hasVersion: false,
		},
		{
			name:       "-version flag",
			args:       []string{"program", "-version"},
			hasVersion: true,
		},
		{
			name:       "--version flag",
			args:       []string{"program", "--version"},
			hasVersion: true,
		},
		{
			name:       "-v flag",
			args:       []string{"program", "-v"},
			hasVersion: true,
		},
		{
			name:       "similar but not version flag",
			args:       []string{"program", "-verbose", "-versions"},
			hasVersion: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, arg := range tt.args[1:] { // Skip program name
				if arg == "-version" || arg == "--version" || arg == "-v" {
					found = true
					break
				}
			}

			if found != tt.hasVersion {
				t.Errorf("Version flag detection for %v: got %v, want %v", tt.args, found, tt.hasVersion)
			}
		})
	}
}

func TestLoadTablesDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TablesPath = ""

	tables, criteria, aliases, err := loadTables(cfg)
	if err != nil {
		t.Fatalf("loadTables() with no tables file: %v", err)
	}
	if len(tables.Organizations) == 0 {
		t.Error("Expected built-in org tables to define organizations")
	}
	if len(criteria.ValueOptions) == 0 || len(criteria.ExtentOptions) == 0 {
		t.Error("Expected built-in criteria tiers to be populated")
	}
	if len(aliases.Fields) == 0 {
		t.Error("Expected built-in alias table for the standard variant")
	}
}

func TestLoadTablesUnknownVariant(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Variant = "experimental"

	if _, _, _, err := loadTables(cfg); err == nil {
		t.Error("loadTables() with an unknown variant should fail")
	}
}

func TestNewRunnerWiring(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InboxDir = dir
	cfg.ArchiveDir = dir
	cfg.Interactive = false

	runner, err := newRunner(cfg, logging.New(io.Discard, "error"))
	if err != nil {
		t.Fatalf("newRunner() failed: %v", err)
	}
	if runner == nil {
		t.Fatal("newRunner() returned nil runner")
	}

	// An empty inbox is a clean no-op run.
	summary, err := runner.Run(dir)
	if err != nil {
		t.Fatalf("Run() on empty inbox failed: %v", err)
	}
	if len(summary.Processed) != 0 || len(summary.Failed) != 0 {
		t.Errorf("Run() on empty inbox: processed=%d failed=%d, want 0/0",
			len(summary.Processed), len(summary.Failed))
	}
}
