// Package config holds startup configuration for the award intake tool.
// The config object is built once in main and passed by reference into
// the component constructors; there is no ambient global state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultCategory    = "IND"
	DefaultVariant     = "standard"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// defaultSkipMarkers name form families this intake does not process;
// files whose names carry a marker are left in the inbox untouched.
var defaultSkipMarkers = []string{"GRP", "NA-90"}

// Config holds all configuration for the award intake tool.
type Config struct {
	// Directories
	InboxDir   string // incoming scanned forms
	ArchiveDir string // cold storage for processed source files

	// Stores
	RecordStorePath  string
	TSVLogPath       string
	CounterStorePath string
	TablesPath       string // optional YAML overrides for org, criteria, and alias tables

	// Processing
	TargetFile  string // optional single PDF to process instead of the inbox
	Category    string
	Variant     string
	FiscalYear  int
	SkipMarkers []string
	Interactive bool

	// Application
	Version     string
	LogLevel    string
	MaxFileSize int64
}

// CurrentFiscalYear computes the fiscal year containing now: October and
// later belong to the next calendar year.
func CurrentFiscalYear(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year() + 1
	}
	return now.Year()
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		InboxDir:         currentDir,
		ArchiveDir:       filepath.Join(currentDir, "archive"),
		RecordStorePath:  filepath.Join(currentDir, "records.json"),
		TSVLogPath:       filepath.Join(currentDir, "awards.tsv"),
		CounterStorePath: filepath.Join(currentDir, "log_id.yaml"),
		Category:         DefaultCategory,
		Variant:          DefaultVariant,
		FiscalYear:       CurrentFiscalYear(time.Now()),
		SkipMarkers:      defaultSkipMarkers,
		Interactive:      true,
		Version:          "1.0.0",
		LogLevel:         DefaultLogLevel,
		MaxFileSize:      DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)
	cfg.TargetFile = pflag.Arg(0)

	for _, path := range []*string{&cfg.InboxDir, &cfg.ArchiveDir, &cfg.TargetFile} {
		if *path != "" {
			if expandedPath, err := filepath.Abs(*path); err == nil {
				*path = expandedPath
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("AWARD")
	viper.AutomaticEnv()

	viper.SetDefault("inbox", cfg.InboxDir)
	viper.SetDefault("archive", cfg.ArchiveDir)
	viper.SetDefault("records", cfg.RecordStorePath)
	viper.SetDefault("tsv", cfg.TSVLogPath)
	viper.SetDefault("counter", cfg.CounterStorePath)
	viper.SetDefault("tables", cfg.TablesPath)
	viper.SetDefault("category", cfg.Category)
	viper.SetDefault("variant", cfg.Variant)
	viper.SetDefault("fiscalyear", cfg.FiscalYear)
	viper.SetDefault("skip", cfg.SkipMarkers)
	viper.SetDefault("interactive", cfg.Interactive)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("inbox", cfg.InboxDir, "Directory containing scanned nomination PDFs")
	pflag.String("archive", cfg.ArchiveDir, "Cold-storage directory for processed source files")
	pflag.String("records", cfg.RecordStorePath, "Path to the JSON record store")
	pflag.String("tsv", cfg.TSVLogPath, "Path to the tab-separated output log")
	pflag.String("counter", cfg.CounterStorePath, "Path to the YAML log-ID counter store")
	pflag.String("tables", cfg.TablesPath, "Optional YAML file overriding org, criteria, and alias tables")
	pflag.String("category", cfg.Category, "Award category discriminator for log IDs")
	pflag.String("variant", cfg.Variant, "Form layout variant: standard, nonstandard, external-agency")
	pflag.Int("fiscalyear", cfg.FiscalYear, "Active fiscal year; must match the clock")
	pflag.StringSlice("skip", cfg.SkipMarkers, "File-name markers for forms to skip")
	pflag.Bool("interactive", cfg.Interactive, "Prompt the operator on recoverable failures")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	for _, name := range []string{
		"inbox", "archive", "records", "tsv", "counter", "tables",
		"category", "variant", "fiscalyear", "skip", "interactive",
		"loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAward Intake - processes scanned award-nomination PDF forms\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --inbox=/scans/incoming                # process a whole inbox\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --inbox=/scans --interactive=false     # unattended batch run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s /scans/incoming/form042.pdf            # process a single file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AWARD_INBOX        Inbox directory\n")
		fmt.Fprintf(os.Stderr, "  AWARD_ARCHIVE      Cold-storage directory\n")
		fmt.Fprintf(os.Stderr, "  AWARD_RECORDS      JSON record store path\n")
		fmt.Fprintf(os.Stderr, "  AWARD_COUNTER      Counter store path\n")
		fmt.Fprintf(os.Stderr, "  AWARD_LOGLEVEL     Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.InboxDir = viper.GetString("inbox")
	cfg.ArchiveDir = viper.GetString("archive")
	cfg.RecordStorePath = viper.GetString("records")
	cfg.TSVLogPath = viper.GetString("tsv")
	cfg.CounterStorePath = viper.GetString("counter")
	cfg.TablesPath = viper.GetString("tables")
	cfg.Category = viper.GetString("category")
	cfg.Variant = viper.GetString("variant")
	cfg.FiscalYear = viper.GetInt("fiscalyear")
	cfg.SkipMarkers = viper.GetStringSlice("skip")
	cfg.Interactive = viper.GetBool("interactive")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InboxDir == "" {
		return errors.New("inbox directory cannot be empty")
	}
	if _, err := os.Stat(c.InboxDir); err != nil {
		return fmt.Errorf("cannot access inbox directory %s: %w", c.InboxDir, err)
	}

	if c.TargetFile != "" {
		info, err := os.Stat(c.TargetFile)
		if err != nil {
			return fmt.Errorf("cannot access target file %s: %w", c.TargetFile, err)
		}
		if info.IsDir() {
			return fmt.Errorf("target file %s is a directory", c.TargetFile)
		}
	}

	if c.ArchiveDir == "" {
		return errors.New("archive directory cannot be empty")
	}
	if _, err := os.Stat(c.ArchiveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.ArchiveDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create archive directory %s: %w", c.ArchiveDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access archive directory %s: %w", c.ArchiveDir, err)
	}

	if c.RecordStorePath == "" || c.TSVLogPath == "" || c.CounterStorePath == "" {
		return errors.New("record store, TSV log, and counter store paths cannot be empty")
	}
	if c.Category == "" {
		return errors.New("category cannot be empty")
	}

	switch c.Variant {
	case "standard", "nonstandard", "external-agency":
	default:
		return fmt.Errorf("invalid form variant: %s (must be one of: standard, nonstandard, external-agency)", c.Variant)
	}

	// A stale configured fiscal year silently issues wrong log IDs, so it
	// is checked against the clock at startup.
	if current := CurrentFiscalYear(time.Now()); c.FiscalYear != current {
		return fmt.Errorf("fiscal year mismatch: expected %d, current %d; update the configured fiscal year", c.FiscalYear, current)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Inbox: %s, Archive: %s, Records: %s, Counter: %s, Category: %s, Variant: %s, FY: %d, LogLevel: %s}",
		c.InboxDir, c.ArchiveDir, c.RecordStorePath, c.CounterStorePath, c.Category, c.Variant, c.FiscalYear, c.LogLevel)
}
