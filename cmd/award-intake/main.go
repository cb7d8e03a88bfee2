package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hrops/award-intake/internal/award"
	"github.com/hrops/award-intake/internal/batch"
	"github.com/hrops/award-intake/internal/config"
	"github.com/hrops/award-intake/internal/extract"
	"github.com/hrops/award-intake/internal/format"
	"github.com/hrops/award-intake/internal/logging"
	"github.com/hrops/award-intake/internal/org"
	"github.com/hrops/award-intake/internal/prompt"
	"github.com/hrops/award-intake/internal/store"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// loadTables resolves the org, criteria, and alias tables, applying
// overrides from the configured tables file when one is given.
func loadTables(cfg *config.Config) (org.Tables, award.Criteria, award.AliasTable, error) {
	if cfg.TablesPath == "" {
		aliases, err := award.AliasesFor(award.DefaultAliases(), award.Variant(cfg.Variant))
		if err != nil {
			return org.Tables{}, award.Criteria{}, award.AliasTable{}, err
		}
		return org.DefaultTables(), award.DefaultCriteria(), aliases, nil
	}

	tables, err := org.LoadTables(cfg.TablesPath)
	if err != nil {
		return org.Tables{}, award.Criteria{}, award.AliasTable{}, err
	}
	criteria, err := award.LoadCriteria(cfg.TablesPath)
	if err != nil {
		return org.Tables{}, award.Criteria{}, award.AliasTable{}, err
	}
	aliasTables, err := award.LoadAliases(cfg.TablesPath)
	if err != nil {
		return org.Tables{}, award.Criteria{}, award.AliasTable{}, err
	}
	aliases, err := award.AliasesFor(aliasTables, award.Variant(cfg.Variant))
	if err != nil {
		return org.Tables{}, award.Criteria{}, award.AliasTable{}, err
	}
	return tables, criteria, aliases, nil
}

// newRunner wires the full processing pipeline from the configuration.
func newRunner(cfg *config.Config, log logging.Logger) (*batch.Runner, error) {
	tables, criteria, aliases, err := loadTables(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}

	builder := award.NewBuilder(
		aliases,
		format.NewNameFormatter(),
		org.NewResolver(tables),
		award.NewEvaluator(criteria),
		cfg.Category,
	)

	var decider prompt.Decider = prompt.AlwaysSkip{}
	if cfg.Interactive {
		decider = prompt.Interactive{}
	}

	processor := batch.NewProcessor(
		extract.NewExtractor(cfg.MaxFileSize),
		builder,
		store.NewCounterStore(cfg.CounterStorePath, cfg.FiscalYear),
		store.NewRecordStore(cfg.RecordStorePath),
		store.NewTSVLog(cfg.TSVLogPath),
		store.NewArchiver(cfg.ArchiveDir),
		decider,
		log,
		cfg.Category,
	)

	return batch.NewRunner(processor, log, cfg.SkipMarkers), nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewStderr(cfg.LogLevel)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}
	if cfg.IsDebug() {
		log.Debug("starting with configuration", "config", cfg.String())
	}

	runner, err := newRunner(cfg, log)
	if err != nil {
		log.Error("failed to set up pipeline", "error", err)
		os.Exit(1)
	}

	var summary *batch.Summary
	if cfg.TargetFile != "" {
		summary, err = runner.RunFile(cfg.TargetFile)
	} else {
		summary, err = runner.Run(cfg.InboxDir)
	}
	if err != nil {
		log.Error("batch halted", "error", err)
		os.Exit(1)
	}

	if len(summary.Failed) > 0 {
		log.Warn("batch finished with failures",
			"processed", len(summary.Processed), "failed", len(summary.Failed))
		os.Exit(1)
	}
	log.Info("batch finished", "processed", len(summary.Processed))
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Award Intake\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
