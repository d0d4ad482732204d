// Command seqmill is the CLI entrypoint for the seqmill batch orchestrator.
//
// It parses the stage subcommand and flags, validates configuration, and
// either runs diagnostics (check), the dataset inventory (scan), or one
// batch stage end to end.
package main

import (
	"context"
	"fmt"
	"os"

	"seqmill/internal/check"
	"seqmill/internal/config"
	"seqmill/internal/display"
	"seqmill/internal/logging"
	"seqmill/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "seqmill: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "seqmill: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seqmill: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== seqmill v%s (%s) ===", version, commit)

	if cfg.Stage == config.StageScan {
		if err := pipeline.Scan(&cfg, log); err != nil {
			log.Error("%v", err)
			return 1
		}
		return 0
	}

	// Stages writing into a shared output directory get it created here;
	// the dataset stages write next to their inputs.
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory: %s", cfg.OutputDir)
			return 1
		}
	}

	if cfg.Stage == config.StageFetch {
		warnLowDisk(&cfg, log)
	}

	// Phase 3: Run the batch. Task failures are reported in the summary;
	// they only affect the exit status under --strict-exit.
	sum, err := pipeline.Run(context.Background(), &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if cfg.StrictExit && sum.Failures() > 0 {
		return 1
	}
	return 0
}

// warnLowDisk flags an output volume with less free space than a single
// dataset's download cap before any download starts.
func warnLowDisk(cfg *config.Config, log *logging.Logger) {
	free, err := check.DiskFree(cfg.OutputDir)
	if err != nil {
		return
	}
	if int64(free) < cfg.MaxSizeBytes() {
		log.Warn("Free space on %s is %s, below the %s per-dataset cap",
			cfg.OutputDir, display.FormatBytes(int64(free)), cfg.MaxSize)
	}
}
