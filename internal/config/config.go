// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Stage defaults (workers, threads, discovery suffix) match the
// legacy batch scripts for parity.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// Stage selects which pipeline stage a run executes.
type Stage string

const (
	StageFetch       Stage = "fetch"        // Download datasets by accession (prefetch).
	StageUnpack      Stage = "unpack"       // Extract FASTQ from .sra archives (fasterq-dump).
	StageTrim        Stage = "trim"         // Quality-trim reads (fastp).
	StageQC          Stage = "qc"           // Per-file quality reports (fastqc).
	StageAlign       Stage = "align"        // Align, filter, sort, index (hisat2 + samtools).
	StageAlignStream Stage = "align-stream" // Align streaming into sorted BAM (bowtie + samtools).
	StageScan        Stage = "scan"         // Inventory datasets without running tools.
)

// Stages lists every runnable stage in pipeline order.
var Stages = []Stage{StageFetch, StageUnpack, StageTrim, StageQC, StageAlign, StageAlignStream}

// ParseStage maps a subcommand string to a Stage.
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(s) {
	case "fetch":
		return StageFetch, nil
	case "unpack":
		return StageUnpack, nil
	case "trim":
		return StageTrim, nil
	case "qc":
		return StageQC, nil
	case "align":
		return StageAlign, nil
	case "align-stream":
		return StageAlignStream, nil
	case "scan":
		return StageScan, nil
	default:
		return "", fmt.Errorf("unknown command %q (run 'seqmill --help')", s)
	}
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it. Fields are grouped by concern with inline documentation of
// defaults and fixed values.
type Config struct {
	// Stage selection (set from the subcommand).
	Stage Stage

	// Paths (set from positional args).
	Root      string // Dataset tree root (all stages except fetch).
	ListFile  string // Accession list, one per line (fetch).
	OutputDir string // Destination directory (fetch, qc).
	IndexPath string // Aligner index prefix (align, align-stream).

	// Concurrency.
	Workers      int // Concurrent datasets. 0 = stage default (20 fetch/unpack, 10 others).
	Threads      int // Threads per tool invocation. 0 = stage default (2 qc, 4 others).
	IndexThreads int // Threads for samtools index. -1 = half of Threads.

	// Stage behavior.
	Suffix       string // Discovery suffix. Empty = stage default (see DefaultSuffix).
	DeleteInputs bool   // Remove inputs after a fully successful dataset.
	MaxSize      string // Per-dataset download cap for prefetch -X. Default: "100G".

	// Behavior flags.
	DryRun     bool
	StrictExit bool // Exit 1 when any dataset failed.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	TSVPath   string    // Optional machine-readable outcome report.
	CheckOnly bool      // Run check diagnostics and exit.
	CheckAll  bool      // Check diagnostics for every stage, not just one.
}

// DefaultConfig returns a Config with all defaults matching the legacy batch
// scripts. Used as the base before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Workers:      0,
		Threads:      0,
		IndexThreads: -1,
		MaxSize:      "100G",
		DryRun:       false,
		StrictExit:   false,
		Verbose:      false,
		ColorMode:    ColorAuto,
		CheckOnly:    false,
	}
}

// DefaultWorkers returns the legacy per-stage worker pool size: download and
// extraction stages ran 20 jobs, tool-heavy stages 10.
func DefaultWorkers(s Stage) int {
	switch s {
	case StageFetch, StageUnpack:
		return 20
	default:
		return 10
	}
}

// DefaultThreads returns the per-tool thread count a stage used by default.
func DefaultThreads(s Stage) int {
	if s == StageQC {
		return 2
	}
	return 4
}

// DefaultSuffix returns the discovery suffix for a stage: archives for
// unpack, raw reads for trim/qc/scan, trimmed reads for the align stages.
func DefaultSuffix(s Stage) string {
	switch s {
	case StageUnpack:
		return ".sra"
	case StageAlign, StageAlignStream:
		return "_clean.fastq"
	default:
		return ".fastq"
	}
}

// EffectiveWorkers resolves the 0 = stage default convention.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return DefaultWorkers(c.Stage)
}

// EffectiveThreads resolves the 0 = stage default convention.
func (c *Config) EffectiveThreads() int {
	if c.Threads > 0 {
		return c.Threads
	}
	return DefaultThreads(c.Stage)
}

// EffectiveIndexThreads resolves the -1 = half-of-threads convention used by
// the legacy scripts for samtools index, floored at 1.
func (c *Config) EffectiveIndexThreads() int {
	if c.IndexThreads >= 0 {
		return c.IndexThreads
	}
	half := c.EffectiveThreads() / 2
	if half < 1 {
		half = 1
	}
	return half
}

// EffectiveSuffix resolves the empty = stage default convention.
func (c *Config) EffectiveSuffix() string {
	if c.Suffix != "" {
		return c.Suffix
	}
	return DefaultSuffix(c.Stage)
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric ranges, and requires the positional
// paths each stage needs. CheckOnly runs skip the path requirements.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.Threads < 0 {
		return errors.New("threads must not be negative")
	}
	if c.IndexThreads < -1 {
		return errors.New("index-threads must be -1 (auto) or >= 0")
	}

	normalized, err := normalizeMaxSize(c.MaxSize)
	if err != nil {
		return err
	}
	c.MaxSize = normalized

	if c.CheckOnly {
		return nil
	}

	switch c.Stage {
	case StageFetch:
		if c.ListFile == "" || c.OutputDir == "" {
			return errors.New("need exactly list_file and output_dir")
		}
	case StageUnpack, StageTrim, StageScan:
		if c.Root == "" {
			return errors.New("need exactly root_dir")
		}
	case StageQC:
		if c.Root == "" || c.OutputDir == "" {
			return errors.New("need exactly root_dir and output_dir")
		}
	case StageAlign, StageAlignStream:
		if c.Root == "" || c.IndexPath == "" {
			return errors.New("need exactly root_dir and index_prefix")
		}
	default:
		return fmt.Errorf("invalid stage %q", c.Stage)
	}
	return nil
}

// normalizeMaxSize validates and canonicalizes the prefetch size cap.
// Accepted forms: "100", "100g", "100G". Output is "<n><UNIT>".
func normalizeMaxSize(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("max size must not be empty")
	}
	unit := ""
	if last := s[len(s)-1]; last < '0' || last > '9' {
		unit = string(last)
		s = s[:len(s)-1]
		if !strings.Contains("KMGT", unit) {
			return "", fmt.Errorf("invalid max size %q (use a number with optional K/M/G/T unit, e.g. 100G)", raw)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid max size %q (use a number with optional K/M/G/T unit, e.g. 100G)", raw)
	}
	return fmt.Sprintf("%d%s", n, unit), nil
}

// MaxSizeBytes returns the configured download cap in bytes, for free-space
// preflight reporting. Call only after Validate has normalized MaxSize.
func (c *Config) MaxSizeBytes() int64 {
	s := c.MaxSize
	mult := int64(1)
	if last := s[len(s)-1]; last < '0' || last > '9' {
		switch last {
		case 'K':
			mult = 1 << 10
		case 'M':
			mult = 1 << 20
		case 'G':
			mult = 1 << 30
		case 'T':
			mult = 1 << 40
		}
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n * mult
}

