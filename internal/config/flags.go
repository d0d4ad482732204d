package config

// This file implements CLI parsing and help text. The first argument selects
// the stage subcommand; each stage gets its own FlagSet with shared and
// stage-specific flags. Negated flags (e.g. --no-color) are applied after
// Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses args (os.Args[1:]) into cfg. On --help or --version it
// prints and exits. On error it returns non-nil (e.g. unknown command,
// unknown flag, missing positional args).
func ParseFlags(cfg *Config, args []string, version string) error {
	if len(args) == 0 {
		printMainUsage(version)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "-h", "--help", "help":
		printMainUsage(version)
		os.Exit(0)
	case "-V", "--version", "version":
		fmt.Fprintln(os.Stdout, "seqmill v"+version)
		os.Exit(0)
	case "check":
		return parseCheckArgs(cfg, args[1:])
	}

	stage, err := ParseStage(args[0])
	if err != nil {
		return err
	}
	cfg.Stage = stage

	fs := flag.NewFlagSet("seqmill "+string(stage), flag.ContinueOnError)
	fs.Usage = func() { printUsage(stage, version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineConcurrencyFlags(fs, cfg, stage)
	defineStageFlags(fs, cfg, stage)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(stage, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "seqmill v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// parseCheckArgs handles the check subcommand: an optional stage argument
// narrows the diagnostics to one stage's tools.
func parseCheckArgs(cfg *Config, args []string) error {
	cfg.CheckOnly = true
	if len(args) == 0 {
		cfg.CheckAll = true
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("check takes at most one stage argument")
	}
	stage, err := ParseStage(args[0])
	if err != nil {
		return err
	}
	cfg.Stage = stage
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noColor -> ColorNever) or trigger exit
// (showHelp, showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineConcurrencyFlags registers --workers, --threads, --index-threads.
func defineConcurrencyFlags(fs *flag.FlagSet, cfg *Config, stage Stage) {
	if stage == StageScan {
		return
	}
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent datasets (0 = stage default)")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Same as --workers")
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "Threads per tool invocation (0 = stage default)")
	fs.IntVar(&cfg.Threads, "t", cfg.Threads, "Same as --threads")
	if stage == StageAlign || stage == StageAlignStream {
		fs.IntVar(&cfg.IndexThreads, "index-threads", cfg.IndexThreads, "Threads for samtools index (-1 = threads/2)")
	}
}

// defineStageFlags registers the flags specific to one stage: discovery
// suffix, input deletion, the prefetch size cap, dry-run, and reporting.
func defineStageFlags(fs *flag.FlagSet, cfg *Config, stage Stage) {
	switch stage {
	case StageFetch:
		fs.Var(&sizeValue{&cfg.MaxSize}, "max-size", "Per-dataset download cap for prefetch (default: 100G)")
	case StageUnpack, StageTrim, StageQC, StageAlign, StageAlignStream, StageScan:
		fs.StringVar(&cfg.Suffix, "suffix", cfg.Suffix, "Input filename suffix (empty = stage default)")
		fs.StringVar(&cfg.Suffix, "s", cfg.Suffix, "Same as --suffix")
	}

	switch stage {
	case StageUnpack, StageTrim, StageAlign, StageAlignStream:
		fs.BoolVar(&cfg.DeleteInputs, "delete", false, "Remove inputs after a fully successful dataset")
		fs.BoolVar(&cfg.DeleteInputs, "d", false, "Same as --delete")
	}

	if stage != StageScan {
		fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview planned invocations; do not run tools")
		fs.BoolVar(&cfg.StrictExit, "strict-exit", false, "Exit 1 when any dataset failed")
		fs.StringVar(&cfg.TSVPath, "tsv", "", "Write a tab-separated outcome report")
	}
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg (e.g. noColor -> ColorNever).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets the stage's required paths from the positional args.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch cfg.Stage {
	case StageFetch:
		if len(args) != 2 {
			return fmt.Errorf("need exactly list_file and output_dir")
		}
		cfg.ListFile = args[0]
		cfg.OutputDir = NormalizeDirArg(args[1])
	case StageUnpack, StageTrim, StageScan:
		if len(args) != 1 {
			return fmt.Errorf("need exactly root_dir")
		}
		cfg.Root = NormalizeDirArg(args[0])
	case StageQC:
		if len(args) != 2 {
			return fmt.Errorf("need exactly root_dir and output_dir")
		}
		cfg.Root = NormalizeDirArg(args[0])
		cfg.OutputDir = NormalizeDirArg(args[1])
	case StageAlign, StageAlignStream:
		if len(args) != 2 {
			return fmt.Errorf("need exactly root_dir and index_prefix")
		}
		cfg.Root = NormalizeDirArg(args[0])
		cfg.IndexPath = args[1]
	}
	return nil
}

// printMainUsage writes the top-level command overview to stderr.
func printMainUsage(version string) {
	w := os.Stderr
	fmt.Fprintln(w, "seqmill v"+version+" - batch orchestrator for sequencing pipelines")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  seqmill <command> [OPTIONS] <args>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands")
	fmt.Fprintln(w, "  fetch <list_file> <output_dir>      Download datasets by accession (prefetch)")
	fmt.Fprintln(w, "  unpack <root_dir>                   Extract FASTQ from .sra archives (fasterq-dump)")
	fmt.Fprintln(w, "  trim <root_dir>                     Quality-trim reads (fastp)")
	fmt.Fprintln(w, "  qc <root_dir> <output_dir>          Per-file quality reports (fastqc)")
	fmt.Fprintln(w, "  align <root_dir> <index_prefix>     Align, filter, sort, index (hisat2 + samtools)")
	fmt.Fprintln(w, "  align-stream <root_dir> <index_prefix>")
	fmt.Fprintln(w, "                                      Align streaming into sorted BAM (bowtie + samtools)")
	fmt.Fprintln(w, "  scan <root_dir>                     Inventory datasets without running tools")
	fmt.Fprintln(w, "  check [stage]                       System diagnostics (tools, disk space)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'seqmill <command> --help' for stage options.")
}

// usageLine pairs a flag column with its description for aligned help output.
type usageLine struct {
	flags string
	desc  string
}

// printUsage writes the per-stage help text to stderr. Column-aligned for
// readability.
func printUsage(stage Stage, version string) {
	lines := []usageLine{
		{"", "seqmill v" + version + " - " + stageSynopsis(stage)},
		{"", ""},
		{"  seqmill " + string(stage) + " [OPTIONS] " + stageArgs(stage), ""},
		{"", ""},
	}

	if stage != StageScan {
		lines = append(lines,
			usageLine{"Concurrency", ""},
			usageLine{"  -w, --workers <n>", "Concurrent datasets (default: " + defaultWorkersLabel(stage) + ")"},
			usageLine{"  -t, --threads <n>", "Threads per tool (default: " + defaultThreadsLabel(stage) + ")"},
		)
		if stage == StageAlign || stage == StageAlignStream {
			lines = append(lines, usageLine{"  --index-threads <n>", "Threads for samtools index (default: threads/2)"})
		}
		lines = append(lines, usageLine{"", ""})
	}

	lines = append(lines, usageLine{"Behavior", ""})
	if stage == StageFetch {
		lines = append(lines, usageLine{"  --max-size <size>", "Per-dataset download cap (default: 100G)"})
	} else {
		lines = append(lines, usageLine{"  -s, --suffix <suffix>", "Input filename suffix (default: " + DefaultSuffix(stage) + ")"})
	}
	switch stage {
	case StageUnpack, StageTrim, StageAlign, StageAlignStream:
		lines = append(lines, usageLine{"  -d, --delete", "Remove inputs after a fully successful dataset"})
	}
	if stage != StageScan {
		lines = append(lines,
			usageLine{"  --dry-run", "Preview planned invocations; do not run tools"},
			usageLine{"  --strict-exit", "Exit 1 when any dataset failed"},
			usageLine{"  --tsv <path>", "Write a tab-separated outcome report"},
		)
	}

	lines = append(lines,
		usageLine{"", ""},
		usageLine{"Display", ""},
		usageLine{"  --color", "Force colored logs"},
		usageLine{"  --no-color", "Disable colored logs"},
		usageLine{"  -v, --verbose", "Verbose output"},
		usageLine{"", ""},
		usageLine{"Utility", ""},
		usageLine{"  -l, --log <path>", "Append logs to file"},
		usageLine{"  -V, --version", "Print version and exit"},
		usageLine{"  -h, --help", "Show this help and exit"},
	)

	const col1 = 28 // width of "  -x, --long-name <arg>  "
	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

func stageSynopsis(stage Stage) string {
	switch stage {
	case StageFetch:
		return "download datasets by accession"
	case StageUnpack:
		return "extract FASTQ from .sra archives"
	case StageTrim:
		return "quality-trim reads"
	case StageQC:
		return "per-file quality reports"
	case StageAlign:
		return "align, filter, sort and index"
	case StageAlignStream:
		return "align streaming into a sorted BAM"
	case StageScan:
		return "inventory datasets"
	}
	return ""
}

func stageArgs(stage Stage) string {
	switch stage {
	case StageFetch:
		return "<list_file> <output_dir>"
	case StageQC:
		return "<root_dir> <output_dir>"
	case StageAlign, StageAlignStream:
		return "<root_dir> <index_prefix>"
	default:
		return "<root_dir>"
	}
}

func defaultWorkersLabel(stage Stage) string {
	return fmt.Sprintf("%d", DefaultWorkers(stage))
}

func defaultThreadsLabel(stage Stage) string {
	return fmt.Sprintf("%d", DefaultThreads(stage))
}

// flag.Value adapter so the prefetch size cap is validated at parse time.

type sizeValue struct{ p *string }

func (s *sizeValue) String() string {
	if s.p == nil {
		return ""
	}
	return *s.p
}

func (s *sizeValue) Set(raw string) error {
	normalized, err := normalizeMaxSize(raw)
	if err != nil {
		return err
	}
	*s.p = normalized
	return nil
}

