// Package check provides tool diagnostics (the check subcommand) and
// pre-dispatch dependency validation for the external sequencing tools
// each stage invokes.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"seqmill/internal/config"
	"seqmill/internal/display"
)

// ErrToolNotFound is returned by CheckDeps, wrapped with the name of
// the missing tool.
var ErrToolNotFound = errors.New("required tool not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
	Debug(string, ...any)
}

// stageTools names the external tools each stage invokes. Scan has no
// entry: it only reads the filesystem.
var stageTools = map[config.Stage][]string{
	config.StageFetch:       {"prefetch"},
	config.StageUnpack:      {"fasterq-dump"},
	config.StageTrim:        {"fastp"},
	config.StageQC:          {"fastqc"},
	config.StageAlign:       {"hisat2", "samtools"},
	config.StageAlignStream: {"bowtie", "samtools"},
}

// Tools returns the external tools a stage needs, in invocation order.
func Tools(stage config.Stage) []string {
	return stageTools[stage]
}

// allTools returns every stage's tools, deduplicated, in stage order.
func allTools() []string {
	seen := map[string]bool{}
	var tools []string
	for _, s := range config.Stages {
		for _, t := range stageTools[s] {
			if !seen[t] {
				seen[t] = true
				tools = append(tools, t)
			}
		}
	}
	return tools
}

// RunCheck runs the check subcommand: prints availability and version
// of each required tool plus free disk space. Reports everything it
// can rather than stopping at the first problem; returns false if any
// tool is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Tool Check ===")

	tools := Tools(cfg.Stage)
	if cfg.CheckAll {
		tools = allTools()
	}

	ok := true
	for _, tool := range tools {
		if !checkTool(tool, log) {
			ok = false
		}
	}

	if free, err := DiskFree("."); err == nil {
		log.Info("free disk space here: %s", display.FormatBytes(int64(free)))
	} else {
		log.Debug("statfs: %v", err)
	}
	return ok
}

// checkTool verifies one tool is on PATH and logs its version line.
func checkTool(tool string, log Logger) bool {
	if _, err := exec.LookPath(tool); err != nil {
		log.Error("%s not found", tool)
		return false
	}
	version, err := toolVersion(tool)
	if err != nil {
		log.Warn("%s found but --version failed: %v", tool, err)
		return true
	}
	log.Success("%s: %s", tool, version)
	return true
}

// toolVersion returns the first non-empty line of `tool --version`.
// fastp prints its version to stderr, so both streams are captured.
func toolVersion(tool string) (string, error) {
	out, err := exec.Command(tool, "--version").CombinedOutput()
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", errors.New("no version output")
}

// CheckDeps is the pre-dispatch validation: it verifies every tool the
// configured stage invokes is on PATH. Returns ErrToolNotFound wrapped
// with the tool name on the first miss.
func CheckDeps(cfg *config.Config) error {
	for _, tool := range Tools(cfg.Stage) {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%w: %s", ErrToolNotFound, tool)
		}
	}
	return nil
}

// DiskFree returns the bytes available to an unprivileged caller on
// the filesystem holding path.
func DiskFree(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
