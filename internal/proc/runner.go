package proc

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command names one tool invocation. Stdin is optional; stages leave
// it nil except when feeding a tool from a file.
type Command struct {
	Tool  string
	Args  []string
	Stdin io.Reader
}

// Line renders the invocation the way a shell prompt would show it,
// for trace lines in task logs.
func (c Command) Line() string {
	return strings.Join(append([]string{c.Tool}, c.Args...), " ")
}

// Runner executes tool invocations for the stages. The pipeline holds
// exactly one; tests substitute their own.
type Runner interface {
	// Run executes c and waits for it, appending output to logPath.
	Run(ctx context.Context, c Command, logPath string) error

	// RunPipe streams src's stdout into dst's stdin, appending both
	// tools' diagnostics to logPath. dst is only started once the
	// stream carries a record line; records reports whether one was
	// seen. A header-only stream with a clean src exit returns
	// (false, nil) and dst never runs.
	RunPipe(ctx context.Context, src, dst Command, logPath string) (records bool, err error)
}

// New returns the Runner backed by os/exec.
func New() Runner {
	return &execRunner{}
}

type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, c Command, logPath string) error {
	logf, err := openLog(logPath)
	if err != nil {
		return err
	}
	defer logf.Close()
	fmt.Fprintf(logf, "+ %s\n", c.Line())

	cmd := exec.CommandContext(ctx, c.Tool, c.Args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = logf
	cmd.Stderr = logf
	if err := cmd.Run(); err != nil {
		return newToolError(c.Tool, logPath, err)
	}
	return nil
}

// openLog opens a task log for appending. One dataset's commands share
// a log, so a multi-step stage reads as one transcript.
func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening task log: %w", err)
	}
	return f, nil
}
