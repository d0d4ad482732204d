package proc

import (
	"errors"
	"fmt"
	"os/exec"
)

// ToolError reports a failed tool invocation. Spawn is true when the
// tool never ran (missing binary, permission); false when it ran and
// exited non-zero, in which case Log points at its captured output.
type ToolError struct {
	Tool  string
	Log   string
	Spawn bool
	Err   error
}

func (e *ToolError) Error() string {
	if e.Spawn {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s %v (see %s)", e.Tool, e.Err, e.Log)
}

func (e *ToolError) Unwrap() error { return e.Err }

func newToolError(tool, logPath string, err error) *ToolError {
	var exit *exec.ExitError
	return &ToolError{
		Tool:  tool,
		Log:   logPath,
		Spawn: !errors.As(err, &exit),
		Err:   err,
	}
}
