package task

import (
	"fmt"

	"seqmill/internal/config"
	"seqmill/internal/discover"
)

// Status is the terminal state of one task. The string values appear
// verbatim in logs and TSV reports, so they are part of the interface.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusEmpty     Status = "completed-empty"
	StatusToolFail  Status = "tool-failed"
	StatusFSFail    Status = "filesystem-failed"
	StatusSkipped   Status = "skipped-no-input"
)

// Failed reports whether the status counts against --strict-exit.
// Skips and empty completions are expected states, not failures.
func (s Status) Failed() bool {
	return s == StatusToolFail || s == StatusFSFail
}

// Task is one unit of work: a dataset (or single file) to run a
// stage's tools against.
type Task struct {
	Stage  config.Stage
	Dir    string
	Name   string
	Inputs []string
	Class  discover.Class
}

// Outcome is the result of running one task. Message holds the detail
// line for failures and skips, empty on plain success. Warnings hold
// non-fatal trouble noticed after the tools succeeded.
type Outcome struct {
	Task
	Status   Status
	Message  string
	Warnings []string
}

// Warnf appends a formatted warning to the outcome.
func (o *Outcome) Warnf(format string, args ...any) {
	o.Warnings = append(o.Warnings, fmt.Sprintf(format, args...))
}
