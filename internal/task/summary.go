package task

import (
	"time"

	"seqmill/internal/config"
)

// Summary tallies one batch run. Counters are derived from the
// recorded outcomes; Outcomes keeps every result for the TSV report.
type Summary struct {
	RunID   string
	Stage   config.Stage
	Started time.Time

	Total      int
	Completed  int
	Empty      int
	ToolFailed int
	FSFailed   int
	Skipped    int
	Warnings   int

	Outcomes []Outcome
}

// NewSummary starts an empty summary for a run.
func NewSummary(runID string, stage config.Stage, total int) *Summary {
	return &Summary{
		RunID:   runID,
		Stage:   stage,
		Started: time.Now(),
		Total:   total,
	}
}

// Record adds one outcome and bumps the matching counter.
func (s *Summary) Record(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.Warnings += len(o.Warnings)
	switch o.Status {
	case StatusCompleted:
		s.Completed++
	case StatusEmpty:
		s.Empty++
	case StatusToolFail:
		s.ToolFailed++
	case StatusFSFail:
		s.FSFailed++
	case StatusSkipped:
		s.Skipped++
	}
}

// Failures returns the count of outcomes that --strict-exit treats as
// run failures.
func (s *Summary) Failures() int {
	return s.ToolFailed + s.FSFailed
}

// Elapsed returns the wall time since the summary was started.
func (s *Summary) Elapsed() time.Duration {
	return time.Since(s.Started)
}
