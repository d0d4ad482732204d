package stage

import (
	"context"
	"fmt"
	"os"

	"seqmill/internal/config"
	"seqmill/internal/proc"
	"seqmill/internal/task"
)

// Stage is one pipeline stage: Plan discovers its work units, Run
// executes one of them. Plan's second result carries non-fatal
// discovery warnings (unreadable subtrees).
type Stage interface {
	Plan() ([]task.Task, []string, error)
	Run(ctx context.Context, t task.Task) task.Outcome
}

// New returns the pipeline for the configured stage.
func New(cfg *config.Config, r proc.Runner) (Stage, error) {
	switch cfg.Stage {
	case config.StageFetch:
		return &fetch{cfg: cfg, r: r}, nil
	case config.StageUnpack:
		return &unpack{cfg: cfg, r: r}, nil
	case config.StageTrim:
		return &trim{cfg: cfg, r: r}, nil
	case config.StageQC:
		return &qc{cfg: cfg, r: r}, nil
	case config.StageAlign:
		return &align{cfg: cfg, r: r}, nil
	case config.StageAlignStream:
		return &alignStream{cfg: cfg, r: r}, nil
	}
	return nil, fmt.Errorf("no stage pipeline for %q", cfg.Stage)
}

func completed(t task.Task) task.Outcome {
	return task.Outcome{Task: t, Status: task.StatusCompleted}
}

func failure(t task.Task, err error) task.Outcome {
	return task.Outcome{Task: t, Status: task.StatusToolFail, Message: err.Error()}
}

func fsFailure(t task.Task, err error) task.Outcome {
	return task.Outcome{Task: t, Status: task.StatusFSFail, Message: err.Error()}
}

// Skipped marks a dataset that cannot be processed as set aside. The
// batch runner uses it too, so dry runs report the same outcome.
func Skipped(t task.Task) task.Outcome {
	return task.Outcome{Task: t, Status: task.StatusSkipped,
		Message: fmt.Sprintf("%d input files, expected 1 or 2", len(t.Inputs))}
}

// removeInputs deletes files after a successful task. Failures amend
// the outcome with warnings; the completed status stands.
func removeInputs(o *task.Outcome, files []string) {
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			o.Warnf("remove %s: %v", f, err)
		}
	}
}

// samHasRecords reports whether a materialized SAM file holds any
// alignment record.
func samHasRecords(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return proc.HasRecords(f)
}
