// Package pipeline runs one batch stage end to end: plan the tasks,
// dispatch them across the worker pool, log each outcome as it lands,
// and report the aggregate summary.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"seqmill/internal/check"
	"seqmill/internal/config"
	"seqmill/internal/discover"
	"seqmill/internal/dispatch"
	"seqmill/internal/display"
	"seqmill/internal/logging"
	"seqmill/internal/proc"
	"seqmill/internal/report"
	"seqmill/internal/stage"
	"seqmill/internal/task"
)

// Run is the top-level batch entry point for one stage invocation.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (*task.Summary, error) {
	return RunWith(ctx, cfg, log, proc.New())
}

// RunWith is Run with an injectable process runner.
func RunWith(ctx context.Context, cfg *config.Config, log *logging.Logger, r proc.Runner) (*task.Summary, error) {
	// Dry runs start no tools, so missing tools must not block them.
	if !cfg.DryRun {
		if err := check.CheckDeps(cfg); err != nil {
			return nil, err
		}
	}

	st, err := stage.New(cfg, r)
	if err != nil {
		return nil, err
	}

	tasks, warnings, err := st.Plan()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn("%s", w)
	}

	sum := task.NewSummary(uuid.NewString(), cfg.Stage, len(tasks))
	if len(tasks) == 0 {
		log.Warn("No input found for stage %s", cfg.Stage)
		return sum, nil
	}

	logBatchHeader(cfg, log, sum)

	results := dispatch.Each(tasks, cfg.EffectiveWorkers(),
		func(t task.Task) task.Outcome {
			return runOne(ctx, cfg, st, t)
		},
		func(t task.Task, v any) task.Outcome {
			return task.Outcome{Task: t, Status: task.StatusFSFail,
				Message: fmt.Sprintf("panic: %v", v)}
		})

	for o := range results {
		sum.Record(o)
		logOutcome(log, sum, o)
	}

	logSummary(log, sum)

	if cfg.TSVPath != "" {
		if err := report.WriteFile(cfg.TSVPath, sum); err != nil {
			return sum, err
		}
		log.Info("Report written: %s", cfg.TSVPath)
	}
	return sum, nil
}

// runOne applies the batch-level gates a stage never sees: invalid
// datasets are set aside even on a dry run, and a dry run resolves
// every runnable task without starting a tool.
func runOne(ctx context.Context, cfg *config.Config, st stage.Stage, t task.Task) task.Outcome {
	if t.Class == discover.ClassInvalid {
		return stage.Skipped(t)
	}
	if cfg.DryRun {
		return task.Outcome{Task: t, Status: task.StatusCompleted, Message: "dry-run"}
	}
	return st.Run(ctx, t)
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, sum *task.Summary) {
	log.Info("Run %s", sum.RunID)
	log.Info("Stage: %s", cfg.Stage)
	log.Info("Found %d task(s)", sum.Total)
	log.Info("Workers: %d (threads per tool: %d)", cfg.EffectiveWorkers(), cfg.EffectiveThreads())

	switch cfg.Stage {
	case config.StageFetch:
		log.Info("Download cap: %s per dataset", cfg.MaxSize)
	case config.StageAlign, config.StageAlignStream:
		log.Info("Index: %s", cfg.IndexPath)
	}
	if cfg.DeleteInputs {
		log.Info("Inputs: deleted after success")
	}
	if cfg.DryRun {
		log.Warn("Dry run: no tools will be started")
	}
	fmt.Println()
}

// logOutcome prints the live one-line-per-task progress in completion
// order. The counter reflects how many outcomes have landed, not which
// task this is.
func logOutcome(log *logging.Logger, sum *task.Summary, o task.Outcome) {
	p := fmt.Sprintf("[%d/%d] %s", len(sum.Outcomes), sum.Total, o.Name)
	switch o.Status {
	case task.StatusCompleted:
		if o.Message == "" {
			log.Success("%s: completed", p)
		} else {
			log.Success("%s: completed (%s)", p, o.Message)
		}
	case task.StatusEmpty:
		log.Warn("%s: %s (%s)", p, o.Status, o.Message)
	case task.StatusSkipped:
		log.Skip("%s: %s (%s)", p, o.Status, o.Message)
	default:
		log.Error("%s: %s: %s", p, o.Status, o.Message)
	}
	for _, w := range o.Warnings {
		log.Warn("%s: %s", o.Name, w)
	}
}

func logSummary(log *logging.Logger, s *task.Summary) {
	fmt.Println()
	log.Info("==============================")
	log.Info("Done in %s: %d completed, %d empty, %d failed, %d skipped",
		display.FormatDuration(s.Elapsed()), s.Completed, s.Empty, s.Failures(), s.Skipped)

	if s.Warnings > 0 {
		log.Warn("  %d cleanup warning(s), see lines above", s.Warnings)
	}
	if s.Failures() == 0 {
		log.Success("  All %d task(s) accounted for", s.Total)
		return
	}
	log.Error("  Failed datasets:")
	for _, o := range s.Outcomes {
		if o.Status.Failed() {
			log.Error("    %s: %s", o.Name, o.Message)
		}
	}
}
