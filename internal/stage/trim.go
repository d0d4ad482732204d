package stage

import (
	"context"
	"path/filepath"
	"strconv"

	"seqmill/internal/config"
	"seqmill/internal/discover"
	"seqmill/internal/naming"
	"seqmill/internal/proc"
	"seqmill/internal/task"
)

// trim quality-trims each dataset's reads, writing *_clean.fastq next
// to the originals plus an HTML and JSON report per dataset.
type trim struct {
	cfg *config.Config
	r   proc.Runner
}

func (s *trim) Plan() ([]task.Task, []string, error) {
	return planDatasets(s.cfg, config.StageTrim)
}

func (s *trim) Run(ctx context.Context, t task.Task) task.Outcome {
	suffix := s.cfg.EffectiveSuffix()
	logPath := naming.LogPath(t.Dir, t.Name, "trim")

	var args []string
	switch t.Class {
	case discover.ClassPaired:
		args = append(args,
			"-i", t.Inputs[0],
			"-I", t.Inputs[1],
			"-o", naming.Trimmed(t.Inputs[0], suffix),
			"-O", naming.Trimmed(t.Inputs[1], suffix),
		)
	case discover.ClassSingle:
		args = append(args,
			"-i", t.Inputs[0],
			"-o", naming.Trimmed(t.Inputs[0], suffix),
		)
	default:
		return Skipped(t)
	}
	args = append(args,
		"-h", filepath.Join(t.Dir, naming.ReportHTML),
		"-j", filepath.Join(t.Dir, naming.ReportJSON),
		"-w", strconv.Itoa(s.cfg.EffectiveThreads()),
	)

	if err := s.r.Run(ctx, proc.Command{Tool: "fastp", Args: args}, logPath); err != nil {
		return failure(t, err)
	}
	out := completed(t)
	if s.cfg.DeleteInputs {
		removeInputs(&out, t.Inputs)
	}
	return out
}

// planDatasets is the directory-grained discovery shared by the
// dataset stages (trim and both aligners).
func planDatasets(cfg *config.Config, stage config.Stage) ([]task.Task, []string, error) {
	groups, warnings, err := discover.Datasets(cfg.Root, cfg.EffectiveSuffix())
	if err != nil {
		return nil, warnings, err
	}
	var tasks []task.Task
	for _, g := range groups {
		tasks = append(tasks, task.Task{
			Stage:  stage,
			Dir:    g.Dir,
			Name:   g.Name(),
			Inputs: g.Files,
			Class:  g.Class,
		})
	}
	return tasks, warnings, nil
}
