package stage

import (
	"context"
	"path/filepath"

	"seqmill/internal/config"
	"seqmill/internal/discover"
	"seqmill/internal/naming"
	"seqmill/internal/proc"
	"seqmill/internal/task"
)

// unpack extracts reads from each archive file found in the tree.
// File-grained: every archive is its own task, extracted into the
// directory it sits in.
type unpack struct {
	cfg *config.Config
	r   proc.Runner
}

func (s *unpack) Plan() ([]task.Task, []string, error) {
	files, warnings, err := discover.Files(s.cfg.Root, s.cfg.EffectiveSuffix())
	if err != nil {
		return nil, warnings, err
	}
	var tasks []task.Task
	for _, f := range files {
		tasks = append(tasks, task.Task{
			Stage:  config.StageUnpack,
			Dir:    filepath.Dir(f),
			Name:   filepath.Base(f),
			Inputs: []string{f},
		})
	}
	return tasks, warnings, nil
}

func (s *unpack) Run(ctx context.Context, t task.Task) task.Outcome {
	archive := t.Inputs[0]
	logPath := naming.LogPath(t.Dir, naming.Stem(archive, s.cfg.EffectiveSuffix()), "unpack")
	cmd := proc.Command{
		Tool: "fasterq-dump",
		Args: []string{archive, "-O", t.Dir},
	}
	if err := s.r.Run(ctx, cmd, logPath); err != nil {
		return failure(t, err)
	}
	out := completed(t)
	if s.cfg.DeleteInputs {
		removeInputs(&out, t.Inputs)
	}
	return out
}
