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

// qc generates a quality report per input file into a shared output
// directory. File-grained like unpack; the report tool names its
// outputs by input basename, so concurrent tasks do not collide.
type qc struct {
	cfg *config.Config
	r   proc.Runner
}

func (s *qc) Plan() ([]task.Task, []string, error) {
	files, warnings, err := discover.Files(s.cfg.Root, s.cfg.EffectiveSuffix())
	if err != nil {
		return nil, warnings, err
	}
	var tasks []task.Task
	for _, f := range files {
		tasks = append(tasks, task.Task{
			Stage:  config.StageQC,
			Dir:    filepath.Dir(f),
			Name:   filepath.Base(f),
			Inputs: []string{f},
		})
	}
	return tasks, warnings, nil
}

func (s *qc) Run(ctx context.Context, t task.Task) task.Outcome {
	file := t.Inputs[0]
	// Log next to the input, not the shared output directory, so two
	// inputs with the same basename cannot write the same log.
	logPath := naming.LogPath(t.Dir, naming.Stem(file, s.cfg.EffectiveSuffix()), "qc")
	cmd := proc.Command{
		Tool: "fastqc",
		Args: []string{"-t", strconv.Itoa(s.cfg.EffectiveThreads()), "-o", s.cfg.OutputDir, file},
	}
	if err := s.r.Run(ctx, cmd, logPath); err != nil {
		return failure(t, err)
	}
	return completed(t)
}
