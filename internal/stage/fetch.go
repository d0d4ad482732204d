package stage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"seqmill/internal/config"
	"seqmill/internal/naming"
	"seqmill/internal/proc"
	"seqmill/internal/task"
)

// fetch downloads one dataset per accession listed in the list file.
// The download tool creates a subdirectory per accession under the
// output directory, which the unpack stage later walks.
type fetch struct {
	cfg *config.Config
	r   proc.Runner
}

func (s *fetch) Plan() ([]task.Task, []string, error) {
	data, err := os.ReadFile(s.cfg.ListFile)
	if err != nil {
		return nil, nil, fmt.Errorf("reading accession list: %w", err)
	}
	var tasks []task.Task
	for _, line := range strings.Split(string(data), "\n") {
		acc := strings.TrimSpace(line)
		if acc == "" {
			continue
		}
		tasks = append(tasks, task.Task{
			Stage: config.StageFetch,
			Dir:   s.cfg.OutputDir,
			Name:  acc,
		})
	}
	return tasks, nil, nil
}

func (s *fetch) Run(ctx context.Context, t task.Task) task.Outcome {
	logPath := naming.LogPath(t.Dir, t.Name, "fetch")
	cmd := proc.Command{
		Tool: "prefetch",
		Args: []string{t.Name, "-O", t.Dir, "-C", "yes", "-X", s.cfg.MaxSize},
	}
	if err := s.r.Run(ctx, cmd, logPath); err != nil {
		return failure(t, err)
	}
	return completed(t)
}
