package stage

import (
	"context"
	"fmt"
	"strconv"

	"seqmill/internal/config"
	"seqmill/internal/discover"
	"seqmill/internal/naming"
	"seqmill/internal/proc"
	"seqmill/internal/task"
)

// alignStream pipes the aligner's stdout straight into the sorter, so
// the unsorted alignment never touches disk. The sorter is only
// started once the stream shows a record; a header-only alignment
// leaves no output file at all.
type alignStream struct {
	cfg *config.Config
	r   proc.Runner
}

func (s *alignStream) Plan() ([]task.Task, []string, error) {
	return planDatasets(s.cfg, config.StageAlignStream)
}

func (s *alignStream) Run(ctx context.Context, t task.Task) task.Outcome {
	threads := strconv.Itoa(s.cfg.EffectiveThreads())
	logPath := naming.LogPath(t.Dir, t.Name, "align-stream")
	sorted := naming.SortedBAM(t.Dir)

	args := []string{"-p", threads, "-x", s.cfg.IndexPath}
	switch t.Class {
	case discover.ClassPaired:
		args = append(args, "-1", t.Inputs[0], "-2", t.Inputs[1])
	case discover.ClassSingle:
		args = append(args, "--interleaved", t.Inputs[0])
	default:
		return Skipped(t)
	}
	args = append(args, "-a", "--sam")

	src := proc.Command{Tool: "bowtie", Args: args}
	dst := proc.Command{Tool: "samtools", Args: []string{"sort", "-@", threads, "-o", sorted}}

	records, err := s.r.RunPipe(ctx, src, dst, logPath)
	if err != nil {
		return failure(t, err)
	}
	if !records {
		return task.Outcome{Task: t, Status: task.StatusEmpty,
			Message: "no alignments; sort and index skipped"}
	}

	index := proc.Command{Tool: "samtools",
		Args: []string{"index", "-@", strconv.Itoa(s.cfg.EffectiveIndexThreads()), sorted}}
	if err := s.r.Run(ctx, index, logPath); err != nil {
		return failure(t, fmt.Errorf("index: %w", err))
	}

	out := completed(t)
	if s.cfg.DeleteInputs {
		removeInputs(&out, t.Inputs)
	}
	return out
}
