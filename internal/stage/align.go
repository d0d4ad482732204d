package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"seqmill/internal/config"
	"seqmill/internal/discover"
	"seqmill/internal/naming"
	"seqmill/internal/proc"
	"seqmill/internal/task"
)

// align materializes the alignment to a SAM file, then converts,
// quality-filters, sorts, and indexes it in four dependent steps.
// The SAM and the filtered BAM are deleted as soon as the next step
// has consumed them; the unfiltered aligned.bam and the final
// filtered_sorted.bam remain.
type align struct {
	cfg *config.Config
	r   proc.Runner
}

func (s *align) Plan() ([]task.Task, []string, error) {
	return planDatasets(s.cfg, config.StageAlign)
}

func (s *align) Run(ctx context.Context, t task.Task) task.Outcome {
	threads := strconv.Itoa(s.cfg.EffectiveThreads())
	logPath := naming.LogPath(t.Dir, t.Name, "align")
	sam := filepath.Join(t.Dir, naming.AlignedSAM)
	bam := filepath.Join(t.Dir, naming.AlignedBAM)
	filtered := filepath.Join(t.Dir, naming.FilteredBAM)
	sorted := filepath.Join(t.Dir, naming.FilteredSortedBAM)

	args := []string{"-x", s.cfg.IndexPath}
	switch t.Class {
	case discover.ClassPaired:
		args = append(args, "-1", t.Inputs[0], "-2", t.Inputs[1])
	case discover.ClassSingle:
		args = append(args, "-U", t.Inputs[0])
	default:
		return Skipped(t)
	}
	args = append(args, "-S", sam, "-a", "-p", threads)

	if err := s.r.Run(ctx, proc.Command{Tool: "hisat2", Args: args}, logPath); err != nil {
		return failure(t, err)
	}

	records, err := samHasRecords(sam)
	if err != nil {
		return fsFailure(t, err)
	}
	if !records {
		// The header-only SAM stays behind for inspection.
		return task.Outcome{Task: t, Status: task.StatusEmpty,
			Message: "no alignments; " + naming.AlignedSAM + " kept"}
	}

	convert := proc.Command{Tool: "samtools",
		Args: []string{"view", "-@", threads, "-b", "-o", bam, sam}}
	if err := s.r.Run(ctx, convert, logPath); err != nil {
		return failure(t, fmt.Errorf("convert: %w", err))
	}
	if err := os.Remove(sam); err != nil {
		return fsFailure(t, err)
	}

	filter := proc.Command{Tool: "samtools",
		Args: []string{"view", "-@", threads, "-q", "2", "-o", filtered, bam}}
	if err := s.r.Run(ctx, filter, logPath); err != nil {
		return failure(t, fmt.Errorf("filter: %w", err))
	}

	sortCmd := proc.Command{Tool: "samtools",
		Args: []string{"sort", "-@", threads, "-o", sorted, filtered}}
	if err := s.r.Run(ctx, sortCmd, logPath); err != nil {
		return failure(t, fmt.Errorf("sort: %w", err))
	}
	if err := os.Remove(filtered); err != nil {
		return fsFailure(t, err)
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
