// Package report renders a machine-readable outcome table for a batch
// run. The format is plain TSV with a short comment preamble, which
// keeps it greppable and trivially loadable into R or pandas.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"seqmill/internal/task"
)

const tsvHeader = "dataset\tdirectory\tstage\tstatus\tmessage\twarnings"

// Write renders the summary as TSV. Rows are sorted by directory and
// dataset name so repeated runs over the same tree diff cleanly.
func Write(w io.Writer, s *task.Summary) error {
	if _, err := fmt.Fprintf(w, "# run %s\n# stage %s started %s\n%s\n",
		s.RunID, s.Stage, s.Started.UTC().Format(time.RFC3339), tsvHeader); err != nil {
		return err
	}

	rows := make([]task.Outcome, len(s.Outcomes))
	copy(rows, s.Outcomes)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Dir != rows[j].Dir {
			return rows[i].Dir < rows[j].Dir
		}
		return rows[i].Name < rows[j].Name
	})

	for _, o := range rows {
		if err := writeRow(w, o); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, o task.Outcome) error {
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		o.Name, o.Dir, o.Stage, o.Status,
		oneLine(o.Message), oneLine(strings.Join(o.Warnings, "; ")))
	return err
}

// oneLine keeps embedded tool text from breaking the row format.
func oneLine(s string) string {
	r := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	return r.Replace(s)
}

// WriteFile writes the summary to path, creating or truncating it.
func WriteFile(path string, s *task.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
