package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqmill/internal/config"
	"seqmill/internal/task"
)

func sampleSummary() *task.Summary {
	s := task.NewSummary("0f6c2a1e", config.StageTrim, 3)
	s.Started = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s.Record(task.Outcome{
		Task:    task.Task{Stage: config.StageTrim, Dir: "/data/ds2", Name: "ds2"},
		Status:  task.StatusToolFail,
		Message: "fastp exit status 1 (see /data/ds2/ds2_trim.log)",
	})
	s.Record(task.Outcome{
		Task:     task.Task{Stage: config.StageTrim, Dir: "/data/ds1", Name: "ds1"},
		Status:   task.StatusCompleted,
		Warnings: []string{"remove /data/ds1/a_1.fastq: permission denied"},
	})
	s.Record(task.Outcome{
		Task:    task.Task{Stage: config.StageTrim, Dir: "/data/ds3", Name: "ds3"},
		Status:  task.StatusSkipped,
		Message: "3 input files, expected 1 or 2",
	})
	return s
}

func TestWrite_SortedRowsWithPreamble(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Write(&sb, sampleSummary()))

	want := strings.Join([]string{
		"# run 0f6c2a1e",
		"# stage trim started 2026-03-14T09:26:53Z",
		"dataset\tdirectory\tstage\tstatus\tmessage\twarnings",
		"ds1\t/data/ds1\ttrim\tcompleted\t\tremove /data/ds1/a_1.fastq: permission denied",
		"ds2\t/data/ds2\ttrim\ttool-failed\tfastp exit status 1 (see /data/ds2/ds2_trim.log)\t",
		"ds3\t/data/ds3\ttrim\tskipped-no-input\t3 input files, expected 1 or 2\t",
		"",
	}, "\n")
	assert.Equal(t, want, sb.String())
}

func TestWrite_MessagesStayOnOneLine(t *testing.T) {
	s := task.NewSummary("x", config.StageAlign, 1)
	s.Record(task.Outcome{
		Task:    task.Task{Stage: config.StageAlign, Dir: "/d", Name: "d"},
		Status:  task.StatusToolFail,
		Message: "sort: broken\tpipe\nsecond line",
	})

	var sb strings.Builder
	require.NoError(t, Write(&sb, s))
	rows := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Len(t, rows, 4, "preamble, header and exactly one data row")
	assert.Contains(t, rows[3], "sort: broken pipe second line")
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.tsv")
	require.NoError(t, WriteFile(path, sampleSummary()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# run 0f6c2a1e\n"))
	assert.Contains(t, string(data), "\tcompleted\t")
}

func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "report.tsv"), sampleSummary())
	assert.Error(t, err)
}
