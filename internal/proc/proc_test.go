package proc

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shell(script string) Command {
	return Command{Tool: "sh", Args: []string{"-c", script}}
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_CapturesOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	err := r.Run(context.Background(), shell(`echo from-stdout; echo from-stderr >&2`), logPath)
	require.NoError(t, err)

	log := readLog(t, logPath)
	assert.Contains(t, log, "+ sh -c")
	assert.Contains(t, log, "from-stdout")
	assert.Contains(t, log, "from-stderr")
}

func TestRun_AppendsAcrossInvocations(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	require.NoError(t, r.Run(context.Background(), shell(`echo first`), logPath))
	require.NoError(t, r.Run(context.Background(), shell(`echo second`), logPath))

	log := readLog(t, logPath)
	assert.Contains(t, log, "first")
	assert.Contains(t, log, "second")
	assert.Less(t, strings.Index(log, "first"), strings.Index(log, "second"))
}

func TestRun_NonZeroExit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	err := r.Run(context.Background(), shell(`exit 3`), logPath)
	require.Error(t, err)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.False(t, te.Spawn, "a tool that ran and exited is not a spawn failure")
	assert.Equal(t, "sh", te.Tool)
	assert.Contains(t, te.Error(), logPath)

	var exit *exec.ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 3, exit.ExitCode())
}

func TestRun_MissingTool(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	err := r.Run(context.Background(), Command{Tool: "seqmill-no-such-tool"}, logPath)
	require.Error(t, err)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Spawn)
	assert.NotContains(t, te.Error(), logPath, "spawn failures have no useful log to point at")
}

func TestRun_Stdin(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	cmd := shell(`cat`)
	cmd.Stdin = strings.NewReader("fed via stdin\n")
	require.NoError(t, r.Run(context.Background(), cmd, logPath))
	assert.Contains(t, readLog(t, logPath), "fed via stdin")
}

func TestRunPipe_StreamReachesDownstream(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "task.log")
	outPath := filepath.Join(dir, "stream.out")
	r := New()

	src := shell(`printf '@HD\tVN:1.6\n@SQ\tSN:chr1\n'; printf 'read1\t0\tchr1\n'; printf 'read2\t0\tchr1\n'`)
	dst := shell(`cat > ` + outPath)

	records, err := r.RunPipe(context.Background(), src, dst, logPath)
	require.NoError(t, err)
	assert.True(t, records)

	out := readLog(t, outPath)
	assert.True(t, strings.HasPrefix(out, "@HD"), "buffered header must arrive first")
	assert.Contains(t, out, "read1")
	assert.Contains(t, out, "read2")
}

func TestRunPipe_HeaderOnlyNeverStartsDownstream(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "task.log")
	marker := filepath.Join(dir, "marker")
	r := New()

	src := shell(`printf '@HD\tVN:1.6\n@SQ\tSN:chr1\n\n'`)
	dst := shell(`touch ` + marker)

	records, err := r.RunPipe(context.Background(), src, dst, logPath)
	require.NoError(t, err)
	assert.False(t, records)

	_, statErr := os.Stat(marker)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "downstream tool must not have run")
}

func TestRunPipe_WhitespaceOnlyLineNeverStartsDownstream(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "task.log")
	marker := filepath.Join(dir, "marker")
	r := New()

	src := shell(`printf '@HD\tVN:1.6\n \t \n'`)
	dst := shell(`touch ` + marker)

	records, err := r.RunPipe(context.Background(), src, dst, logPath)
	require.NoError(t, err)
	assert.False(t, records)

	_, statErr := os.Stat(marker)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "downstream tool must not have run")
}

func TestRunPipe_EmptyStream(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	records, err := r.RunPipe(context.Background(), shell(`true`), shell(`cat`), logPath)
	require.NoError(t, err)
	assert.False(t, records)
}

func TestRunPipe_SourceFailsDuringHeader(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	src := shell(`printf '@HD\n'; exit 2`)
	records, err := r.RunPipe(context.Background(), src, shell(`cat`), logPath)
	assert.False(t, records)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "sh", te.Tool)
	assert.False(t, te.Spawn)
}

func TestRunPipe_SourceFailureOutranksDownstreamSuccess(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "task.log")
	r := New()

	src := shell(`printf 'record\tline\n'; exit 2`)
	dst := shell(`cat > ` + filepath.Join(dir, "out"))

	records, err := r.RunPipe(context.Background(), src, dst, logPath)
	assert.True(t, records, "a record was seen before the failure")

	var te *ToolError
	require.ErrorAs(t, err, &te)

	var exit *exec.ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.ExitCode())
}

func TestRunPipe_DownstreamFails(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	src := shell(`printf 'record\tline\n'`)
	records, err := r.RunPipe(context.Background(), src, shell(`exit 5`), logPath)
	assert.True(t, records)

	var exit *exec.ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 5, exit.ExitCode())
}

func TestRunPipe_DownstreamSpawnFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task.log")
	r := New()

	src := shell(`printf 'record\tline\n'`)
	dst := Command{Tool: "seqmill-no-such-tool"}
	records, err := r.RunPipe(context.Background(), src, dst, logPath)
	assert.True(t, records)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Spawn)
	assert.Equal(t, "seqmill-no-such-tool", te.Tool)
}

func TestRunPipe_LargeStream(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "task.log")
	outPath := filepath.Join(dir, "count")
	r := New()

	// Well past the OS pipe buffer, so the stream really flows
	// through the gate instead of fitting in one write.
	src := shell(`printf '@HD\n'; head -c 262144 /dev/zero | tr '\0' 'a'`)
	dst := shell(`wc -c > ` + outPath)

	records, err := r.RunPipe(context.Background(), src, dst, logPath)
	require.NoError(t, err)
	assert.True(t, records)
	assert.Equal(t, "262148", strings.TrimSpace(readLog(t, outPath)))
}

func TestHasRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"header only", "@HD\tVN:1.6\n@SQ\tSN:chr1\n", false},
		{"blank lines only", "\n\n", false},
		{"header then whitespace-only line", "@HD\tVN:1.6\n \t \n", false},
		{"whitespace-only lines", " \t \n  \n", false},
		{"header then record", "@HD\tVN:1.6\nread1\t0\tchr1\n", true},
		{"record without trailing newline", "@HD\nread1\t0", true},
		{"record first", "read1\t0\tchr1\n@weird\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasRecords(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandLine(t *testing.T) {
	c := Command{Tool: "hisat2", Args: []string{"-x", "idx", "-U", "reads.fastq"}}
	assert.Equal(t, "hisat2 -x idx -U reads.fastq", c.Line())
}
