package proc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// RunPipe runs src and, once its stdout carries a record line, starts
// dst with the full stream (buffered header included) on stdin.
//
// Aligners emit the SAM header before reading a single read, so a run
// where nothing maps still produces header lines. dst is held back
// until the first record line; a header-only stream ends with dst
// never started and no output file created.
func (r *execRunner) RunPipe(ctx context.Context, src, dst Command, logPath string) (bool, error) {
	logf, err := openLog(logPath)
	if err != nil {
		return false, err
	}
	defer logf.Close()
	fmt.Fprintf(logf, "+ %s\n", src.Line())

	srcCmd := exec.CommandContext(ctx, src.Tool, src.Args...)
	srcCmd.Stderr = logf
	out, err := srcCmd.StdoutPipe()
	if err != nil {
		return false, newToolError(src.Tool, logPath, err)
	}
	if err := srcCmd.Start(); err != nil {
		return false, newToolError(src.Tool, logPath, err)
	}

	br := bufio.NewReader(out)
	var header bytes.Buffer
	var record string
	var scanErr error
	for {
		line, err := br.ReadString('\n')
		if line != "" && !isHeaderLine(line) {
			record = line
			break
		}
		header.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			scanErr = err
			break
		}
	}

	if record == "" {
		srcErr := srcCmd.Wait()
		switch {
		case srcErr != nil:
			return false, newToolError(src.Tool, logPath, srcErr)
		case scanErr != nil:
			return false, fmt.Errorf("reading %s output: %w", src.Tool, scanErr)
		}
		return false, nil
	}

	fmt.Fprintf(logf, "+ %s\n", dst.Line())
	dstCmd := exec.CommandContext(ctx, dst.Tool, dst.Args...)
	dstCmd.Stdin = io.MultiReader(&header, strings.NewReader(record), br)
	dstCmd.Stdout = logf
	dstCmd.Stderr = logf

	var dstErr error
	if err := dstCmd.Start(); err != nil {
		dstErr = err
	} else {
		dstErr = dstCmd.Wait()
	}

	// If dst stopped reading early, src may be blocked on a full
	// pipe. Drain the remainder before reaping it.
	io.Copy(io.Discard, br)
	srcErr := srcCmd.Wait()

	switch {
	case srcErr != nil:
		return true, newToolError(src.Tool, logPath, srcErr)
	case dstErr != nil:
		return true, newToolError(dst.Tool, logPath, dstErr)
	}
	return true, nil
}
