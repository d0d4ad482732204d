package proc

import (
	"bufio"
	"io"
	"strings"
)

// isHeaderLine reports whether a SAM line carries no alignment: blank
// or whitespace-only, or a header line starting with '@'. Record lines
// never open with whitespace (QNAME is drawn from printable
// non-whitespace), so trimming cannot swallow one.
func isHeaderLine(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || line[0] == '@'
}

// HasRecords reports whether r holds at least one alignment record.
// Reads line by line rather than with a Scanner; SAM record lines can
// exceed any fixed token size.
func HasRecords(r io.Reader) (bool, error) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && !isHeaderLine(line) {
			return true, nil
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}
