package display

import (
	"fmt"
	"os"

	"seqmill/internal/term"
)

// PrintBanner prints the ASCII art banner; uses bright magenta if colors
// are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` ____             __  __ _ _ _
/ ___|  ___  __ _|  \/  (_) | |
\___ \ / _ \/ _`+"`"+` | |\/| | | | |
 ___) |  __/ (_| | |  | | | | |
|____/ \___|\__, |_|  |_|_|_|_|
                |_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
