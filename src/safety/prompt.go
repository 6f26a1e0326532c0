// Package safety gates destructive actions behind the global --dry-run,
// --yes, and --force flags plus an interactive y/N prompt.
package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question before a destructive step such as
// overwriting restored model files or deleting pruned snapshots. Only
// "y" or "yes" (any case) confirms. Dry-run declines without prompting,
// Yes confirms without prompting, and EOF reads as a decline.
func Confirm(opts Options, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.DryRun {
		return false, nil
	}
	if opts.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	// NewReader returns an already-buffered reader unchanged; the
	// interactive menu's shared reader loses no queued input here.
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.TrimSpace(strings.ToLower(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Confirmf is Confirm with a formatted question.
func Confirmf(opts Options, in io.Reader, out io.Writer, format string, args ...any) (bool, error) {
	return Confirm(opts, in, out, fmt.Sprintf(format, args...))
}
