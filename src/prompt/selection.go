// Package prompt parses interactive selection input. Parsing is a pure
// function over the displayed list length, decoupled from console I/O, so
// selection handling is testable without simulating a terminal.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"bakmodel/src/errdefs"
)

// ParseSelection validates a raw selection token against a displayed list
// of n items. Accepted forms (indices are 1-based, as displayed):
//
//	"3"      single index
//	"1,3,5"  multiple indices; duplicates collapse, order preserved
//	"a"      all items
//	"q"      abort (ErrAborted)
//
// The returned indices are 0-based positions into the list.
func ParseSelection(raw string, n int) ([]int, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "":
		return nil, fmt.Errorf("%w: empty input", errdefs.ErrInvalidSelection)
	case "q", "quit":
		return nil, errdefs.ErrAborted
	case "a", "all":
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	seen := make(map[int]bool)
	var out []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty index in %q", errdefs.ErrInvalidSelection, raw)
		}
		idx, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", errdefs.ErrInvalidSelection, tok)
		}
		if idx < 1 || idx > n {
			return nil, fmt.Errorf("%w: index %d out of range 1-%d", errdefs.ErrInvalidSelection, idx, n)
		}
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx-1)
		}
	}
	return out, nil
}

// ParseSingle is ParseSelection restricted to exactly one index; "a" is
// rejected. Used where only one item can be acted on at a time.
func ParseSingle(raw string, n int) (int, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "a" || s == "all" {
		return 0, fmt.Errorf("%w: exactly one index required", errdefs.ErrInvalidSelection)
	}
	idxs, err := ParseSelection(raw, n)
	if err != nil {
		return 0, err
	}
	if len(idxs) != 1 {
		return 0, fmt.Errorf("%w: exactly one index required, got %d", errdefs.ErrInvalidSelection, len(idxs))
	}
	return idxs[0], nil
}
