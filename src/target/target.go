// Package target parses backup target URIs of the form dir:/path.
package target

import (
	"fmt"
	"path/filepath"
	"strings"

	"bakmodel/src/errdefs"
)

// Target is a parsed backup target.
// Example: dir:/mnt/nas/ModelBakup
type Target struct {
	// Raw is the original input string.
	Raw string
	// Scheme is the backend scheme (currently only "dir").
	Scheme string
	// DirPath is the cleaned absolute directory path for dir targets.
	DirPath string
}

// Parse parses a target URI like "dir:/path". Malformed input maps to
// ErrInvalidSelection so the CLI reports it as bad input rather than an
// internal failure.
func Parse(raw string) (Target, error) {
	t := Target{Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" {
		return t, fmt.Errorf("%w: target must not be empty (expected dir:/path)", errdefs.ErrInvalidSelection)
	}
	scheme, val, ok := strings.Cut(s, ":")
	if !ok || scheme == "" || val == "" {
		return t, fmt.Errorf("%w: invalid target %q (expected dir:/path)", errdefs.ErrInvalidSelection, raw)
	}
	t.Scheme = strings.ToLower(strings.TrimSpace(scheme))
	if t.Scheme != "dir" {
		return t, fmt.Errorf("%w: unsupported target scheme %q (only dir: is supported)", errdefs.ErrInvalidSelection, t.Scheme)
	}

	clean := filepath.Clean(strings.TrimSpace(val))
	if !filepath.IsAbs(clean) {
		return t, fmt.Errorf("%w: directory target must be an absolute path: %q", errdefs.ErrInvalidSelection, val)
	}
	t.DirPath = clean
	return t, nil
}

// String returns the canonical form of the target.
func (t Target) String() string {
	if t.DirPath != "" {
		return t.Scheme + ":" + t.DirPath
	}
	return t.Raw
}
