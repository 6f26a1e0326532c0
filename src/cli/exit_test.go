package cli

import (
	"errors"
	"fmt"
	"testing"

	"bakmodel/src/errdefs"
)

func TestExitCodeFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"aborted", errdefs.ErrAborted, 0},
		{"generic", errors.New("boom"), 1},
		{"io failure", errdefs.ErrIOFailure, 1},
		{"directory not found", fmt.Errorf("%w: /x", errdefs.ErrDirectoryNotFound), 2},
		{"no models", errdefs.ErrNoModels, 2},
		{"source missing", errdefs.ErrSourceMissing, 2},
		{"ollama unavailable", errdefs.ErrOllamaUnavailable, 2},
		{"invalid selection", errdefs.ErrInvalidSelection, 3},
		{"integrity check failed", fmt.Errorf("%w: payload", errdefs.ErrIntegrityCheckFailed), 4},
		{"record corrupt", errdefs.ErrRecordCorrupt, 4},
		{"no record", errdefs.ErrNoRecord, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCodeFromError(tc.err); got != tc.want {
				t.Fatalf("exitCodeFromError(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
