package cli

import (
	"errors"

	"bakmodel/src/errdefs"
)

// Exit codes. Related failures share a code so scripts can branch on the
// failure family rather than on message text.
const (
	exitOK        = 0
	exitFailure   = 1
	exitNotFound  = 2
	exitBadInput  = 3
	exitIntegrity = 4
)

// exitCodeFromError maps an error to the process exit code. A user abort
// is a clean exit.
func exitCodeFromError(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errdefs.ErrAborted):
		return exitOK
	case errors.Is(err, errdefs.ErrIntegrityCheckFailed),
		errors.Is(err, errdefs.ErrRecordCorrupt),
		errors.Is(err, errdefs.ErrNoRecord):
		return exitIntegrity
	case errors.Is(err, errdefs.ErrInvalidSelection):
		return exitBadInput
	case errors.Is(err, errdefs.ErrDirectoryNotFound),
		errors.Is(err, errdefs.ErrNoModels),
		errors.Is(err, errdefs.ErrSourceMissing),
		errors.Is(err, errdefs.ErrOllamaUnavailable):
		return exitNotFound
	default:
		return exitFailure
	}
}
