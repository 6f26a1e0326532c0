// Package errdefs defines the sentinel errors shared across bakmodel.
// Callers wrap these with fmt.Errorf("%w: ...") and match with errors.Is,
// so the CLI can translate each family into a distinct message and exit
// code without string matching.
package errdefs

import "errors"

var (
	// ErrDirectoryNotFound indicates a source or backup directory does not
	// exist or is not a directory.
	ErrDirectoryNotFound = errors.New("bakmodel: directory not found")

	// ErrNoModels indicates a directory exists but contains no model
	// artifacts (or no recorded snapshots).
	ErrNoModels = errors.New("bakmodel: no models found")

	// ErrInvalidSelection indicates an out-of-range or malformed selection
	// token.
	ErrInvalidSelection = errors.New("bakmodel: invalid selection")

	// ErrIOFailure indicates a read or write failed mid-operation.
	ErrIOFailure = errors.New("bakmodel: i/o failure")

	// ErrIntegrityCheckFailed indicates a recomputed digest did not match
	// the recorded one. Restores never copy data in this state.
	ErrIntegrityCheckFailed = errors.New("bakmodel: integrity check failed")

	// ErrRecordCorrupt indicates integrity records exist but cannot be
	// parsed. Distinct from ErrNoRecord so corruption is never silently
	// treated as "no data".
	ErrRecordCorrupt = errors.New("bakmodel: integrity data corrupt")

	// ErrNoRecord indicates no integrity record exists for a backup file.
	// Tolerated (with confirmation) on restore; never an excuse to skip a
	// failed comparison.
	ErrNoRecord = errors.New("bakmodel: no integrity record")

	// ErrInsufficientSpace indicates the destination filesystem ran out of
	// room during a copy.
	ErrInsufficientSpace = errors.New("bakmodel: insufficient space")

	// ErrPermissionDenied indicates the operating system refused access.
	ErrPermissionDenied = errors.New("bakmodel: permission denied")

	// ErrSourceMissing indicates the file to copy disappeared before or
	// during the transfer.
	ErrSourceMissing = errors.New("bakmodel: source file missing")

	// ErrAborted indicates the user quit an interactive prompt.
	ErrAborted = errors.New("bakmodel: aborted")

	// ErrOllamaUnavailable indicates the ollama binary was not found or did
	// not respond.
	ErrOllamaUnavailable = errors.New("bakmodel: ollama not available")
)
