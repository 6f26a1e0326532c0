// Package transfer performs byte copies with atomic-write discipline:
// bytes land in a temporary sibling first and are renamed into place, so
// a destination path never holds a partial file that could be mistaken
// for a completed copy.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"bakmodel/src/errdefs"
	"bakmodel/src/util/progress"
)

// progressThreshold is the payload size below which no progress line is
// printed even when a progress writer is supplied.
const progressThreshold = 1 << 20

// Options tunes a single copy operation.
type Options struct {
	// Progress, when non-nil, receives a single-line progress report for
	// payloads of at least 1 MiB.
	Progress io.Writer
	// Label names the transfer in the progress line. Defaults to the
	// source base name.
	Label string
}

// Copy transfers sourcePath to destinationPath byte-for-byte, creating
// destination parent directories as needed. Failures are classified into
// ErrSourceMissing, ErrPermissionDenied, ErrInsufficientSpace, or
// ErrIOFailure.
func Copy(sourcePath, destinationPath string, opts Options) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return classifyOpen(sourcePath, err)
	}
	defer src.Close()
	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", errdefs.ErrIOFailure, sourcePath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", errdefs.ErrIOFailure, sourcePath)
	}

	destDir := filepath.Dir(destinationPath)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return classifyWrite(destDir, err)
	}

	tmp, err := os.CreateTemp(destDir, ".tmp-"+filepath.Base(destinationPath)+"-*")
	if err != nil {
		return classifyWrite(destinationPath, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename lands

	var reader io.Reader = src
	if opts.Progress != nil && info.Size() >= progressThreshold {
		label := opts.Label
		if label == "" {
			label = filepath.Base(sourcePath)
		}
		reader = progress.NewReader(src, info.Size(), label, opts.Progress)
	}

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return classifyCopy(sourcePath, destinationPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return classifyWrite(destinationPath, err)
	}
	if err := tmp.Close(); err != nil {
		return classifyWrite(destinationPath, err)
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return classifyWrite(destinationPath, err)
	}
	if err := os.Rename(tmpName, destinationPath); err != nil {
		return classifyWrite(destinationPath, err)
	}
	log.WithFields(log.Fields{
		"source": sourcePath,
		"dest":   destinationPath,
		"bytes":  info.Size(),
	}).Debug("copied file")
	return nil
}

func classifyOpen(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", errdefs.ErrSourceMissing, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: read %s", errdefs.ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%w: open %s: %v", errdefs.ErrIOFailure, path, err)
	}
}

func classifyWrite(path string, err error) error {
	switch {
	case errors.Is(err, syscall.ENOSPC):
		return fmt.Errorf("%w: writing %s", errdefs.ErrInsufficientSpace, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: write %s", errdefs.ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%w: write %s: %v", errdefs.ErrIOFailure, path, err)
	}
}

// classifyCopy tells a source that vanished mid-read apart from
// destination write failures.
func classifyCopy(src, dst string, err error) error {
	switch {
	case errors.Is(err, syscall.ENOSPC):
		return fmt.Errorf("%w: writing %s", errdefs.ErrInsufficientSpace, dst)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", errdefs.ErrSourceMissing, src)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: copying to %s", errdefs.ErrPermissionDenied, dst)
	default:
		return fmt.Errorf("%w: copy %s -> %s: %v", errdefs.ErrIOFailure, src, dst, err)
	}
}
