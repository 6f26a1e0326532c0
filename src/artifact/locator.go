// Package artifact discovers model files eligible for backup.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"bakmodel/src/errdefs"
)

// Artifact is one discoverable model file.
type Artifact struct {
	Name       string `json:"name"`
	SourcePath string `json:"sourcePath"`
	SizeBytes  int64  `json:"sizeBytes"`
}

// List scans dir (non-recursively) and returns one Artifact per regular
// file, in lexicographic name order so selection by index is stable
// across calls. Hidden files are skipped. A missing or non-directory path
// yields ErrDirectoryNotFound; an existing directory with no model files
// yields ErrNoModels. The two cases are deliberately distinct.
func List(dir string) ([]Artifact, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errdefs.ErrDirectoryNotFound, dir)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: stat %s", errdefs.ErrPermissionDenied, dir)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", errdefs.ErrIOFailure, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", errdefs.ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: read %s", errdefs.ErrPermissionDenied, dir)
		}
		return nil, fmt.Errorf("%w: read %s: %v", errdefs.ErrIOFailure, dir, err)
	}

	var arts []Artifact
	for _, e := range entries { // ReadDir returns entries sorted by name
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			log.WithField("entry", e.Name()).WithError(err).Debug("skipping unreadable entry")
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		arts = append(arts, Artifact{
			Name:       e.Name(),
			SourcePath: filepath.Join(dir, e.Name()),
			SizeBytes:  fi.Size(),
		})
	}
	if len(arts) == 0 {
		return nil, fmt.Errorf("%w: no model files in %s", errdefs.ErrNoModels, dir)
	}
	return arts, nil
}

// FilterMinSize drops artifacts smaller than minBytes. A non-positive
// threshold keeps everything.
func FilterMinSize(arts []Artifact, minBytes int64) []Artifact {
	if minBytes <= 0 {
		return arts
	}
	out := make([]Artifact, 0, len(arts))
	for _, a := range arts {
		if a.SizeBytes >= minBytes {
			out = append(out, a)
		}
	}
	return out
}

// SafeName converts an artifact name into a directory-safe form: NFC
// normalization with path separators and colons replaced by dashes, so
// "llama3:8b" becomes the snapshot directory llama3-8b.
func SafeName(name string) string {
	s := norm.NFC.String(name)
	return strings.NewReplacer(":", "-", "/", "-", `\`, "-").Replace(s)
}
