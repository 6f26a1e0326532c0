package directory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bakmodel/src/backend"
	"bakmodel/src/errdefs"
)

// Backend implements backend.Store for the filesystem layout
// <root>/models/<name>/<timestamp>.
type Backend struct {
	Root string // absolute directory path
}

// New validates root and returns a Backend. A missing or non-directory
// root yields ErrDirectoryNotFound so operations against a bad path stay
// distinguishable from an empty store.
func New(root string) (*Backend, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: backup root must not be empty", errdefs.ErrDirectoryNotFound)
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errdefs.ErrDirectoryNotFound, root)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", errdefs.ErrIOFailure, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", errdefs.ErrDirectoryNotFound, root)
	}
	return &Backend{Root: root}, nil
}

// List enumerates every recorded snapshot, sorted by name then timestamp.
// A store with no models/ subtree lists as empty, not as an error.
func (b *Backend) List() ([]backend.Snapshot, error) {
	base := filepath.Join(b.Root, backend.ModelsSubdir)
	names, err := readDirNames(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", errdefs.ErrIOFailure, base, err)
	}
	var snaps []backend.Snapshot
	for _, name := range names {
		more, err := b.ListModel(name)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, more...)
	}
	sort.Slice(snaps, func(i, j int) bool {
		a, c := snaps[i], snaps[j]
		if a.Name != c.Name {
			return a.Name < c.Name
		}
		return a.Timestamp < c.Timestamp
	})
	return snaps, nil
}

// ListModel enumerates the snapshots of one model, oldest first.
func (b *Backend) ListModel(name string) ([]backend.Snapshot, error) {
	dir := filepath.Join(b.Root, backend.ModelsSubdir, name)
	timestamps, err := readDirNames(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", errdefs.ErrIOFailure, dir, err)
	}
	snaps := make([]backend.Snapshot, 0, len(timestamps))
	for _, ts := range timestamps {
		snaps = append(snaps, backend.Snapshot{Name: name, Timestamp: ts, Path: filepath.Join(dir, ts)})
	}
	return snaps, nil
}

func readDirNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			name := e.Name()
			// skip hidden
			if strings.HasPrefix(name, ".") {
				continue
			}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
