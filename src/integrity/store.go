package integrity

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bakmodel/src/errdefs"
)

// SidecarName is the checksum sidecar file written into every snapshot
// directory.
const SidecarName = "checksums.txt"

// Store reads and writes the digest records of one snapshot directory.
// Records are append-only; each backup run gets a fresh timestamped
// directory, so paths from different runs never collide.
type Store struct {
	dir string
}

// NewStore returns a Store bound to the given snapshot directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the snapshot directory the store records into.
func (s *Store) Dir() string {
	return s.dir
}

// Record appends a digest entry for relPath (relative to the snapshot
// directory, slash-separated in the sidecar).
func (s *Store) Record(relPath, digest string) error {
	if !ValidDigest(digest) {
		return fmt.Errorf("%w: refusing to record malformed digest %q for %s", errdefs.ErrRecordCorrupt, digest, relPath)
	}
	f, err := os.OpenFile(filepath.Join(s.dir, SidecarName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", errdefs.ErrIOFailure, SidecarName, err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s  %s\n", strings.ToLower(digest), filepath.ToSlash(relPath)); err != nil {
		return fmt.Errorf("%w: write %s: %v", errdefs.ErrIOFailure, SidecarName, err)
	}
	return nil
}

// RecordFile hashes the file at relPath and records the result, returning
// the digest.
func (s *Store) RecordFile(relPath string) (string, error) {
	sum, err := FileDigest(filepath.Join(s.dir, relPath))
	if err != nil {
		return "", err
	}
	if err := s.Record(relPath, sum); err != nil {
		return "", err
	}
	return sum, nil
}

// Entry is one parsed sidecar line.
type Entry struct {
	RelPath string
	Digest  string
}

// Entries parses the snapshot's sidecar. A missing sidecar yields
// ErrNoRecord ("no verification data available"); malformed content yields
// ErrRecordCorrupt and is never silently accepted.
func (s *Store) Entries() ([]Entry, error) {
	f, err := os.Open(filepath.Join(s.dir, SidecarName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s has no %s", errdefs.ErrNoRecord, s.dir, SidecarName)
		}
		return nil, fmt.Errorf("%w: open %s: %v", errdefs.ErrIOFailure, SidecarName, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Expect format: <sha256>  <relative path>
		parts := strings.SplitN(line, "  ", 2)
		if len(parts) != 2 || !ValidDigest(parts[0]) || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("%w: %s line %d", errdefs.ErrRecordCorrupt, SidecarName, lineNo)
		}
		entries = append(entries, Entry{RelPath: parts[1], Digest: strings.ToLower(parts[0])})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", errdefs.ErrIOFailure, SidecarName, err)
	}
	return entries, nil
}

// Lookup returns the recorded digest for relPath. Absent entries and a
// missing sidecar both surface as ErrNoRecord; a corrupt sidecar surfaces
// as ErrRecordCorrupt.
func (s *Store) Lookup(relPath string) (string, error) {
	entries, err := s.Entries()
	if err != nil {
		return "", err
	}
	want := filepath.ToSlash(relPath)
	for _, e := range entries {
		if e.RelPath == want {
			return e.Digest, nil
		}
	}
	return "", fmt.Errorf("%w: no digest recorded for %s", errdefs.ErrNoRecord, relPath)
}

// Lookup finds the sidecar governing backupPath (in the file's own
// directory or the nearest ancestor holding one) and returns the digest
// recorded for it.
func Lookup(backupPath string) (string, error) {
	abs, err := filepath.Abs(backupPath)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", errdefs.ErrIOFailure, backupPath, err)
	}
	dir := filepath.Dir(abs)
	for {
		if _, err := os.Stat(filepath.Join(dir, SidecarName)); err == nil {
			rel, err := filepath.Rel(dir, abs)
			if err != nil {
				return "", fmt.Errorf("%w: resolve %s: %v", errdefs.ErrIOFailure, backupPath, err)
			}
			return NewStore(dir).Lookup(rel)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s found above %s", errdefs.ErrNoRecord, SidecarName, backupPath)
		}
		dir = parent
	}
}
