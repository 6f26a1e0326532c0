// Package backup orchestrates the checksum-verified backup and restore
// flows over the snapshot layout <root>/models/<name>/<timestamp>/. Each
// snapshot holds the copied payload, a manifest.json with metadata, and a
// checksums.txt sidecar whose entries are the integrity records restores
// are verified against.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bakmodel/src/errdefs"
)

// TimestampLayout names snapshot directories.
const TimestampLayout = "20060102T150405Z"

// ManifestName is the metadata file written into every snapshot.
const ManifestName = "manifest.json"

// Snapshot types.
const (
	TypeModel       = "model"
	TypeOllamaModel = "ollama-model"
)

// FileEntry records one backed-up file inside a snapshot.
type FileEntry struct {
	Path      string `json:"path"` // relative to the snapshot directory
	SizeBytes int64  `json:"sizeBytes"`
	Digest    string `json:"digest"` // sha256 hex of the copied bytes
}

// Manifest captures metadata for one snapshot. Together with the
// checksums.txt entries it forms the persistent backup record: artifact
// name, backup path, digest, and creation time.
type Manifest struct {
	Type      string            `json:"type"` // model | ollama-model
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"createdAt"`
	RunID     string            `json:"runId"`
	SourceDir string            `json:"sourceDir"`
	Files     []FileEntry       `json:"files"`
	Options   map[string]string `json:"options,omitempty"`
}

// Result reports the outcome of one artifact operation. DigestVerified is
// nil when no digest comparison took place.
type Result struct {
	Name           string `json:"name"`
	Succeeded      bool   `json:"succeeded"`
	Message        string `json:"message"`
	DigestVerified *bool  `json:"digestVerified,omitempty"`
	SnapshotDir    string `json:"snapshotDir,omitempty"`
}

// LoadManifest reads and decodes a snapshot's manifest.json. A missing
// manifest reads as ErrNoRecord, an undecodable one as ErrRecordCorrupt.
func LoadManifest(snapDir string) (Manifest, error) {
	b, err := os.ReadFile(filepath.Join(snapDir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, fmt.Errorf("%w: %s has no %s", errdefs.ErrNoRecord, snapDir, ManifestName)
		}
		return Manifest{}, fmt.Errorf("%w: read %s: %v", errdefs.ErrIOFailure, ManifestName, err)
	}
	var mf Manifest
	if err := json.Unmarshal(b, &mf); err != nil {
		return Manifest{}, fmt.Errorf("%w: %s in %s: %v", errdefs.ErrRecordCorrupt, ManifestName, snapDir, err)
	}
	return mf, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", errdefs.ErrIOFailure, path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: encode %s: %v", errdefs.ErrIOFailure, path, err)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
