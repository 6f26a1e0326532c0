package backup

import (
	"io/fs"
	"path/filepath"

	"bakmodel/src/backend/directory"
	"bakmodel/src/integrity"
)

// Stats aggregates store-wide totals.
type Stats struct {
	Models     int   `json:"models"`
	Snapshots  int   `json:"snapshots"`
	Files      int   `json:"files"`
	TotalBytes int64 `json:"totalBytes"`
}

// Collect walks the store under root and totals models, snapshots,
// payload files, and payload bytes. Sizes come from the manifests; a
// snapshot without a readable manifest is sized by walking its directory.
func Collect(root string) (Stats, error) {
	be, err := directory.New(root)
	if err != nil {
		return Stats{}, err
	}
	snaps, err := be.List()
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	names := make(map[string]struct{})
	for _, snap := range snaps {
		s.Snapshots++
		names[snap.Name] = struct{}{}
		if mf, err := LoadManifest(snap.Path); err == nil {
			s.Files += len(mf.Files)
			for _, f := range mf.Files {
				s.TotalBytes += f.SizeBytes
			}
			continue
		}
		files, bytes := walkPayload(snap.Path)
		s.Files += files
		s.TotalBytes += bytes
	}
	s.Models = len(names)
	return s, nil
}

func walkPayload(snapDir string) (files int, bytes int64) {
	filepath.WalkDir(snapDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if base == ManifestName || base == integrity.SidecarName {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			files++
			bytes += fi.Size()
		}
		return nil
	})
	return files, bytes
}
