package backup

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"bakmodel/src/errdefs"
	"bakmodel/src/integrity"
	"bakmodel/src/transfer"
)

// RestoreOptions control a snapshot restore.
type RestoreOptions struct {
	// DestDir overrides the restore destination. Empty means the source
	// directory recorded in the manifest.
	DestDir string
	// AllowUnverified permits restoring files that have no integrity
	// record. A digest mismatch is always fatal regardless.
	AllowUnverified bool
	Progress        io.Writer
}

// RestoreSnapshot verifies a snapshot's files against their recorded
// digests and only then copies them to the destination, preserving
// relative paths. A mismatch aborts before any byte reaches the
// destination. Files without a record fail with ErrNoRecord unless
// AllowUnverified is set.
func RestoreSnapshot(snapDir string, opts RestoreOptions) (Result, error) {
	mf, err := LoadManifest(snapDir)
	if err != nil {
		return Result{}, err
	}
	destDir := opts.DestDir
	if destDir == "" {
		destDir = mf.SourceDir
	}
	if destDir == "" {
		return Result{}, fmt.Errorf("%w: snapshot %s records no source directory and no destination was given", errdefs.ErrInvalidSelection, snapDir)
	}

	st := integrity.NewStore(snapDir)
	verified := true

	// The manifest itself carries a record too. Checking it first means a
	// tampered manifest cannot smuggle in a bogus file list.
	if want, err := st.Lookup(ManifestName); err == nil {
		got, err := integrity.FileDigest(filepath.Join(snapDir, ManifestName))
		if err != nil {
			return Result{}, err
		}
		if got != want {
			return Result{}, fmt.Errorf("%w: %s recorded %s but hashed %s", errdefs.ErrIntegrityCheckFailed, ManifestName, want, got)
		}
	} else if errors.Is(err, errdefs.ErrRecordCorrupt) {
		return Result{}, err
	}

	// Verify every file before the first copy.
	for _, f := range mf.Files {
		stored := filepath.Join(snapDir, filepath.FromSlash(f.Path))
		want, err := st.Lookup(f.Path)
		switch {
		case errors.Is(err, errdefs.ErrNoRecord):
			if !opts.AllowUnverified {
				return Result{}, fmt.Errorf("%w: %s in %s", errdefs.ErrNoRecord, f.Path, snapDir)
			}
			verified = false
			log.WithField("file", f.Path).Warn("restoring without integrity record")
		case err != nil:
			return Result{}, err
		default:
			if f.Digest != "" && f.Digest != want {
				return Result{}, fmt.Errorf("%w: %s manifest and checksum records disagree", errdefs.ErrRecordCorrupt, f.Path)
			}
			got, err := integrity.FileDigest(stored)
			if err != nil {
				return Result{}, err
			}
			if got != want {
				return Result{}, fmt.Errorf("%w: %s recorded %s but hashed %s", errdefs.ErrIntegrityCheckFailed, f.Path, want, got)
			}
		}
	}

	for _, f := range mf.Files {
		stored := filepath.Join(snapDir, filepath.FromSlash(f.Path))
		dst := filepath.Join(destDir, filepath.FromSlash(f.Path))
		if err := transfer.Copy(stored, dst, transfer.Options{Progress: opts.Progress, Label: filepath.Base(f.Path)}); err != nil {
			return Result{}, err
		}
	}
	log.WithFields(log.Fields{"name": mf.Name, "dest": destDir, "files": len(mf.Files)}).Debug("restored snapshot")

	return Result{
		Name:           mf.Name,
		Succeeded:      true,
		Message:        fmt.Sprintf("restored %d file(s) to %s", len(mf.Files), destDir),
		DigestVerified: boolPtr(verified),
		SnapshotDir:    snapDir,
	}, nil
}

// RestoreTargets lists the destination paths RestoreSnapshot would write,
// without touching anything. Used for dry-run previews.
func RestoreTargets(snapDir string, opts RestoreOptions) ([]string, error) {
	mf, err := LoadManifest(snapDir)
	if err != nil {
		return nil, err
	}
	destDir := opts.DestDir
	if destDir == "" {
		destDir = mf.SourceDir
	}
	paths := make([]string, 0, len(mf.Files))
	for _, f := range mf.Files {
		paths = append(paths, filepath.Join(destDir, filepath.FromSlash(f.Path)))
	}
	return paths, nil
}
