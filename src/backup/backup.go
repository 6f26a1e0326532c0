package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"bakmodel/src/artifact"
	"bakmodel/src/backend"
	"bakmodel/src/errdefs"
	"bakmodel/src/integrity"
	"bakmodel/src/ollama"
	"bakmodel/src/report"
	"bakmodel/src/transfer"
)

// BackupFile copies one artifact into a fresh timestamped snapshot under
// root, hashes the copy, and records the digest in the snapshot's manifest
// and checksum sidecar. It returns the snapshot directory.
func BackupFile(root string, art artifact.Artifact, now time.Time, runID string, progressOut io.Writer) (string, error) {
	snapDir, err := newSnapshotDir(filepath.Join(root, backend.ModelsSubdir, artifact.SafeName(art.Name)), now)
	if err != nil {
		return "", err
	}

	payload := filepath.Base(art.SourcePath)
	dst := filepath.Join(snapDir, payload)
	if err := transfer.Copy(art.SourcePath, dst, transfer.Options{Progress: progressOut, Label: art.Name}); err != nil {
		return "", err
	}
	// Hash the copy, not the source, so the record describes the bytes
	// that actually landed in the snapshot.
	digest, err := integrity.FileDigest(dst)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(dst)
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", errdefs.ErrIOFailure, dst, err)
	}

	mf := Manifest{
		Type:      TypeModel,
		Name:      art.Name,
		CreatedAt: now.UTC(),
		RunID:     runID,
		SourceDir: filepath.Dir(art.SourcePath),
		Files: []FileEntry{
			{Path: payload, SizeBytes: fi.Size(), Digest: digest},
		},
	}
	if err := writeJSON(filepath.Join(snapDir, ManifestName), mf); err != nil {
		return "", err
	}

	st := integrity.NewStore(snapDir)
	if err := st.Record(payload, digest); err != nil {
		return "", err
	}
	if _, err := st.RecordFile(ManifestName); err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"name": art.Name, "snapshot": snapDir, "digest": digest}).Debug("backed up artifact")
	return snapDir, nil
}

// BackupOllama copies an ollama model's manifest and blobs into one
// snapshot, preserving their relative layout. Every blob is re-hashed
// after the copy and compared against the digest embedded in its name; a
// mismatch means the copy or the source is corrupt and fails the snapshot.
func BackupOllama(root string, client ollama.Client, model ollama.Model, now time.Time, runID string, progressOut io.Writer) (string, error) {
	files, err := ollama.ResolveFiles(client.ModelsDir(), model.Name)
	if err != nil {
		return "", err
	}
	snapDir, err := newSnapshotDir(filepath.Join(root, backend.ModelsSubdir, artifact.SafeName(model.Name)), now)
	if err != nil {
		return "", err
	}

	st := integrity.NewStore(snapDir)
	entries := make([]FileEntry, 0, len(files))
	for _, f := range files {
		src := filepath.Join(client.ModelsDir(), filepath.FromSlash(f.RelPath))
		dst := filepath.Join(snapDir, filepath.FromSlash(f.RelPath))
		if err := transfer.Copy(src, dst, transfer.Options{Progress: progressOut, Label: filepath.Base(f.RelPath)}); err != nil {
			return "", err
		}
		digest, err := integrity.FileDigest(dst)
		if err != nil {
			return "", err
		}
		if want, ok := strings.CutPrefix(f.Digest, "sha256:"); ok && !strings.EqualFold(want, digest) {
			return "", fmt.Errorf("%w: blob %s hashed %s after copy", errdefs.ErrIntegrityCheckFailed, f.Digest, digest)
		}
		fi, err := os.Stat(dst)
		if err != nil {
			return "", fmt.Errorf("%w: stat %s: %v", errdefs.ErrIOFailure, dst, err)
		}
		entries = append(entries, FileEntry{Path: f.RelPath, SizeBytes: fi.Size(), Digest: digest})
		if err := st.Record(f.RelPath, digest); err != nil {
			return "", err
		}
	}

	mf := Manifest{
		Type:      TypeOllamaModel,
		Name:      model.Name,
		CreatedAt: now.UTC(),
		RunID:     runID,
		SourceDir: client.ModelsDir(),
		Files:     entries,
	}
	if model.ID != "" {
		mf.Options = map[string]string{"id": model.ID}
	}
	if err := writeJSON(filepath.Join(snapDir, ManifestName), mf); err != nil {
		return "", err
	}
	if _, err := st.RecordFile(ManifestName); err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"name": model.Name, "snapshot": snapDir, "files": len(entries)}).Debug("backed up ollama model")
	return snapDir, nil
}

// BackupAll backs up the given artifacts one after another. A failure
// never aborts the remaining artifacts; every outcome lands in a Result.
func BackupAll(root string, arts []artifact.Artifact, progressOut io.Writer, rep report.Reporter) []Result {
	runID := uuid.NewString()
	now := time.Now()
	results := make([]Result, 0, len(arts))
	for _, art := range arts {
		snapDir, err := BackupFile(root, art, now, runID, progressOut)
		if err != nil {
			rep.Error("backing up %s: %v", art.Name, err)
			results = append(results, Result{Name: art.Name, Message: err.Error()})
			continue
		}
		rep.Success("backed up %s", art.Name)
		results = append(results, Result{
			Name:           art.Name,
			Succeeded:      true,
			Message:        "backed up to " + snapDir,
			DigestVerified: boolPtr(true),
			SnapshotDir:    snapDir,
		})
	}
	return results
}

// BackupAllOllama is the ollama counterpart of BackupAll.
func BackupAllOllama(root string, client ollama.Client, models []ollama.Model, progressOut io.Writer, rep report.Reporter) []Result {
	runID := uuid.NewString()
	now := time.Now()
	results := make([]Result, 0, len(models))
	for _, m := range models {
		snapDir, err := BackupOllama(root, client, m, now, runID, progressOut)
		if err != nil {
			rep.Error("backing up %s: %v", m.Name, err)
			results = append(results, Result{Name: m.Name, Message: err.Error()})
			continue
		}
		rep.Success("backed up %s", m.Name)
		results = append(results, Result{
			Name:           m.Name,
			Succeeded:      true,
			Message:        "backed up to " + snapDir,
			DigestVerified: boolPtr(true),
			SnapshotDir:    snapDir,
		})
	}
	return results
}

// newSnapshotDir creates a fresh directory named after the timestamp under
// parent. When a run lands in the same second as an earlier one the name
// gets a numeric suffix so records are never appended to an old snapshot.
func newSnapshotDir(parent string, now time.Time) (string, error) {
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", classifyDirError(parent, err)
	}
	ts := now.UTC().Format(TimestampLayout)
	name := ts
	for i := 2; ; i++ {
		dir := filepath.Join(parent, name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", classifyDirError(dir, err)
		}
		name = fmt.Sprintf("%s-%d", ts, i)
	}
}

func classifyDirError(dir string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: create %s: %v", errdefs.ErrPermissionDenied, dir, err)
	}
	return fmt.Errorf("%w: create %s: %v", errdefs.ErrIOFailure, dir, err)
}
