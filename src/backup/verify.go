package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bakmodel/src/artifact"
	"bakmodel/src/backend"
	"bakmodel/src/backend/directory"
	"bakmodel/src/errdefs"
	"bakmodel/src/integrity"
)

// Verification statuses.
const (
	StatusOK       = "ok"
	StatusMismatch = "mismatch"
	StatusNoData   = "no-data"
	StatusCorrupt  = "corrupt"
	StatusError    = "error"
)

// VerifyResult describes the integrity state of one snapshot.
type VerifyResult struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type,omitempty"`
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Path      string `json:"path"`
}

// VerifySnapshot re-hashes every recorded file of one snapshot and
// compares against the checksum sidecar. The first divergence decides the
// status; a snapshot with no sidecar reports no-data rather than passing.
func VerifySnapshot(snap backend.Snapshot) VerifyResult {
	res := VerifyResult{Name: snap.Name, Timestamp: snap.Timestamp, Path: snap.Path}
	if mf, err := LoadManifest(snap.Path); err == nil {
		res.Type = mf.Type
	}

	entries, err := integrity.NewStore(snap.Path).Entries()
	switch {
	case errors.Is(err, errdefs.ErrNoRecord):
		res.Status = StatusNoData
		return res
	case errors.Is(err, errdefs.ErrRecordCorrupt):
		res.Status = StatusCorrupt
		res.Detail = err.Error()
		return res
	case err != nil:
		res.Status = StatusError
		res.Detail = err.Error()
		return res
	}

	for _, e := range entries {
		p := filepath.Join(snap.Path, filepath.FromSlash(e.RelPath))
		if _, err := os.Stat(p); err != nil {
			res.Status = StatusMismatch
			res.Detail = fmt.Sprintf("%s: missing", e.RelPath)
			return res
		}
		got, err := integrity.FileDigest(p)
		if err != nil {
			res.Status = StatusError
			res.Detail = fmt.Sprintf("%s: %v", e.RelPath, err)
			return res
		}
		if got != e.Digest {
			res.Status = StatusMismatch
			res.Detail = fmt.Sprintf("%s: recorded %s, hashed %s", e.RelPath, e.Digest, got)
			return res
		}
	}
	res.Status = StatusOK
	return res
}

// VerifyAll verifies every snapshot under root, or only one model's when
// name is non-empty. The name may be given in display form ("llama3:8b");
// it is matched against the snapshot directory. Results come back in
// store order.
func VerifyAll(root, name string) ([]VerifyResult, error) {
	be, err := directory.New(root)
	if err != nil {
		return nil, err
	}
	var snaps []backend.Snapshot
	if name == "" {
		snaps, err = be.List()
	} else {
		snaps, err = be.ListModel(artifact.SafeName(name))
	}
	if err != nil {
		return nil, err
	}
	out := make([]VerifyResult, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, VerifySnapshot(s))
	}
	return out, nil
}
