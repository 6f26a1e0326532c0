package backup

import (
	"testing"
	"time"
)

func TestCollect(t *testing.T) {
	src := t.TempDir()
	root := t.TempDir()
	alpha := seedArtifact(t, src, "alpha.bin", []byte("aaaa"))
	beta := seedArtifact(t, src, "beta.bin", []byte("bbbbbb"))

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if _, err := BackupFile(root, alpha, now, "run-1", nil); err != nil {
		t.Fatalf("backup alpha: %v", err)
	}
	if _, err := BackupFile(root, alpha, now.Add(time.Hour), "run-2", nil); err != nil {
		t.Fatalf("backup alpha again: %v", err)
	}
	if _, err := BackupFile(root, beta, now, "run-3", nil); err != nil {
		t.Fatalf("backup beta: %v", err)
	}

	s, err := Collect(root)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if s.Models != 2 {
		t.Fatalf("models = %d, want 2", s.Models)
	}
	if s.Snapshots != 3 {
		t.Fatalf("snapshots = %d, want 3", s.Snapshots)
	}
	if s.Files != 3 {
		t.Fatalf("files = %d, want 3", s.Files)
	}
	if s.TotalBytes != 4+4+6 {
		t.Fatalf("totalBytes = %d, want 14", s.TotalBytes)
	}
}

func TestCollect_EmptyStore(t *testing.T) {
	s, err := Collect(t.TempDir())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if s != (Stats{}) {
		t.Fatalf("stats = %+v, want zero", s)
	}
}
