package cli_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bakmodel/src/backup"
)

func TestStatsCmd_Table(t *testing.T) {
	root := isolate(t)
	srcDir := t.TempDir()
	alpha := filepath.Join(srcDir, "alpha.bin")
	writeFile(t, alpha, []byte("aaaa"))
	seedSnapshot(t, root, alpha, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedSnapshot(t, root, alpha, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC))

	out, _, err := runCLI(t, "", "stats", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, "MODELS") || !strings.Contains(out, "SNAPSHOTS") {
		t.Fatalf("header missing; got:\n%s", out)
	}
}

func TestStatsCmd_JSON(t *testing.T) {
	root := isolate(t)
	srcDir := t.TempDir()
	alpha := filepath.Join(srcDir, "alpha.bin")
	beta := filepath.Join(srcDir, "beta.bin")
	writeFile(t, alpha, []byte("aaaa"))
	writeFile(t, beta, []byte("bbbbbb"))
	seedSnapshot(t, root, alpha, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedSnapshot(t, root, alpha, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC))
	seedSnapshot(t, root, beta, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	out, _, err := runCLI(t, "", "stats", "-o", "json", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	var s backup.Stats
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode: %v; output:\n%s", err, out)
	}
	if s.Models != 2 || s.Snapshots != 3 || s.Files != 3 {
		t.Fatalf("stats = %+v, want 2 models, 3 snapshots, 3 files", s)
	}
	if s.TotalBytes != 14 {
		t.Fatalf("total bytes = %d, want 14", s.TotalBytes)
	}
}
