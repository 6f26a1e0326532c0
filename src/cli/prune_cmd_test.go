package cli_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bakmodel/src/errdefs"
)

func seedThreeSnapshots(t *testing.T, root, srcPath string) {
	t.Helper()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedSnapshot(t, root, srcPath, base.Add(time.Duration(i)*time.Hour))
	}
}

func TestPruneCmd_KeepsNewest(t *testing.T) {
	root := isolate(t)
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "model.gguf")
	writeFile(t, srcPath, []byte("payload"))
	seedThreeSnapshots(t, root, srcPath)

	out, _, err := runCLI(t, "", "prune", "--keep", "1", "--yes", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if !strings.Contains(out, "delete") || !strings.Contains(out, "pruned 2 snapshot(s)") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	modelDir := filepath.Join(root, "models", "model.gguf")
	entries, err := os.ReadDir(modelDir)
	if err != nil {
		t.Fatalf("read model dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d snapshots after prune, want 1", len(entries))
	}
	if entries[0].Name() != "20240301T120000Z" {
		t.Fatalf("kept %s, want the newest snapshot", entries[0].Name())
	}
}

func TestPruneCmd_DryRunDeletesNothing(t *testing.T) {
	root := isolate(t)
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "model.gguf")
	writeFile(t, srcPath, []byte("payload"))
	seedThreeSnapshots(t, root, srcPath)

	out, _, err := runCLI(t, "", "prune", "--keep", "1", "--dry-run", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if !strings.Contains(out, "delete") {
		t.Fatalf("expected a deletion preview; got:\n%s", out)
	}
	entries, err := os.ReadDir(filepath.Join(root, "models", "model.gguf"))
	if err != nil {
		t.Fatalf("read model dir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("dry run removed snapshots: %d left, want 3", len(entries))
	}
}

func TestPruneCmd_DeclinedChangesNothing(t *testing.T) {
	root := isolate(t)
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "model.gguf")
	writeFile(t, srcPath, []byte("payload"))
	seedThreeSnapshots(t, root, srcPath)

	_, _, err := runCLI(t, "n\n", "prune", "--keep", "1", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("declined prune errored: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(root, "models", "model.gguf"))
	if err != nil {
		t.Fatalf("read model dir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("declined prune removed snapshots: %d left, want 3", len(entries))
	}
}

func TestPruneCmd_UnderKeepIsNoop(t *testing.T) {
	root := isolate(t)
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "model.gguf")
	writeFile(t, srcPath, []byte("payload"))
	seedSnapshot(t, root, srcPath, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	out, _, err := runCLI(t, "", "prune", "--keep", "3", "--yes", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if strings.Contains(out, "delete\n") {
		t.Fatalf("nothing should be scheduled for deletion; got:\n%s", out)
	}
}

func TestPruneCmd_FilterByName(t *testing.T) {
	root := isolate(t)
	srcDir := t.TempDir()
	alpha := filepath.Join(srcDir, "alpha.bin")
	beta := filepath.Join(srcDir, "beta.bin")
	writeFile(t, alpha, []byte("aaaa"))
	writeFile(t, beta, []byte("bbbb"))
	seedThreeSnapshots(t, root, alpha)
	seedThreeSnapshots(t, root, beta)

	_, _, err := runCLI(t, "", "prune", "alpha.bin", "--keep", "1", "--yes", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	alphaLeft, _ := os.ReadDir(filepath.Join(root, "models", "alpha.bin"))
	betaLeft, _ := os.ReadDir(filepath.Join(root, "models", "beta.bin"))
	if len(alphaLeft) != 1 {
		t.Fatalf("alpha.bin has %d snapshots, want 1", len(alphaLeft))
	}
	if len(betaLeft) != 3 {
		t.Fatalf("beta.bin has %d snapshots, want 3 (untouched)", len(betaLeft))
	}
}

func TestPruneCmd_RejectsNonPositiveKeep(t *testing.T) {
	root := isolate(t)

	_, _, err := runCLI(t, "", "prune", "--keep", "0", "--target", "dir:"+root)
	if !errors.Is(err, errdefs.ErrInvalidSelection) {
		t.Fatalf("err = %v, want ErrInvalidSelection", err)
	}
}
