package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bakmodel/src/artifact"
	"bakmodel/src/backup"
	"bakmodel/src/cli"
)

// isolate points config resolution and the default backup root away from
// the developer's real environment, returning the backup root.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BAKMODEL_BACKUP_ROOT", root)
	t.Setenv("BAKMODEL_SOURCE_DIR", "")
	t.Setenv("BAKMODEL_LOG_FILE", "")
	return root
}

func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	_, err = cmd.ExecuteC()
	return out.String(), errBuf.String(), err
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// seedSnapshot backs up srcPath into root at the given time and returns
// the snapshot directory.
func seedSnapshot(t *testing.T, root, srcPath string, at time.Time) string {
	t.Helper()
	fi, err := os.Stat(srcPath)
	if err != nil {
		t.Fatalf("stat %s: %v", srcPath, err)
	}
	art := artifact.Artifact{Name: filepath.Base(srcPath), SourcePath: srcPath, SizeBytes: fi.Size()}
	snapDir, err := backup.BackupFile(root, art, at, "seed", nil)
	if err != nil {
		t.Fatalf("seed backup: %v", err)
	}
	return snapDir
}
