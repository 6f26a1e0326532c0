package target_test

import (
	"errors"
	"strings"
	"testing"

	"bakmodel/src/errdefs"
	"bakmodel/src/target"
)

func TestParse_Dir_OK(t *testing.T) {
	got, err := target.Parse("dir:/mnt/nas/ModelBakup")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.Scheme != "dir" {
		t.Fatalf("scheme = %q, want dir", got.Scheme)
	}
	if got.DirPath == "" || !strings.HasPrefix(got.DirPath, "/mnt/") {
		t.Fatalf("DirPath = %q, want absolute under /mnt", got.DirPath)
	}
}

func TestParse_Dir_Root_OK(t *testing.T) {
	got, err := target.Parse("dir:/")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.DirPath != "/" {
		t.Fatalf("DirPath = %q, want /", got.DirPath)
	}
}

func TestParse_Dir_CleansPath(t *testing.T) {
	got, err := target.Parse("dir:/var//backups/./models")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.DirPath != "/var/backups/models" {
		t.Fatalf("DirPath = %q, want cleaned path", got.DirPath)
	}
}

func TestParse_Invalid_Empty(t *testing.T) {
	_, err := target.Parse("")
	if !errors.Is(err, errdefs.ErrInvalidSelection) {
		t.Fatalf("err = %v, want ErrInvalidSelection", err)
	}
}

func TestParse_Invalid_NoScheme(t *testing.T) {
	_, err := target.Parse("/var/backups")
	if !errors.Is(err, errdefs.ErrInvalidSelection) {
		t.Fatalf("err = %v, want ErrInvalidSelection", err)
	}
}

func TestParse_Invalid_UnsupportedScheme(t *testing.T) {
	_, err := target.Parse("s3:/repo")
	if !errors.Is(err, errdefs.ErrInvalidSelection) {
		t.Fatalf("err = %v, want ErrInvalidSelection", err)
	}
}

func TestParse_Dir_Relative_Invalid(t *testing.T) {
	_, err := target.Parse("dir:relative/path")
	if !errors.Is(err, errdefs.ErrInvalidSelection) {
		t.Fatalf("err = %v, want ErrInvalidSelection", err)
	}
}

func TestString_Canonical(t *testing.T) {
	got, err := target.Parse("dir:/tmp//x")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.String() != "dir:/tmp/x" {
		t.Fatalf("String() = %q, want dir:/tmp/x", got.String())
	}
}
