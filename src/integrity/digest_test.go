package integrity_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bakmodel/src/errdefs"
	"bakmodel/src/integrity"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileDigest_KnownVector(t *testing.T) {
	p := filepath.Join(t.TempDir(), "abc.bin")
	writeFile(t, p, "abc")
	got, err := integrity.FileDigest(p)
	if err != nil {
		t.Fatalf("FileDigest: %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("digest = %s, want %s", got, want)
	}
}

func TestFileDigest_Deterministic(t *testing.T) {
	p := filepath.Join(t.TempDir(), "model.bin")
	writeFile(t, p, "model weights go here")
	a, err := integrity.FileDigest(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := integrity.FileDigest(p)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("digest not deterministic: %s vs %s", a, b)
	}
}

func TestFileDigest_DiffersForDifferentContent(t *testing.T) {
	dir := t.TempDir()
	pa := filepath.Join(dir, "a.bin")
	pb := filepath.Join(dir, "b.bin")
	writeFile(t, pa, "content A")
	writeFile(t, pb, "content B")
	a, err := integrity.FileDigest(pa)
	if err != nil {
		t.Fatal(err)
	}
	b, err := integrity.FileDigest(pb)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("distinct content produced identical digest %s", a)
	}
}

func TestFileDigest_MissingFile(t *testing.T) {
	_, err := integrity.FileDigest(filepath.Join(t.TempDir(), "nope.bin"))
	if !errors.Is(err, errdefs.ErrIOFailure) {
		t.Fatalf("want ErrIOFailure, got %v", err)
	}
}

func TestValidDigest(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", true},
		{"BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD", true},
		{"ba7816", false},
		{"zz7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", false},
		{"", false},
	}
	for _, c := range cases {
		if got := integrity.ValidDigest(c.in); got != c.want {
			t.Fatalf("ValidDigest(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
