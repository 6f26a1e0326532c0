package ollama_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bakmodel/src/errdefs"
	"bakmodel/src/ollama"
	"bakmodel/src/ollama/ollamatest"
)

func TestManifestRelPath(t *testing.T) {
	cases := []struct{ name, want string }{
		{"llama3:8b", "manifests/registry.ollama.ai/library/llama3/8b"},
		{"llama3", "manifests/registry.ollama.ai/library/llama3/latest"},
		{"myspace/mymodel:v1", "manifests/registry.ollama.ai/myspace/mymodel/v1"},
		{"hub.example.com/team/model:2", "manifests/hub.example.com/team/model/2"},
	}
	for _, c := range cases {
		if got := ollama.ManifestRelPath(c.name); got != filepath.FromSlash(c.want) {
			t.Fatalf("ManifestRelPath(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestBlobRelPath(t *testing.T) {
	got := ollama.BlobRelPath("sha256:abcdef")
	if got != filepath.FromSlash("blobs/sha256-abcdef") {
		t.Fatalf("BlobRelPath = %q", got)
	}
}

func TestResolveFiles(t *testing.T) {
	modelsDir := t.TempDir()
	digests := ollamatest.SeedModel(t, modelsDir, "llama3:8b",
		[]byte(`{"arch":"llama"}`),
		[]byte("layer-one-weights"),
		[]byte("layer-two-weights"),
	)

	files, err := ollama.ResolveFiles(modelsDir, "llama3:8b")
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	// Manifest plus three blobs.
	if len(files) != 4 {
		t.Fatalf("got %d files, want 4: %+v", len(files), files)
	}
	if !strings.HasPrefix(files[0].RelPath, "manifests"+string(filepath.Separator)) {
		t.Fatalf("first file should be the manifest, got %s", files[0].RelPath)
	}
	if files[0].Digest != "" {
		t.Fatalf("manifest entry should carry no digest")
	}
	for i, d := range digests {
		f := files[i+1]
		if f.Digest != d {
			t.Fatalf("file %d digest = %s, want %s", i+1, f.Digest, d)
		}
		if f.RelPath != ollama.BlobRelPath(d) {
			t.Fatalf("file %d rel path = %s", i+1, f.RelPath)
		}
		if f.SizeBytes == 0 {
			t.Fatalf("file %d size not populated", i+1)
		}
	}
}

func TestResolveFiles_MissingManifest(t *testing.T) {
	_, err := ollama.ResolveFiles(t.TempDir(), "ghost:latest")
	if !errors.Is(err, errdefs.ErrNoModels) {
		t.Fatalf("want ErrNoModels, got %v", err)
	}
}

func TestResolveFiles_MissingBlob(t *testing.T) {
	modelsDir := t.TempDir()
	digests := ollamatest.SeedModel(t, modelsDir, "llama3:8b",
		[]byte("config"), []byte("weights"))
	// Remove one referenced blob.
	if err := os.Remove(filepath.Join(modelsDir, ollama.BlobRelPath(digests[1]))); err != nil {
		t.Fatal(err)
	}

	_, err := ollama.ResolveFiles(modelsDir, "llama3:8b")
	if !errors.Is(err, errdefs.ErrSourceMissing) {
		t.Fatalf("want ErrSourceMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), digests[1]) {
		t.Fatalf("error should name the missing digest: %v", err)
	}
}

func TestParseList(t *testing.T) {
	out := "NAME            \tID          \tSIZE  \tMODIFIED\n" +
		"mistral:7b      \t61e88e884507\t4.1 GB\t5 weeks ago\n" +
		"llama3:8b       \t365c0bd3c000\t4.7 GB\t2 weeks ago\n" +
		"tiny:latest     \tabc123def456\t63 MB \t2 days ago\n" +
		"\n"
	models := ollama.ParseList(out)
	if len(models) != 3 {
		t.Fatalf("got %d models, want 3: %+v", len(models), models)
	}
	// Sorted by name.
	if models[0].Name != "llama3:8b" || models[2].Name != "tiny:latest" {
		t.Fatalf("unexpected order: %+v", models)
	}
	if models[0].ID != "365c0bd3c000" {
		t.Fatalf("id = %s", models[0].ID)
	}
	if models[0].SizeBytes != int64(4.7*1e9) {
		t.Fatalf("size = %d", models[0].SizeBytes)
	}
	if models[2].SizeBytes != 63_000_000 {
		t.Fatalf("tiny size = %d", models[2].SizeBytes)
	}
}

func TestResolveModelsDir_EnvWins(t *testing.T) {
	t.Setenv("OLLAMA_MODELS", "/custom/models")
	if got := ollama.ResolveModelsDir("/override"); got != "/custom/models" {
		t.Fatalf("env should win, got %s", got)
	}
}

func TestResolveModelsDir_OverrideThenHome(t *testing.T) {
	t.Setenv("OLLAMA_MODELS", "")
	if got := ollama.ResolveModelsDir("/override"); got != "/override" {
		t.Fatalf("override should apply, got %s", got)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := filepath.Join(home, ".ollama", "models")
	if got := ollama.ResolveModelsDir(""); got != want {
		t.Fatalf("default = %s, want %s", got, want)
	}
}
