// Package ollamatest seeds ollama-style on-disk model layouts for tests.
package ollamatest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"bakmodel/src/ollama"
)

// SeedModel writes an ollama-style manifest and blob set under modelsDir
// for the named model. The first blob plays the config role, the rest are
// layers. Returns the "sha256:<hex>" digests in argument order.
func SeedModel(t *testing.T, modelsDir, name string, blobs ...[]byte) []string {
	t.Helper()
	if len(blobs) == 0 {
		t.Fatalf("SeedModel needs at least one blob")
	}
	type layer struct {
		MediaType string `json:"mediaType"`
		Digest    string `json:"digest"`
		Size      int64  `json:"size"`
	}
	var digests []string
	mk := func(data []byte, mediaType string) layer {
		sum := sha256.Sum256(data)
		hexSum := hex.EncodeToString(sum[:])
		digests = append(digests, "sha256:"+hexSum)
		p := filepath.Join(modelsDir, "blobs", "sha256-"+hexSum)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return layer{MediaType: mediaType, Digest: "sha256:" + hexSum, Size: int64(len(data))}
	}

	cfg := mk(blobs[0], "application/vnd.docker.container.image.v1+json")
	layers := []layer{}
	for _, b := range blobs[1:] {
		layers = append(layers, mk(b, "application/vnd.ollama.image.model"))
	}
	doc := map[string]any{"schemaVersion": 2, "config": cfg, "layers": layers}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	mfPath := filepath.Join(modelsDir, ollama.ManifestRelPath(name))
	if err := os.MkdirAll(filepath.Dir(mfPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mfPath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return digests
}
