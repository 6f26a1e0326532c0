package ollama

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bakmodel/src/errdefs"
)

// Defaults ollama applies when a model name omits the registry, namespace,
// or tag (e.g. "llama3" is stored under
// manifests/registry.ollama.ai/library/llama3/latest).
const (
	DefaultRegistry  = "registry.ollama.ai"
	DefaultNamespace = "library"
	DefaultTag       = "latest"
)

// ModelFile is one on-disk file making up a model: its path relative to
// the models directory, its size, and the digest the manifest claims for
// it ("sha256:<hex>"; empty for the manifest itself).
type ModelFile struct {
	RelPath   string
	SizeBytes int64
	Digest    string
}

// manifestDoc is the subset of the ollama manifest schema we read.
type manifestDoc struct {
	Config manifestLayer   `json:"config"`
	Layers []manifestLayer `json:"layers"`
}

type manifestLayer struct {
	MediaType string `json:"mediaType"`
	Digest    string `json:"digest"`
	Size      int64  `json:"size"`
}

// ManifestRelPath maps a model name like "llama3:8b" to its manifest path
// under the models directory. Missing tags default to "latest"; names may
// carry an explicit namespace or registry prefix.
func ManifestRelPath(name string) string {
	base := name
	tag := DefaultTag
	if i := strings.LastIndex(name, ":"); i >= 0 {
		base, tag = name[:i], name[i+1:]
	}
	parts := strings.Split(base, "/")
	switch len(parts) {
	case 1:
		parts = []string{DefaultRegistry, DefaultNamespace, parts[0]}
	case 2:
		parts = []string{DefaultRegistry, parts[0], parts[1]}
	}
	rel := append([]string{"manifests"}, parts...)
	return filepath.Join(append(rel, tag)...)
}

// BlobRelPath maps a digest like "sha256:abc..." to its blob file path
// under the models directory.
func BlobRelPath(digest string) string {
	return filepath.Join("blobs", strings.Replace(digest, ":", "-", 1))
}

// ResolveFiles maps a model to the set of files a backup must copy: the
// manifest plus every blob it references. Every referenced blob must
// exist; a missing one fails naming its digest.
func ResolveFiles(modelsDir, name string) ([]ModelFile, error) {
	mfRel := ManifestRelPath(name)
	mfPath := filepath.Join(modelsDir, mfRel)
	data, err := os.ReadFile(mfPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no manifest for model %s under %s", errdefs.ErrNoModels, name, modelsDir)
		}
		return nil, fmt.Errorf("%w: read manifest %s: %v", errdefs.ErrIOFailure, mfPath, err)
	}
	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse ollama manifest %s: %w", mfPath, err)
	}

	files := []ModelFile{{RelPath: mfRel, SizeBytes: int64(len(data))}}
	seen := map[string]bool{}
	for _, layer := range append([]manifestLayer{doc.Config}, doc.Layers...) {
		if layer.Digest == "" || seen[layer.Digest] {
			continue
		}
		seen[layer.Digest] = true
		rel := BlobRelPath(layer.Digest)
		fi, err := os.Stat(filepath.Join(modelsDir, rel))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: blob %s of model %s", errdefs.ErrSourceMissing, layer.Digest, name)
			}
			return nil, fmt.Errorf("%w: stat blob %s: %v", errdefs.ErrIOFailure, rel, err)
		}
		files = append(files, ModelFile{RelPath: rel, SizeBytes: fi.Size(), Digest: layer.Digest})
	}
	return files, nil
}
