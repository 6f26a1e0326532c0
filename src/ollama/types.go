// Package ollama talks to a locally installed ollama for model discovery.
// The Client interface is deliberately narrow so the rest of the app can
// run against an in-memory fake.
package ollama

import "context"

// Model is one locally installed ollama model.
type Model struct {
	Name      string // e.g. "llama3:8b"
	ID        string // short digest shown by `ollama list`
	SizeBytes int64
}

// Client is a narrow interface over the local ollama installation.
type Client interface {
	// List returns the installed models, sorted by name.
	List(ctx context.Context) ([]Model, error)
	// ModelsDir returns the on-disk models directory holding the
	// manifests/ and blobs/ trees.
	ModelsDir() string
}
