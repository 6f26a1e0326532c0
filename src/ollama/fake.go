package ollama

import (
	"context"
	"sort"
)

// FakeClient is an in-memory Client implementation for unit tests.
type FakeClient struct {
	Models  []Model
	Dir     string
	ListErr error
}

// NewFake builds a FakeClient rooted at dir.
func NewFake(dir string, models ...Model) *FakeClient {
	return &FakeClient{Models: models, Dir: dir}
}

func (f *FakeClient) List(ctx context.Context) ([]Model, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]Model, len(f.Models))
	copy(out, f.Models)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeClient) ModelsDir() string {
	return f.Dir
}
