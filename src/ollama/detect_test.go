package ollama_test

import (
	"context"
	"errors"
	"testing"

	"bakmodel/src/ollama"
)

func TestExtractVersion(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   string // empty means no banner should match
	}{
		{
			name:   "plain banner",
			output: "ollama version is 0.3.6\n",
			want:   "0.3.6",
		},
		{
			name: "banner after warning",
			output: "Warning: could not connect to a running Ollama instance\n" +
				"Warning: client version is 0.5.7\n" +
				"ollama version is 0.5.7\n",
			want: "0.5.7",
		},
		{
			name:   "prerelease suffix",
			output: "ollama version is 0.4.0-rc1\n",
			want:   "0.4.0-rc1",
		},
		{
			name:   "no version present",
			output: "command not recognized\n",
			want:   "",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ollama.ExtractVersion(c.output)
			if err != nil {
				t.Fatalf("ExtractVersion: %v", err)
			}
			if got != c.want {
				t.Fatalf("version = %q, want %q", got, c.want)
			}
		})
	}
}

func TestFakeClient_ListSortsAndErrs(t *testing.T) {
	f := ollama.NewFake("/tmp/models",
		ollama.Model{Name: "mistral:7b"},
		ollama.Model{Name: "llama3:8b"},
	)
	models, err := f.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if models[0].Name != "llama3:8b" {
		t.Fatalf("expected sorted models, got %+v", models)
	}

	boom := errors.New("boom")
	f.ListErr = boom
	if _, err := f.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want injected error, got %v", err)
	}
}
