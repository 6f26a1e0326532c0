package cli

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bakmodel/src/ollama"
)

type ollamaDetectorFunc func(context.Context) (ollama.BinaryInfo, error)

var detectOllamaFn ollamaDetectorFunc = ollama.Detect

type ollamaClientFunc func(info ollama.BinaryInfo, modelsDirOverride string) ollama.Client

var newOllamaClientFn ollamaClientFunc = func(info ollama.BinaryInfo, modelsDirOverride string) ollama.Client {
	return ollama.NewBinClient(info, modelsDirOverride)
}

// connectOllama detects the ollama binary and builds a client around it.
func connectOllama(cmd *cobra.Command, modelsDirOverride string) (ollama.Client, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	info, err := detectOllamaFn(ctx)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"path": info.Path, "version": info.Version}).Debug("ollama binary detected")
	return newOllamaClientFn(info, modelsDirOverride), nil
}

// SetOllamaDetectorForTest allows tests to stub ollama binary detection.
// The returned function restores the previous detector.
func SetOllamaDetectorForTest(fn ollamaDetectorFunc) func() {
	prev := detectOllamaFn
	detectOllamaFn = fn
	return func() {
		detectOllamaFn = prev
	}
}

// SetOllamaClientForTest allows tests to stub the ollama client
// constructor. The returned function restores the previous constructor.
func SetOllamaClientForTest(fn ollamaClientFunc) func() {
	prev := newOllamaClientFn
	newOllamaClientFn = fn
	return func() {
		newOllamaClientFn = prev
	}
}
