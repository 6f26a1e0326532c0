package ollama

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"bakmodel/src/errdefs"
)

// BinaryInfo describes a detected ollama CLI binary.
type BinaryInfo struct {
	Path    string
	Version string
}

var versionRegexp = regexp.MustCompile(`ollama\s+version\s+is\s+([0-9]+\.[0-9]+\.[0-9]+(?:-[A-Za-z0-9.]+)?)`)

// Detect locates the ollama binary on PATH, queries its version, and
// returns the gathered metadata. The context is used to bound the version
// subprocess.
func Detect(ctx context.Context) (BinaryInfo, error) {
	exe, err := exec.LookPath("ollama")
	if err != nil {
		return BinaryInfo{}, fmt.Errorf("%w: binary not found on PATH (install from https://ollama.com/download)", errdefs.ErrOllamaUnavailable)
	}
	ver, err := queryVersion(ctx, exe)
	if err != nil {
		return BinaryInfo{}, err
	}
	return BinaryInfo{Path: exe, Version: ver}, nil
}

// queryVersion executes `ollama --version` and parses the version from its
// output. The banner can land on stdout or stderr depending on whether a
// server is running, so both streams are scanned.
func queryVersion(ctx context.Context, exe string) (string, error) {
	// Guard against commands that hang by applying a short timeout.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, exe, "--version")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("%w: capture stdout: %v", errdefs.ErrOllamaUnavailable, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("%w: capture stderr: %v", errdefs.ErrOllamaUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: start version command: %v", errdefs.ErrOllamaUnavailable, err)
	}

	version, parseErr := parseVersion(stdout)
	if version == "" && parseErr == nil {
		version, parseErr = parseVersion(stderr)
	}
	waitErr := cmd.Wait()
	if parseErr != nil {
		return "", parseErr
	}
	if version == "" {
		return "", fmt.Errorf("%w: could not parse version output", errdefs.ErrOllamaUnavailable)
	}
	if waitErr != nil {
		return "", fmt.Errorf("%w: version command failed: %v", errdefs.ErrOllamaUnavailable, waitErr)
	}
	return version, nil
}

func parseVersion(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if matches := versionRegexp.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return matches[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: read version output: %v", errdefs.ErrOllamaUnavailable, err)
	}
	return "", nil
}

// ExtractVersion derives the ollama version string from the supplied
// command output. It is primarily exposed for testing.
func ExtractVersion(output string) (string, error) {
	return parseVersion(strings.NewReader(output))
}
