// Package integrity computes and persists content digests for backed-up
// files. Digests are SHA-256 in lowercase hex. Records live in a
// checksums.txt sidecar inside each snapshot directory, one
// "<digest>  <relative path>" line per file (sha256sum format).
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"bakmodel/src/errdefs"
)

// DigestHexLen is the length of a SHA-256 digest in hex form.
const DigestHexLen = 64

// FileDigest streams the file through SHA-256 and returns the lowercase
// hex digest. The file is read in bounded chunks, never loaded whole.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", errdefs.ErrIOFailure, path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: read %s: %v", errdefs.ErrIOFailure, path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ValidDigest reports whether s looks like a SHA-256 hex digest.
func ValidDigest(s string) bool {
	if len(s) != DigestHexLen {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
