// Package version records build metadata for the bakmodel binary.
package version

// Version is the release version. Overridden at build time via
//
//	go build -ldflags "-X bakmodel/src/version.Version=1.2.3"
var Version = "0.5.0"

// Commit is the VCS revision the binary was built from, when known.
var Commit = ""

// String returns the version, with the commit suffix when available.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
