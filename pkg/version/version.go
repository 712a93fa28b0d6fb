// Package version exposes the build version of the fbxbatch binary.
package version

// Version is overridden at build time via -ldflags.
//
//nolint:gochecknoglobals // Set by the linker, read-only afterwards
var Version = "dev"

// GetVersion returns the current build version string.
func GetVersion() string {
	return Version
}
