// Package version exposes the build-stamped CLI version.
package version

// version is overridden at build time via -ldflags.
var version = "dev"

// Value returns the CLI version string.
func Value() string {
	return version
}
