// Package version carries build metadata, injected at link time via
// -ldflags "-X github.com/streetscape-data/panosim/internal/version.Version=...".
package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String renders the version for startup logs.
func String() string {
	return Version + " (" + GitSHA + ", " + BuildTime + ")"
}
