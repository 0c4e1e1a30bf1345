// Package version holds build metadata injected at link time.
package version

var (
	// Version is the semantic version, overridden via -ldflags.
	Version = "dev"
	// Commit is the git commit hash of the build.
	Commit = ""
	// BuildDate is the UTC build timestamp.
	BuildDate = ""
)
