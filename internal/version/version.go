// Package version holds build-time version information.
package version

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)
