// Package version holds build metadata injected at link time.
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
