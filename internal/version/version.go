// Package version holds build information set via ldflags.
package version

// Build-time variables.
//
//	go build -ldflags "-X github.com/udesa-vision/i308-utils/internal/version.Version=v0.1.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
