// Package version carries build metadata injected via ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/plenar/internal/version.Version=v1.2.0"
package version

import "fmt"

// Version contains the application version information.
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders version, commit and build time for --version output.
func String() string {
	return fmt.Sprintf("plenar %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
