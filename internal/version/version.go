// Package version carries build metadata injected with -ldflags, e.g.
//
//	-X git.home.luguber.info/inful/plantuml-generator/internal/version.Version=v0.4.0
package version

import "fmt"

var (
	Version   = "unknown"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String is the line printed by --version.
func String() string {
	return fmt.Sprintf("plantuml-generator %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
