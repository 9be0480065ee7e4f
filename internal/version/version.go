package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the version line printed by `jots version`. Binaries built
// with `go install` carry no ldflags, so the module version is used instead.
func Info() string {
	return fmt.Sprintf("%s (commit %s, built %s)", resolved(), Commit, Date)
}

func resolved() string {
	if Version != "dev" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Version
	}
	return info.Main.Version
}
