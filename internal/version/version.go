// Package version holds build metadata injected at link time.
package version

// Version is the docroles release. Set it with
// go build -ldflags "-X git.home.luguber.info/inful/docroles/internal/version.Version=v0.3.0".
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
