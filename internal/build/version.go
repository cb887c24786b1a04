// Package build carries the version stamp of the kettle-changelog binary.
// Values are injected with -ldflags "-X github.com/kettle-rb/kettle-changelog/internal/build.Version=..."
package build

import "runtime"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info is a snapshot of the build stamp and the runtime it runs on.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// IsDevBuild reports whether the binary was built without a release version.
func (i Info) IsDevBuild() bool {
	return i.Version == "dev"
}

// ShortCommit returns the first eight characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}
