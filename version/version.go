package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/Masterminds/semver"
)

// Set the release at build time with e.g.
// go build -ldflags "-X github.com/notetrack/notetrack/version.Version=$(git describe --tags --dirty)"

var Version string

var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	modified := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		revision += "-dirty"
	}
	return revision
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "devel"
}()

// Semver parses Version as a semantic version; a leading v is allowed.
// Returns an error for builds without a release version.
func Semver() (*semver.Version, error) {
	if Version == "" {
		return nil, fmt.Errorf("no release version, build %s", VersionOrHash)
	}
	return semver.NewVersion(Version)
}

// Long describes the build on one line, for the version command.
func Long() string {
	return fmt.Sprintf("notetrack %s (%s, %s/%s)", VersionOrHash, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
