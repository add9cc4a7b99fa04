// Package version reports the CLI build.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X"; left unset they are filled from the embedded
// build info where available.
var (
	Version   = "dev"
	BuildDate = ""
	GitCommit = ""
)

// Info holds version information
type Info struct {
	Version   string
	BuildDate string
	GitCommit string
	Modified  bool
	GoVersion string
	Platform  string
}

// Get returns version information
func Get() Info {
	info := Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fill(bi)
	}
	return info
}

func (i *Info) fill(bi *debug.BuildInfo) {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = s.Value
			}
		case "vcs.time":
			if i.BuildDate == "" {
				i.BuildDate = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// String returns a formatted version string
func (i Info) String() string {
	return fmt.Sprintf("sqlcomposer %s (%s %s)", i.Version, i.Platform, i.GoVersion)
}

// FullString returns a detailed version string
func (i Info) FullString() string {
	commit := orUnknown(i.GitCommit)
	if i.Modified {
		commit += " (modified)"
	}
	return fmt.Sprintf(`sqlcomposer %s
  Build Date: %s
  Git Commit: %s
  Platform:   %s
  Go Version: %s`, i.Version, orUnknown(i.BuildDate), commit, i.Platform, i.GoVersion)
}
