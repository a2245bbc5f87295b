// Package buildinfo reports which build of wiresketch is running.
//
// Release builds stamp the values through the linker:
//
//	go build -ldflags "-X github.com/wiresketch/wiresketch/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/wiresketch/wiresketch/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/wiresketch/wiresketch/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds made with "go install" carry no ldflags; for those, [Get] falls back
// to the module version and VCS settings recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Linker-stamped values.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build description.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the stamped values, filling unstamped ones from the binary's
// embedded build information when present.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return info.fill(bi)
}

func (i Info) fill(bi *debug.BuildInfo) Info {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && i.Commit == "none":
			i.Commit = s.Value
		case s.Key == "vcs.time" && i.Date == "unknown":
			i.Date = s.Value
		}
	}
	return i
}

func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template is the cobra version template for this build.
func Template() string {
	i := Get()
	return "{{.Name}} " + i.Version + "\ncommit: " + i.Commit + "\nbuilt: " + i.Date + "\n"
}
