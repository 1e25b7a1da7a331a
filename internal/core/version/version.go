// Package version reports what build is running
package version

import "runtime/debug"

// set with -ldflags "-X villagevisits/internal/core/version.version=v1.2.0
// -X villagevisits/internal/core/version.commit=... -X villagevisits/internal/core/version.date=..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

type BuildInfo struct {
	Service string `json:"service" example:"villagevisits-api"`
	Version string `json:"version" example:"v1.2.0"`
	Commit  string `json:"commit"  example:"3f9c2ab"`
	Date    string `json:"date"    example:"2026-03-03T13:00:00Z"`
}

// Info falls back to the vcs stamps the go tool embeds when ldflags left
// commit or date empty
func Info() BuildInfo {
	out := BuildInfo{Service: "villagevisits-api", Version: version, Commit: commit, Date: date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && out.Commit == "":
				out.Commit = s.Value
			case s.Key == "vcs.time" && out.Date == "":
				out.Date = s.Value
			}
		}
	}
	if out.Commit == "" {
		out.Commit = "none"
	}
	if out.Date == "" {
		out.Date = "unknown"
	}
	return out
}
