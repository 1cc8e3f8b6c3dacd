// Package version reports how the binary was built.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X debt-payoff/version.Version=...".
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	Revision  string `json:"revision,omitempty"`
	Modified  bool   `json:"modified"`
}

func Get() Info {
	info := Info{Version: Version, BuildTime: BuildTime}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = buildInfo.GoVersion
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

func (i Info) String() string {
	s := fmt.Sprintf("debt-payoff %s (%s)", i.Version, i.GoVersion)
	if i.Revision != "" {
		rev := i.Revision
		if len(rev) > 8 {
			rev = rev[:8]
		}
		if i.Modified {
			rev += "+dirty"
		}
		s += " " + rev
	}
	if i.BuildTime != "unknown" {
		s += ", built " + i.BuildTime
	}
	return s
}
