// Package version holds build metadata for the jsonfix CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info is a trimmed snapshot of the build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// Current returns the build metadata; an empty Version becomes "dev".
func Current() Info {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	return Info{
		Version:   v,
		GitCommit: strings.TrimSpace(GitCommit),
		BuildDate: strings.TrimSpace(BuildDate),
	}
}

// Colored renders the version with major, minor and patch in distinct
// colours. Anything that is not MAJOR.MINOR.PATCH[-suffix] is returned as is.
func (i Info) Colored(enabled bool) string {
	core, suffix, hasSuffix := strings.Cut(i.Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return i.Version
	}
	cs := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	for k, c := range cs {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		parts[k] = c.Sprint(parts[k])
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}
