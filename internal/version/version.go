// Package version carries build metadata. The variables are set with
// -ldflags "-X hdlgraph/internal/version.Version=...".
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"hdlgraph/internal/schema"
	"hdlgraph/internal/serial"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info is the version report printed by `hdlgraph version`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Schema    uint32 `json:"schema"`
	Format    uint32 `json:"format"`
}

func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		Schema:    schema.Version,
		Format:    serial.FormatVersion,
	}
}

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders major.minor.patch in three colors; anything after the
// patch number is kept as is. Malformed versions are returned unchanged.
func Colored(v string, enabled bool) string {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return v
	}
	for _, c := range []*color.Color{majorColor, minorColor, patchColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	patch, rest := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, rest = patch[:i], patch[i:]
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(patch) + rest
}

// String is the one-line form used by --version.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "hdlgraph %s (schema %d, format %d)", i.Version, i.Schema, i.Format)
	if i.GitCommit != "" {
		fmt.Fprintf(&sb, " commit %s", i.GitCommit)
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", i.BuildDate)
	}
	return sb.String()
}
