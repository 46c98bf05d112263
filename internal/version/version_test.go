package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	info := Current()
	if info.Schema == 0 || info.Format == 0 {
		t.Errorf("info = %+v", info)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	s := Current().String()
	for _, want := range []string{"hdlgraph 1.2.3", "commit abc123def456", "built 2024-01-15T10:30:00Z"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q lacks %q", s, want)
		}
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"2.3.4+meta", "2.3.4+meta"},
		{"dev", "dev"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in, false); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Colored("1.2.3", true); got == "1.2.3" || !strings.Contains(got, "\x1b[") {
		t.Errorf("colored output has no escapes: %q", got)
	}
}
