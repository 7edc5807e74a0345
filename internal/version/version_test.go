package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestCurrentDefaults(t *testing.T) {
	info := Current()
	if info.Version == "" {
		t.Fatal("Version should have a default value")
	}
}

func TestCurrentOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = "  "
	GitCommit = " abc123def456\n"
	BuildDate = "2026-01-15T10:30:00Z"

	info := Current()
	if info.Version != "dev" {
		t.Errorf("blank Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q", info.GitCommit)
	}
	if info.BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q", info.BuildDate)
	}
}

func TestColoredPlain(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	t.Cleanup(func() { color.NoColor, Version = origNoColor, origVersion })
	color.NoColor = true

	for in, want := range map[string]string{
		"1.2.3":     "1.2.3",
		"0.1.0-dev": "0.1.0-dev",
		"nightly":   "nightly",
	} {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}
