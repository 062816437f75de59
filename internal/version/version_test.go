package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func override(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestInfoString(t *testing.T) {
	override(t, "1.2.3", "abc123def456789", "2026-01-15T10:30:00Z")

	got := Current().String()
	for _, want := range []string{"linelimit 1.2.3", "commit: abc123def456", "built:  2026-01-15T10:30:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "abc123def4567") {
		t.Errorf("commit not shortened: %q", got)
	}
}

func TestInfoStringOptionalFields(t *testing.T) {
	override(t, "1.2.3", "", "")

	got := Current().String()
	if strings.Contains(got, "commit:") || strings.Contains(got, "built:") {
		t.Fatalf("unexpected optional fields in %q", got)
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"2.0.1", "2.0.1"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		override(t, tt.version, "", "")
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}
