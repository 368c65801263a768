package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "v9.9.9", "abc123", "2026-01-02T03:04:05Z"
	want := "{{.Name}} version v9.9.9\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if got := Creator(); got != "hexwalk v9.9.9" {
		t.Errorf("Creator() = %q", got)
	}

	// Test binaries carry no VCS stamp.
	Commit, Date = "", ""
	if got := Template(); !strings.Contains(got, "commit: ") || strings.Contains(got, "commit: \n") {
		t.Errorf("Template() without ldflags = %q", got)
	}
}
