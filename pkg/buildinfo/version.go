// Package buildinfo reports which hexwalk build is running.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/hexwalk/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/hexwalk/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/hexwalk/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/hexwalk
//
// Without ldflags the commit and date fall back to the VCS stamp Go embeds
// in binaries built from a checkout.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// vcs returns the embedded revision and commit time, if any.
func vcs() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
}

// commitAndDate prefers the ldflags values over the VCS stamp.
func commitAndDate() (string, string) {
	commit, date := Commit, Date
	rev, at := vcs()
	if commit == "" {
		commit = orUnknown(rev)
	}
	if date == "" {
		date = orUnknown(at)
	}
	return commit, date
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// Template is the cobra version template.
func Template() string {
	commit, date := commitAndDate()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, commit, date)
}

// Creator names the program in file metadata (the PDF producer, the SVG
// comment).
func Creator() string {
	return "hexwalk " + Version
}
