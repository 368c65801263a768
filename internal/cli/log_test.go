package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level log.Level
		debug bool
		info  bool
	}{
		{log.InfoLevel, false, true},
		{log.DebugLevel, true, true},
		{log.WarnLevel, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var debug, info bytes.Buffer
			newLogger(&debug, tt.level).Debug("walking")
			newLogger(&info, tt.level).Info("exported")

			if got := debug.Len() > 0; got != tt.debug {
				t.Errorf("debug written = %v, want %v", got, tt.debug)
			}
			if got := info.Len() > 0; got != tt.info {
				t.Errorf("info written = %v, want %v", got, tt.info)
			}
		})
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	done := timer(newLogger(&buf, log.InfoLevel))

	time.Sleep(10 * time.Millisecond)
	d := done("exported drawing", "number", 7)

	out := buf.String()
	for _, want := range []string{"exported drawing", "number=7", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if d < 10*time.Millisecond {
		t.Errorf("elapsed = %v, want at least 10ms", d)
	}
}
