package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger with short wall-clock timestamps such as
// "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timer starts a clock; the returned func logs msg at info level with an
// "elapsed" key rounded to the millisecond and returns that duration.
func timer(l *log.Logger) func(msg string, keyvals ...any) time.Duration {
	start := time.Now()
	return func(msg string, keyvals ...any) time.Duration {
		d := time.Since(start).Round(time.Millisecond)
		l.Info(msg, append(keyvals, "elapsed", d)...)
		return d
	}
}
