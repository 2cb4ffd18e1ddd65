package log

import (
	"fmt"
	"io"
	"time"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr).
// A nil *Logger discards everything.
type Logger struct {
	Enabled bool
	W       io.Writer
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op when Enabled is false.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}

// Timed logs how long the step named label took since start.
func (l *Logger) Timed(label string, start time.Time) {
	l.Printf("%s: %s", label, time.Since(start).Round(time.Millisecond))
}
