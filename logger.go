package tricolor

import (
	"io"
	"log"
)

// logger receives non-fatal diagnostics: a trace abort being resumed, a
// white-weak allocation surviving another cycle under weak observation.
// Fatal conditions never go through here — those are gcerrors.StandardError
// panics, not log lines. Discards by default; call SetLogger to observe.
var logger = log.New(io.Discard, "", 0)

// SetLogger redirects the package's diagnostic output. Passing nil is a
// no-op rather than a panic, matching Orizon's own config-setter style.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
