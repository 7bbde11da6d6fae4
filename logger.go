package timingwheel

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger used by Runner.
//
// Any logiface backend works, see Logger.Logger on a typed logiface logger to
// obtain one. A nil *Logger writes nothing.
type Logger = logiface.Logger[logiface.Event]

// NewLogger returns a Logger writing one JSON object per line to w, for events
// at or above level.
func NewLogger(w io.Writer, level logiface.Level) *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
	).Logger()
}
