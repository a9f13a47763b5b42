// Package element defines the boundary between the hosting dataflow runtime
// and the elements in this suite. The host delivers one input frame per
// invocation, supplies a settings store and a logging sink, and consumes
// emissions from named output ports in the order they are produced.
package element

import (
	"context"
	"io"
	"log/slog"

	"github.com/demersaj/elements/internal/frame"
)

// Sink receives frames emitted on named output ports. Implementations are
// supplied by the host; elements call Emit zero or more times per invocation
// and never buffer emissions themselves.
type Sink interface {
	Emit(port string, f *frame.Frame) error
}

// Context carries the host-supplied collaborators for one element invocation.
type Context struct {
	Logger   *slog.Logger
	Settings *Settings
	Sink     Sink
}

// Logger returns ctx's logger, or a discard logger when none was supplied.
func (c *Context) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Log returns the logger for this invocation.
func (c *Context) Log() *slog.Logger {
	return c.logger()
}

// Element is a single pipeline stage: it receives one frame and emits zero or
// more frames through the context's sink. A returned error is fatal for the
// invocation; the host decides presentation.
type Element interface {
	// Name returns the element name as registered with the host.
	Name() string

	// Run processes one input frame.
	Run(ctx context.Context, ec *Context, in *frame.Frame) error
}
