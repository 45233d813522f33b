// Package tui renders terminal output: live multi-bar progress, bordered
// tables and interactive selection.
package tui

import (
	"io"
	"os"

	"redcell/internal/logging"
	"redcell/internal/progress"
)

// Console bundles the output sinks for one command invocation. Commands
// receive a console instead of reaching for globals, so tests can swap in
// buffers and fake prompters.
type Console struct {
	Out      io.Writer
	Log      *logging.Logger
	Prompter Prompter

	// SurfaceFactory overrides the live surface, for headless tests.
	SurfaceFactory func() progress.Surface
}

// NewConsole returns a console bound to stdout.
func NewConsole(log *logging.Logger) *Console {
	return &Console{
		Out:      os.Stdout,
		Log:      log,
		Prompter: &selectPrompter{},
	}
}

// NewSurface starts a live progress surface on the console's output.
func (c *Console) NewSurface() progress.Surface {
	if c.SurfaceFactory != nil {
		return c.SurfaceFactory()
	}
	return NewLiveSurface(c.Out)
}
