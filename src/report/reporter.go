// Package report delivers user-facing status messages. The orchestration
// layer emits structured events through the Reporter interface and never
// formats terminal output directly.
package report

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives status events for presentation.
type Reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

// Console writes events to a pair of streams with optional ANSI colors.
// Info and Success go to Out, Warn and Error to Err.
type Console struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// NewConsole builds a Console reporter. Colors are dropped when noColor is
// set or the NO_COLOR environment variable is present.
func NewConsole(out, err io.Writer, noColor bool) *Console {
	if _, present := os.LookupEnv("NO_COLOR"); present {
		noColor = true
	}
	return &Console{Out: out, Err: err, Color: !noColor}
}

func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

func (c *Console) Success(format string, args ...any) {
	fmt.Fprintf(c.Out, "%s %s\n", c.paint(ansiGreen, "✓"), fmt.Sprintf(format, args...))
}

func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintf(c.Err, "%s %s\n", c.paint(ansiYellow, "!"), fmt.Sprintf(format, args...))
}

func (c *Console) Error(format string, args ...any) {
	fmt.Fprintf(c.Err, "%s %s\n", c.paint(ansiRed, "✗"), fmt.Sprintf(format, args...))
}

func (c *Console) paint(color, s string) string {
	if !c.Color {
		return s
	}
	return color + s + ansiReset
}

// Discard drops every event. Useful for callers that only care about
// returned errors.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Info(string, ...any)    {}
func (discard) Success(string, ...any) {}
func (discard) Warn(string, ...any)    {}
func (discard) Error(string, ...any)   {}
