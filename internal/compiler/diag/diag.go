package diag

//go:generate mockgen -write_package_comment=false -package=diagmock -destination=diagmock/reporter.go github.com/arnavsurve/gluegen/internal/compiler/diag Reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Reporter is the line oriented sink for progress and warning messages.
type Reporter interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Console writes one line per message. Warnings are yellow and errors red
// unless colour is disabled.
type Console struct {
	out   io.Writer
	quiet bool
	warn  *color.Color
	err   *color.Color
}

func NewConsole(out io.Writer, quiet, noColor bool) *Console {
	c := &Console{
		out:   out,
		quiet: quiet,
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
	}
	if noColor {
		c.warn.DisableColor()
		c.err.DisableColor()
	}
	return c
}

func (c *Console) Infof(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, line(format, args...))
}

func (c *Console) Warnf(format string, args ...any) {
	c.warn.Fprintln(c.out, line(format, args...))
}

func (c *Console) Errorf(format string, args ...any) {
	c.err.Fprintln(c.out, line(format, args...))
}

// line keeps every message on a single output line.
func line(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	return strings.ReplaceAll(strings.TrimRight(msg, "\n"), "\n", " ")
}

type nop struct{}

func (nop) Infof(string, ...any)  {}
func (nop) Warnf(string, ...any)  {}
func (nop) Errorf(string, ...any) {}

// Discard drops every message.
func Discard() Reporter {
	return nop{}
}
