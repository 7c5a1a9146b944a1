package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for progress output.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorWarn  = color.New(color.FgYellow)
	colorDone  = color.New(color.FgGreen, color.Bold)
	colorMuted = color.New(color.Faint)
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printer writes progress lines, coloured only when attached to a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, color: isTerminal(w)}
}

func (p *printer) printf(c *color.Color, format string, args ...interface{}) {
	if c == nil || !p.color {
		fmt.Fprintf(p.w, format, args...)
		return
	}
	c.EnableColor()
	c.Fprintf(p.w, format, args...)
}

// PrintError writes err to w as a single "Error:" line.
func PrintError(w io.Writer, err error) {
	newPrinter(w).printf(colorError, "Error: %v\n", err)
}
