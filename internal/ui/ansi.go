package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const symCross = "✖"

var (
	forceColor   bool
	disableColor bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetColorForcing overrides TTY detection.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func colorOn() bool {
	if disableColor {
		return false
	}
	if forceColor {
		return true
	}
	f, ok := stdout.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// C paints s with attrs when the output supports colour.
func C(attrs []color.Attribute, s string) string {
	if !colorOn() || len(attrs) == 0 {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Fail prints msg as an error line on stderr.
func Fail(msg string) { fmt.Fprintln(stderr, C(Current().Error, symCross+" "+msg)) }
