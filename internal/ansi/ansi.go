// Package ansi provides ANSI escape code constants and terminal detection.
// All colored console output should reference these constants to avoid duplication.
package ansi

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Blue    = "\033[34m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

// IsTerminal reports whether w is a file connected to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorEnabled reports whether colored output should be written to w.
// NO_COLOR disables color regardless of the terminal.
func ColorEnabled(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return IsTerminal(w)
}

// Paint wraps s in the given SGR codes when on is true.
func Paint(on bool, s string, codes ...string) string {
	if !on || len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}
