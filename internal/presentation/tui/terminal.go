package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width is the terminal width of w, or 0 when unknown.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// ScreenClearer returns a function clearing w between story steps, or nil when
// w is not a terminal so piped transcripts stay intact.
func ScreenClearer(w io.Writer) func() {
	if !IsTerminal(w) {
		return nil
	}
	out := termenv.NewOutput(w)
	return func() {
		out.ClearScreen()
	}
}
