package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the program header. Colors degrade to plain text when
// w is not a color-capable terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)

	rule := out.String("========================================").Foreground(out.Color("#818cf8"))
	title := out.String("     CHOOSE YOUR OWN ADVENTURE          ").Foreground(out.Color("#e879f9")).Bold()

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	fmt.Fprint(w, "Type the number of your choice and press Enter.\n\n")
}
