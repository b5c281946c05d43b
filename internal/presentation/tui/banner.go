package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the program name and version, colored when w supports it.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).Profile
	name := p.String("simchain").Foreground(p.Color("#818cf8")).Bold()
	ver := p.String(version).Foreground(p.Color("#f472b6"))
	fmt.Fprintf(w, "%s version %s\n", name, ver)
}
