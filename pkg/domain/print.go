package domain

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the common header of a step:
//
//	{ Activity: <name> | [prev <- self -> next | ][[tag] ]
//
// Steps append their own fields with PrintArgs, which also closes the braces.
// In brief mode the header is skipped entirely.
func (b *Base) Print(w io.Writer, indent int, verbose, brief bool) {
	if brief {
		return
	}
	fmt.Fprintf(w, "%s{ Activity: %-12s | ", strings.Repeat(" ", indent), b.name)
	if verbose {
		fmt.Fprintf(w, "%9s <- %9s -> %-9s | ", addr(b.prev), fmt.Sprintf("%p", b), addr(b.next))
	}
	if b.Tag != "" {
		fmt.Fprintf(w, "[%s] ", b.Tag)
	}
}

// PrintArgs writes name/value pairs after a Print header.
// args alternates names and values. In full mode each pair renders as "name: value" and the
// line is closed with " }". In brief mode only values are written, and endl controls whether
// the line is terminated.
func PrintArgs(w io.Writer, brief, endl bool, args ...any) {
	for i := 0; i+1 < len(args); i += 2 {
		if !brief {
			fmt.Fprintf(w, "%v: ", args[i])
		}
		fmt.Fprint(w, args[i+1])
		last := i+2 >= len(args)
		if !last || (brief && !endl) {
			fmt.Fprint(w, ", ")
		}
	}
	switch {
	case !brief:
		fmt.Fprintln(w, " }")
	case endl:
		fmt.Fprintln(w)
	}
}

func addr(a Activity) string {
	if a == nil {
		return "nil"
	}
	return fmt.Sprintf("%p", a)
}
