package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ansi color codes, used only when the output stream is a real terminal.
const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiReset  = "\x1b[0m"
)

func colorFor(sev Severity) string {
	switch sev {
	case Error:
		return ansiRed
	case Warning:
		return ansiYellow
	default:
		return ansiCyan
	}
}

// isTerminal mirrors the dual TTY check funxy's builtins_term.go uses:
// a real terminal either reports as a standard TTY or a Cygwin/MSYS one.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// EmitTerminal writes d's human-readable §6 terminal format to w. Colors
// are applied only when w is a real terminal (checked against w
// itself when w is *os.File, otherwise plain text).
func (d *Diagnostic) EmitTerminal(w io.Writer) {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isTerminal(f)
	}

	var b strings.Builder
	sevLabel := d.Severity.String()
	if colored {
		b.WriteString(colorFor(d.Severity))
		b.WriteString(sevLabel)
		b.WriteString(ansiReset)
	} else {
		b.WriteString(sevLabel)
	}
	fmt.Fprintf(&b, "[%s]: %s\n", d.Code, d.Summary)
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", d.PrimarySpan.File, d.PrimarySpan.Line, d.PrimarySpan.Column)

	if len(d.Hypotheses) > 0 {
		b.WriteString("  Most likely causes: ")
		for i, h := range d.Hypotheses {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s (%.0f%%)", h.Category, h.Probability*100)
		}
		b.WriteString("\n")
	}
	if len(d.TypeFlowChain) > 0 {
		fmt.Fprintf(&b, "  Type flow chain: %s\n", strings.Join(d.TypeFlowChain, " -> "))
	}
	if d.SemanticContext != nil && len(d.SemanticContext.RelatedCIDs) > 0 {
		fmt.Fprintf(&b, "  Correlated changes: %s\n", strings.Join(d.SemanticContext.RelatedCIDs, ", "))
	}
	if len(d.Suggestions) > 0 {
		b.WriteString("  Suggested fixes:\n")
		for _, s := range d.Suggestions {
			fmt.Fprintf(&b, "    - %s\n", s.Description)
		}
	}

	fmt.Fprint(w, b.String())
}
