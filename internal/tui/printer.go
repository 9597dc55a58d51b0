package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Printer writes user-facing notices: upgrade diffs, outcome lines and the
// warning summary. Styling is applied only when enabled.
type Printer struct {
	out    io.Writer
	styled bool
	styles styles
}

// NewPrinter creates a Printer for out, styled when out is a color terminal.
func NewPrinter(out io.Writer) *Printer {
	return newPrinter(out, ColorEnabled(out))
}

// NewPlainPrinter creates a Printer that never styles its output.
func NewPlainPrinter(out io.Writer) *Printer {
	return newPrinter(out, false)
}

func newPrinter(out io.Writer, styled bool) *Printer {
	return &Printer{out: out, styled: styled, styles: newStyles(lipgloss.NewRenderer(out))}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// FileHeader announces the upgrade of path from one version to another.
func (p *Printer) FileHeader(path, from, to string) {
	fmt.Fprintf(p.out, "%s %s\n", p.render(p.styles.title, path), p.render(p.styles.lineNo, "("+from+" -> "+to+")"))
}

// Diff prints one changed line. Terminators are trimmed.
func (p *Printer) Diff(number int, before, after string) {
	n := p.render(p.styles.lineNo, fmt.Sprintf("%5d", number))
	fmt.Fprintf(p.out, "%s %s\n", n, p.render(p.styles.removed, "- "+trimEOL(before)))
	fmt.Fprintf(p.out, "%s %s\n", strings.Repeat(" ", 5), p.render(p.styles.added, "+ "+trimEOL(after)))
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.render(p.styles.success, SymbolCheck), fmt.Sprintf(format, args...))
}

// Failure prints a failed step that did not stop the run.
func (p *Printer) Failure(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.render(p.styles.failure, SymbolCross), fmt.Sprintf(format, args...))
}

// Warnings prints the warning summary grouped by kind. Nothing is printed
// when there are no warnings.
func (p *Printer) Warnings(warnings []pumlicons.Warning) {
	if len(warnings) == 0 {
		return
	}
	byKind := make(map[pumlicons.WarningKind][]pumlicons.Warning)
	var kinds []string
	for _, w := range warnings {
		if _, ok := byKind[w.Kind]; !ok {
			kinds = append(kinds, string(w.Kind))
		}
		byKind[w.Kind] = append(byKind[w.Kind], w)
	}
	sort.Strings(kinds)

	fmt.Fprintln(p.out, p.render(p.styles.warning, fmt.Sprintf("%s %d warning(s)", SymbolWarn, len(warnings))))
	for _, kind := range kinds {
		group := byKind[pumlicons.WarningKind(kind)]
		fmt.Fprintf(p.out, "  %s (%d)\n", p.render(p.styles.title, kind), len(group))
		if pumlicons.WarningKind(kind).Routine() {
			continue
		}
		for _, w := range group {
			fmt.Fprintf(p.out, "    %s %s: %s\n", SymbolBullet, w.Subject, w.Message)
		}
	}
}

func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
