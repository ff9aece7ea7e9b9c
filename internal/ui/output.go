// Package ui provides terminal output helpers for the non-interactive
// commands. Output is styled when writing to a terminal and plain otherwise,
// so it can be piped into other tools.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

// Printer writes command output to w.
type Printer struct {
	w     io.Writer
	isTTY bool

	heading lipgloss.Style
	label   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
}

// NewPrinter creates a Printer for w. Styling is enabled only when w is a
// terminal.
func NewPrinter(w io.Writer) *Printer {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	p := &Printer{w: w, isTTY: isTTY}
	r := lipgloss.NewRenderer(w)
	p.heading = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F46E5"))
	p.label = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#9CA3AF"))
	p.success = r.NewStyle().Foreground(lipgloss.Color("#10B981"))
	p.warn = r.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	p.dim = r.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	return p
}

// Heading prints a section title.
func (p *Printer) Heading(s string) {
	fmt.Fprintln(p.w, p.heading.Render(s))
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Success prints a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.success.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, p.warn.Render(fmt.Sprintf(format, args...)))
}

// Dim prints a muted line.
func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintln(p.w, p.dim.Render(fmt.Sprintf(format, args...)))
}

// Field is one labelled value in a detail listing.
type Field struct {
	Label string
	Value string
}

// Fields prints label/value pairs with the values aligned.
func (p *Printer) Fields(fields ...Field) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Label))
	}
	for _, f := range fields {
		label := p.label.Render(f.Label + ":")
		pad := strings.Repeat(" ", width-len(f.Label)+1)
		fmt.Fprintf(p.w, "%s%s%s\n", label, pad, f.Value)
	}
}

// Block prints a titled block of free text, indented.
func (p *Printer) Block(title, body string) {
	p.Heading(title)
	if strings.TrimSpace(body) == "" {
		p.Dim("  (none)")
		return
	}
	for _, line := range strings.Split(body, "\n") {
		fmt.Fprintln(p.w, "  "+line)
	}
}

// Table prints rows under headers. On a terminal the table has a rounded
// border; otherwise columns are separated by whitespace only.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().Headers(headers...).Rows(rows...)
	if p.isTTY {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(p.dim).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return p.heading.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
	} else {
		t = t.Border(lipgloss.HiddenBorder()).
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(true).
			StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().PaddingRight(1)
			})
	}
	fmt.Fprintln(p.w, t.String())
}
