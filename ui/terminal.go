package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	sectionWidth = 50
)

// TerminalUI writes to a terminal or any other writer. Colours and the
// spinner animation are only used when the output is a real terminal.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	au          aurora.Aurora
	tty         bool
}

// NewTerminalUI writes to os.Stdout.
func NewTerminalUI() *TerminalUI {
	return NewTerminalUIWithWriter(os.Stdout)
}

func NewTerminalUIWithWriter(out io.Writer) *TerminalUI {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &TerminalUI{
		out: out,
		au:  aurora.NewAurora(tty),
		tty: tty,
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	case SeverityCritical:
		return u.au.Bold(t.Text).String()
	}
	return t.Text
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Critical(format string, args ...any) {
	u.writeLine(u.au.Bold(fmt.Sprintf(format, args...)).String())
}

// Section surrounds the separator with blank lines, e.g.
//
//	===== base =====
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - len(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	line := strings.Repeat("=", left) + titled + strings.Repeat("=", bars-left)
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), line)
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	maxLabel := 0
	for _, r := range rows {
		if w := visibleWidth(r[0]); w > maxLabel {
			maxLabel = w
		}
	}
	for _, r := range rows {
		u.writeLine(padRight(r[0], maxLabel) + "  " + r[1])
	}
}

// visibleWidth ignores ANSI colour codes.
func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func padRight(s string, w int) string {
	if n := visibleWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func (u *TerminalUI) Table(headers []string, rows [][]string) {
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	if ncols == 0 {
		return
	}

	widths := make([]int, ncols)
	for _, r := range append([][]string{headers}, rows...) {
		for i, cell := range r {
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	border := func(left, mid, right string) string {
		parts := make([]string, ncols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return borderStyle.Render(left + strings.Join(parts, mid) + right)
	}
	bar := borderStyle.Render("│")
	renderRow := func(cells []string) string {
		parts := make([]string, ncols)
		for i := range parts {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + padRight(cell, widths[i]) + " "
		}
		return bar + strings.Join(parts, bar) + bar
	}

	u.writeLine(border("┌", "┬", "┐"))
	if len(headers) > 0 {
		u.writeLine(renderRow(headers))
		u.writeLine(border("├", "┼", "┤"))
	}
	for _, r := range rows {
		u.writeLine(renderRow(r))
	}
	u.writeLine(border("└", "┴", "┘"))
}

// Spinner only animates on a terminal, elsewhere msg is printed once.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.tty {
		u.writeLine(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// the spinner clears its line without a trailing newline
		fmt.Fprintln(u.out)
	}
}

func (u *TerminalUI) Indent() UI {
	return &TerminalUI{
		indentLevel: u.indentLevel + 1,
		out:         u.out,
		au:          u.au,
		tty:         u.tty,
	}
}

func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
