// Package ui renders CLI output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
)

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// PrintError prints an error message
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, InfoStyle.Render("ℹ "+fmt.Sprintf(format, args...)))
}

// PrintSection prints a section header
func PrintSection(w io.Writer, title string) {
	section := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(SecondaryColor).
		Render(TitleStyle.Render(title))

	fmt.Fprintln(w, section)
}

var keywords = map[string]bool{
	"SELECT": true, "FROM": true, "AS": true, "WHERE": true, "AND": true,
	"ORDER": true, "BY": true, "ASC": true, "DESC": true, "LIMIT": true,
	"OFFSET": true, "INSERT": true, "INTO": true, "VALUES": true, "UPDATE": true,
	"SET": true, "DELETE": true, "IN": true, "NOT": true, "IS": true,
	"NULL": true, "BETWEEN": true, "LIKE": true, "EXISTS": true,
}

var keywordColor = color.New(color.FgCyan, color.Bold)

// HighlightSQL colors the SQL keywords of a composed statement. String
// literals are left alone. With color disabled it returns sql unchanged.
func HighlightSQL(sql string) string {
	if color.NoColor {
		return sql
	}

	var b strings.Builder
	inString := false
	word := strings.Builder{}
	flush := func() {
		if word.Len() == 0 {
			return
		}
		if w := word.String(); keywords[w] {
			b.WriteString(keywordColor.Sprint(w))
		} else {
			b.WriteString(w)
		}
		word.Reset()
	}

	for _, r := range sql {
		switch {
		case r == '\'':
			flush()
			inString = !inString
			b.WriteRune(r)
		case inString:
			b.WriteRune(r)
		case r == '_' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			word.WriteRune(r)
		default:
			flush()
			b.WriteRune(r)
		}
	}
	flush()
	return b.String()
}

// PrintSQL prints a statement in a styled block
func PrintSQL(w io.Writer, sql string) {
	block := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SecondaryColor).
		Padding(0, 1).
		Render(HighlightSQL(sql))

	fmt.Fprintln(w, block)
}

// PrintTable prints a table using pterm
func PrintTable(w io.Writer, headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}

// RenderMarkdown renders markdown for the terminal.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// PrintMarkdown renders markdown content
func PrintMarkdown(w io.Writer, content string) error {
	out, err := RenderMarkdown(content)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
