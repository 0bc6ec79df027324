package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status lines
// =============================================================================

// statusLine prints one line prefixed with a colored icon.
func statusLine(icon string, color lipgloss.Color, text string) {
	fmt.Fprintln(out, lipgloss.NewStyle().Foreground(color).Render(icon)+" "+text)
}

func printSuccess(format string, args ...any) {
	statusLine(iconSuccess, colorGreen, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	statusLine(iconError, colorRed, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	text := lipgloss.NewStyle().Foreground(colorYellow).Render(fmt.Sprintf(format, args...))
	statusLine(iconWarning, colorYellow, text)
}

func printInfo(format string, args ...any) {
	statusLine(iconInfo, colorGray, fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Diagram summary
// =============================================================================

// diagramStats counts the elements of a laid-out diagram.
type diagramStats struct {
	lifelines  int
	messages   int
	executions int
	comments   int
	cached     bool
}

// String joins the non-zero counts and the cache state, e.g.
// "2 lifelines · 3 messages · fresh".
func (s diagramStats) String() string {
	var parts []string
	add := func(n int, unit string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, unit))
		}
	}
	add(s.lifelines, "lifelines")
	add(s.messages, "messages")
	add(s.executions, "executions")
	add(s.comments, "comments")
	if s.cached {
		parts = append(parts, iconCached)
	} else {
		parts = append(parts, iconFresh)
	}
	return strings.Join(parts, " · ")
}

func printStats(s diagramStats) {
	fmt.Fprintln(out, "  "+StyleDim.Render(s.String()))
}
