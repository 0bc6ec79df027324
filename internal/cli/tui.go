package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lifeline/pkg/graph"
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Element Tables
// =============================================================================

// elementTable is one tab of the inspector: a header row and one row per
// diagram element.
type elementTable struct {
	name    string
	headers []string
	rows    [][]string
}

// diagramTables builds the lifeline, message, execution and comment tables
// of a laid-out diagram. Positions are printed as the layout stored them.
func diagramTables(d graph.Diagram) []elementTable {
	lifelines := elementTable{
		name:    "Lifelines",
		headers: []string{"ID", "Name", "Slot", "Bounds", "Destroyed"},
	}
	for _, l := range d.Lifelines {
		destroyed := ""
		if l.Destruction != nil {
			destroyed = iconSuccess
		}
		lifelines.rows = append(lifelines.rows, []string{
			l.ID, l.DisplayName(), strconv.Itoa(l.Slot), formatRect(l.Bounds), destroyed,
		})
	}

	messages := elementTable{
		name:    "Messages",
		headers: []string{"ID", "Route", "Kind", "Start", "End", "Labels"},
	}
	for _, m := range d.Messages {
		start, end := "—", "—"
		if m.Edge != nil {
			start, end = formatVec(m.Edge.Start), formatVec(m.Edge.End)
		}
		messages.rows = append(messages.rows, []string{
			m.ID, m.Source + " " + iconArrow + " " + m.Target, orDash(m.Kind), start, end, formatLabels(m.Labels),
		})
	}

	executions := elementTable{
		name:    "Executions",
		headers: []string{"ID", "Lifeline", "Kind", "Messages", "Bounds"},
	}
	for _, e := range d.Executions {
		executions.rows = append(executions.rows, []string{
			orDash(e.ID), e.Lifeline, orDash(e.Kind), strings.Join(e.Messages, ", "), formatRect(e.Bounds),
		})
	}

	comments := elementTable{
		name:    "Comments",
		headers: []string{"ID", "Attached", "Text", "Bounds"},
	}
	for _, c := range d.Comments {
		attached := c.Lifeline
		if c.Message != "" {
			attached = c.Message
		}
		comments.rows = append(comments.rows, []string{
			orDash(c.ID), orDash(attached), truncate(c.Text, 32), formatRect(c.Bounds),
		})
	}

	return []elementTable{lifelines, messages, executions, comments}
}

// render draws rows [from, to) of t, marking cursor with a pointer. A cursor
// of -1 marks nothing.
func (t elementTable) render(from, to, cursor int) string {
	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		rows = append(rows, append([]string{marker}, t.rows[i]...))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, t.headers...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case from+row == cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		}).
		Render()
}

// =============================================================================
// InspectModel - Interactive diagram browser
// =============================================================================

// InspectModel is the bubbletea model of the inspect command.
type InspectModel struct {
	Title  string
	Tables []elementTable
	Tab    int
	Cursor int
	Offset int
	Height int
}

// NewInspectModel creates an inspector for a laid-out diagram.
func NewInspectModel(title string, d graph.Diagram) InspectModel {
	return InspectModel{
		Title:  title,
		Tables: diagramTables(d),
		Height: 15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.switchTab(1)
		case "shift+tab", "left", "h":
			m.switchTab(-1)
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tables[m.Tab].rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-9, 3)
	}
	return m, nil
}

func (m *InspectModel) switchTab(delta int) {
	n := len(m.Tables)
	m.Tab = ((m.Tab+delta)%n + n) % n
	m.Cursor, m.Offset = 0, 0
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ section  ↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.Tables))
	for i, t := range m.Tables {
		label := fmt.Sprintf("%s (%d)", t.name, len(t.rows))
		if i == m.Tab {
			tabs[i] = tabActiveStyle.Render(label)
		} else {
			tabs[i] = tabInactiveStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, "   "))
	b.WriteString("\n")

	t := m.Tables[m.Tab]
	if len(t.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  no " + strings.ToLower(t.name)))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(t.rows))
	b.WriteString(t.render(m.Offset, end, m.Cursor))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(t.rows))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatVec(v graph.Vec) string {
	return fmt.Sprintf("%g,%g", v.X, v.Y)
}

func formatRect(r *graph.Rect) string {
	if r == nil {
		return "—"
	}
	return fmt.Sprintf("%g,%g %g×%g", r.X, r.Y, r.Width, r.Height)
}

func formatLabels(labels []graph.Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%q@%g,%g", truncate(l.Text, 16), l.X, l.Y)
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
