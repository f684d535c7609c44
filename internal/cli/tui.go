package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gitlite/flowgraph/pkg/flow"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// GroupListModel - Interactive flow group browser
// =============================================================================

// GroupListModel is the bubbletea model for browsing flow groups. The cursor
// moves over the group table; enter expands the group under the cursor to
// show its member commits.
type GroupListModel struct {
	Groups   []flow.Group
	Cursor   int
	Expanded int // index of the expanded group, -1 when none
	Height   int
	Offset   int
}

// NewGroupListModel creates a new group list model.
func NewGroupListModel(groups []flow.Group) GroupListModel {
	return GroupListModel{
		Groups:   groups,
		Cursor:   0,
		Expanded: -1,
		Height:   15,
		Offset:   0,
	}
}

func (m GroupListModel) Init() tea.Cmd {
	return nil
}

func (m GroupListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Groups)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.Expanded == m.Cursor {
				m.Expanded = -1
			} else {
				m.Expanded = m.Cursor
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m GroupListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Flow Groups"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	if len(m.Groups) == 0 {
		b.WriteString(listDimStyle.Render("  no groups"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Groups) {
		end = len(m.Groups)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		g := m.Groups[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		relations := "—"
		if len(g.Relations) > 0 {
			parts := make([]string, len(g.Relations))
			for j, rel := range g.Relations {
				parts[j] = fmt.Sprintf("%s ×%d", rel.Label, rel.Count)
			}
			relations = strings.Join(parts, ", ")
		}

		rows = append(rows, []string{
			cursor,
			g.BranchLabel,
			g.TypeLabel,
			fmt.Sprintf("%d", len(g.Commits)),
			fmt.Sprintf("%d", g.Lane),
			formatGroupSpan(g),
			relations,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Branch", "Type", "Commits", "Lane", "When", "Relations").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Groups) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Expanded >= 0 && m.Expanded < len(m.Groups) {
		b.WriteString(m.viewCommits(m.Groups[m.Expanded]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Groups))))

	return b.String()
}

// viewCommits renders the member commits of an expanded group.
func (m GroupListModel) viewCommits(g flow.Group) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(StyleTitle.Render("  " + g.BranchLabel))
	b.WriteString(listDimStyle.Render(" · " + g.TypeLabel))
	b.WriteString("\n")

	for i := range g.Commits {
		c := &g.Commits[i]
		hash := c.Hash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		line := fmt.Sprintf("  %s  %-50s %s",
			StyleSuccess.Render(hash),
			c.Summary(),
			listDimStyle.Render(c.Author))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// formatGroupSpan renders the chronological span of a group relative to now.
func formatGroupSpan(g flow.Group) string {
	newest := time.Unix(g.EndedAt, 0)
	return formatRelativeTime(newest)
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
