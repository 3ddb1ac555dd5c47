package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arborgraph/arbor/pkg/family"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MemberListModel - Interactive member browser
// =============================================================================

// MemberListModel is the bubbletea model for browsing family members. The
// list scrolls within Height rows; the detail pane below shows the
// selected member's dates, birth place, and relations.
type MemberListModel struct {
	Members []family.Member
	Cursor  int
	Height  int
	Offset  int

	index *family.Index
}

// NewMemberListModel creates a member browser over the given list.
func NewMemberListModel(members []family.Member) MemberListModel {
	return MemberListModel{
		Members: members,
		Height:  15,
		index:   family.NewIndex(members),
	}
}

func (m MemberListModel) Init() tea.Cmd {
	return nil
}

func (m MemberListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Members)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor = 0
			m.Offset = 0
		case "end", "G":
			m.Cursor = len(m.Members) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MemberListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Family Members"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Members) {
		end = len(m.Members)
	}

	for i := m.Offset; i < end; i++ {
		member := m.Members[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-30s %s", cursor, member.FullName(), listDimStyle.Render(lifespan(member)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Members))))

	return b.String()
}

// detailView renders the selected member's details and relations.
func (m MemberListModel) detailView() string {
	if len(m.Members) == 0 {
		return ""
	}
	member := m.Members[m.Cursor]

	var b strings.Builder
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 46)))
	b.WriteString("\n")

	if member.BirthPlace != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("born in"), member.BirthPlace))
	}
	if name := m.relationName(member.SpouseID); name != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("spouse "), name))
	}
	if name := m.relationName(member.FatherID); name != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("father "), name))
	}
	if name := m.relationName(member.MotherID); name != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("mother "), name))
	}

	return b.String()
}

// relationName resolves a related member's display name, or empty when the
// id is unset or dangling.
func (m MemberListModel) relationName(id string) string {
	if id == "" {
		return ""
	}
	rel := m.index.Lookup(id)
	if rel == nil {
		return ""
	}
	return rel.FullName()
}
