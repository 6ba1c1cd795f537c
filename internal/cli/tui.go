package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/facadeplan/pkg/facade"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TypeListModel - Interactive building type selection
// =============================================================================

// TypeListModel is the bubbletea model for picking a building type.
type TypeListModel struct {
	Types    []facade.BuildingType
	Cursor   int
	Selected facade.BuildingType // zero until enter is pressed
}

// NewTypeListModel creates a list with the cursor on current.
func NewTypeListModel(current facade.BuildingType) TypeListModel {
	m := TypeListModel{}
	for _, name := range facade.BuildingTypeNames() {
		t, err := facade.ParseBuildingType(name)
		if err != nil {
			continue
		}
		if t == current {
			m.Cursor = len(m.Types)
		}
		m.Types = append(m.Types, t)
	}
	return m
}

func (m TypeListModel) Init() tea.Cmd {
	return nil
}

func (m TypeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Types)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.Types) - 1
		case "enter":
			if len(m.Types) > 0 {
				m.Selected = m.Types[m.Cursor]
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m TypeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Building Type"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Types))
	for i, t := range m.Types {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, t.String(), describeFloors(t)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Type", "Floors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case row == m.Cursor:
				return listSelectedStyle
			case col == 2:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Types))))

	return b.String()
}
