package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chartwalk/chartwalk/pkg/planner"
	"github.com/chartwalk/chartwalk/pkg/problem"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// listItem is a selectable entry with an optional description.
type listItem struct {
	Name string
	Desc string
}

// listModel is the bubbletea model for picking one item from a list.
type listModel struct {
	Title  string
	Items  []listItem
	Cursor int
	Height int
	Offset int
	Choice string
}

func newListModel(title string, items []listItem) listModel {
	return listModel{Title: title, Items: items, Height: 15}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Choice = m.Items[m.Cursor].Name
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m listModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	for i := m.Offset; i < end; i++ {
		item := m.Items[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(item.Name))
		if item.Desc != "" {
			b.WriteString("  " + listDimStyle.Render(item.Desc))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickOne runs an interactive list picker and returns the chosen name.
// ok is false when the user quit without choosing.
func pickOne(title string, items []listItem) (choice string, ok bool, err error) {
	final, err := tea.NewProgram(newListModel(title, items)).Run()
	if err != nil {
		return "", false, fmt.Errorf("run picker: %w", err)
	}
	m, isList := final.(listModel)
	if !isList || m.Choice == "" {
		return "", false, nil
	}
	return m.Choice, true, nil
}

// pickProblemAndPlanner walks the user through problem and planner selection.
func pickProblemAndPlanner() (probName, planName string, ok bool, err error) {
	var probItems []listItem
	for _, p := range problem.All() {
		probItems = append(probItems, listItem{Name: p.Name, Desc: p.Description})
	}
	probName, ok, err = pickOne("Select Problem", probItems)
	if err != nil || !ok {
		return "", "", false, err
	}

	var planItems []listItem
	for _, name := range planner.Names() {
		planItems = append(planItems, listItem{Name: name, Desc: plannerNotes[name]})
	}
	planName, ok, err = pickOne("Select Planner", planItems)
	if err != nil || !ok {
		return "", "", false, err
	}

	return probName, planName, true, nil
}
