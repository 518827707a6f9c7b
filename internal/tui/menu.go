package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type menuModel struct {
	title    string
	options  []string
	cursor   int
	selected int // -1 until a choice is made
}

func newMenuModel(title string, options []string) *menuModel {
	return &menuModel{title: title, options: options, selected: -1}
}

func (m *menuModel) Init() tea.Cmd { return nil }

func (m *menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.selected = m.cursor
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	default:
		// Number keys select directly, like the menus this replaces.
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.options) {
			m.selected = n - 1
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *menuModel) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(m.title))
	sb.WriteString("\n")

	for i, option := range m.options {
		line := fmt.Sprintf("%d. %s", i+1, option)
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("> " + line))
		} else {
			sb.WriteString(optionStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("Up/Down navigate | Enter or number select | q cancel"))
	return sb.String()
}

// Menu shows a numbered chooser and returns the zero-based index of the
// selected option, or -1 when the user backed out.
func Menu(title string, options []string) (int, error) {
	finalModel, err := runProgram(newMenuModel(title, options))
	if err != nil {
		return -1, err
	}

	typed, ok := finalModel.(*menuModel)
	if !ok {
		return -1, fmt.Errorf("unexpected program result")
	}
	return typed.selected, nil
}
