package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultListWidth  = 60
	defaultListHeight = 20
)

type nameItem string

func (i nameItem) FilterValue() string { return string(i) }

type nameDelegate struct{}

func (d nameDelegate) Height() int                         { return 1 }
func (d nameDelegate) Spacing() int                        { return 0 }
func (d nameDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d nameDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	name, ok := item.(nameItem)
	if !ok {
		return
	}

	line := optionStyle.Render("  " + string(name))
	if idx == m.Index() {
		line = cursorStyle.Render("> " + string(name))
	}
	_, _ = fmt.Fprint(w, line)
}

type pickerModel struct {
	list      list.Model
	title     string
	selection string
	picked    bool
}

func newPickerModel(title string, names []string) *pickerModel {
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = nameItem(name)
	}

	l := list.New(items, nameDelegate{}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &pickerModel{list: l, title: title}
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the filter input is active, keys belong to the list.
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "enter":
				if selected, ok := m.list.SelectedItem().(nameItem); ok {
					m.selection = string(selected)
					m.picked = true
				}
				return m, tea.Quit
			case "esc", "q", "ctrl+c":
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 30)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *pickerModel) View() string {
	header := headerStyle.Render(m.title)
	help := helpStyle.Render("Type / to filter | Up/Down navigate | Enter select | q cancel")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

// PickGame presents a filterable picker over game names. The second return
// value is false when the user backed out without picking.
func PickGame(title string, names []string) (string, bool, error) {
	finalModel, err := runProgram(newPickerModel(title, names))
	if err != nil {
		return "", false, err
	}

	typed, ok := finalModel.(*pickerModel)
	if !ok {
		return "", false, fmt.Errorf("unexpected program result")
	}
	return typed.selection, typed.picked, nil
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
