package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avrillon/steamworth/internal/errors"
)

type promptModel struct {
	input     textinput.Model
	label     string
	validate  func(string) error
	errText   string
	value     string
	submitted bool
}

func newPromptModel(label string, validate func(string) error) *promptModel {
	input := textinput.New()
	input.Focus()
	input.CharLimit = 128
	input.Width = 48

	return &promptModel{input: input, label: label, validate: validate}
}

func (m *promptModel) Init() tea.Cmd { return textinput.Blink }

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			value := m.input.Value()
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.errText = err.Error()
					m.input.SetValue("")
					return m, nil
				}
			}
			m.value = value
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *promptModel) View() string {
	parts := []string{headerStyle.Render(m.label), m.input.View()}
	if m.errText != "" {
		parts = append(parts, errorStyle.Render(m.errText))
	}
	parts = append(parts, helpStyle.Render("Enter submit | Esc cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Prompt asks for one free-text value.
func Prompt(label string) (string, error) {
	return PromptValidated(label, nil)
}

// PromptValidated asks for one value and keeps re-prompting, showing the
// validation error, until the input passes or the user backs out.
func PromptValidated(label string, validate func(string) error) (string, error) {
	finalModel, err := runProgram(newPromptModel(label, validate))
	if err != nil {
		return "", err
	}

	typed, ok := finalModel.(*promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected program result")
	}
	if !typed.submitted {
		return "", errors.NewStopProcessingError("input cancelled")
	}
	return typed.value, nil
}
