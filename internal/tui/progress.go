package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressFunc reports one unit of work: the zero-based index, the total
// count, and a label for the current item.
type ProgressFunc func(current, total int, name string)

type progressMsg struct {
	current, total int
	name           string
}

type workDoneMsg struct{}

type progressModel struct {
	title   string
	bar     progress.Model
	current int
	total   int
	name    string
}

func newProgressModel(title string) *progressModel {
	return &progressModel{
		title: title,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (m *progressModel) Init() tea.Cmd { return nil }

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.current = msg.current
		m.total = msg.total
		m.name = msg.name
	case workDoneMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = clamp(60, msg.Width-8, 20)
	}
	// Key presses are deliberately ignored: a running fetch cannot be
	// cancelled without losing the whole snapshot.
	return m, nil
}

func (m *progressModel) View() string {
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}

	status := fmt.Sprintf("%d/%d | %s", m.current+1, m.total, m.name)
	if m.total == 0 {
		status = "starting..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(m.title),
		m.bar.ViewAs(percent),
		optionStyle.Render(status),
		helpStyle.Render("Runs to completion; interrupting discards the fetch"),
	)
}

// RunProgress runs work in the background while showing a live progress bar.
// The work function receives a reporter to call before each item.
func RunProgress(title string, work func(report ProgressFunc) error) error {
	p := tea.NewProgram(newProgressModel(title))

	done := make(chan error, 1)
	go func() {
		err := work(func(current, total int, name string) {
			p.Send(progressMsg{current: current, total: total, name: name})
		})
		done <- err
		p.Send(workDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return <-done
}
