package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finseva/finseva/internal/intake"
)

// Update handles messages and updates the model (required by tea.Model interface)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ComparisonCompleteMsg:
		m.report = msg.Report
		m.err = nil
		m.navigateTo(SceneResults)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// handleKeyPress processes global and scene-specific keyboard shortcuts
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return m, tea.Quit
	}

	switch m.currentScene {
	case SceneHelp:
		if key.Matches(msg, key.NewBinding(key.WithKeys("esc", "?", "q"))) {
			m.navigateTo(m.previousScene)
		}
		return m, nil

	case SceneResults:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "e"))):
			m.navigateTo(SceneForm)
			return m, m.inputs[m.focus].Focus()
		case key.Matches(msg, key.NewBinding(key.WithKeys("?"))):
			m.navigateTo(SceneHelp)
		case key.Matches(msg, key.NewBinding(key.WithKeys("q"))):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "down"))):
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
		return m, m.setFocus(m.focus - 1)

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if !m.CanCompare() {
			return m, nil
		}
		return m, compareCmd(m.comparator, m.Form())

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		if m.report != nil {
			m.navigateTo(SceneResults)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("?"))):
		m.navigateTo(SceneHelp)
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards a message to the focused input and revalidates the form
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene != SceneForm {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.err = intake.ValidateForm(m.Form())
	return m, cmd
}

// setFocus moves focus to index i, wrapping around the form
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n

	cmds := make([]tea.Cmd, n)
	for j := range m.inputs {
		if j == m.focus {
			cmds[j] = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return tea.Batch(cmds...)
}

func (m *Model) navigateTo(scene Scene) {
	if scene == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
}
