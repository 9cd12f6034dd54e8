package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cookiedeck/cookiedeck/internal/perm"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The create form captures everything while open.
	if m.form != nil {
		return m.handleFormKey(msg)
	}

	if m.promptingOrigin {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.submitOrigin()
		}
		var cmd tea.Cmd
		m.originInput, cmd = m.originInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "c":
		if m.state == stateList && len(m.records) > 0 {
			return m, copyCmd(m.records)
		}
		return m, nil

	case "n":
		if m.ready() && m.state != stateNoPermission {
			f := newCreateForm(m.origin())
			m.form = &f
			return m, f.focusCmd()
		}
		return m, nil

	case "r":
		if m.ready() && m.state != stateNoPermission {
			return m, reloadCmd(m)
		}
		return m, nil

	case "t", "T":
		return m.cycleTheme()

	case "o":
		if m.state == stateNoPermission && m.origin() != "" {
			return m, grantCmd(m.gate, m.origin())
		}
		return m, nil

	case "a":
		if m.state == stateNoPermission {
			return m, grantCmd(m.gate, perm.AllOrigins)
		}
		return m, nil
	}

	return m, nil
}

// handleMouse processes mouse input. Clicking the title bar copies the
// header string for the listed cookies; on the no-permission view a title
// click does nothing.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y == 0 && m.state == stateList && len(m.records) > 0 {
		return m, copyCmd(m.records)
	}
	return m, nil
}
