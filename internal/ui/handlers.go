package ui

import (
	"errors"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
	"github.com/cookiedeck/cookiedeck/internal/perm"
	"github.com/cookiedeck/cookiedeck/internal/prefs"
)

// handleReady runs once the watcher has its first listing. The session
// reaches its terminal phase here and the first full render is triggered.
func (m Model) handleReady() (tea.Model, tea.Cmd) {
	if m.sess != nil && !m.sess.IsReady() {
		if err := m.sess.MarkReady(); err != nil {
			m.lastErr = err
			return m, nil
		}
	}

	if m.gate != nil && !m.gate.Check(m.origin()) {
		m.browserBusy = perm.BrowserRunning(m.browser)
		return m.requestState(stateNoPermission)
	}
	return m, reloadCmd(m)
}

// handleChange applies one change event. Events arriving before Ready are
// ignored: the origin is unknown, so there is nothing to apply them to. The
// command re-arms so the next event is picked up in delivery order.
func (m Model) handleChange(ev cookie.ChangeEvent) (tea.Model, tea.Cmd) {
	rearm := nextEventCmd(m.sub)
	if !m.ready() {
		return m, rearm
	}
	// No data flows past an ungranted gate; the grant's reload rebuilds
	// the registry from scratch anyway.
	if m.state == stateNoPermission {
		return m, rearm
	}

	m.reg.ApplyChange(ev)
	if ev.Cause == cookie.CauseOverwrite {
		// The paired insert event re-renders.
		return m, rearm
	}

	m.records = m.reg.Entries()
	target := stateList
	if len(m.records) == 0 {
		target = stateEmpty
	}
	model, cmd := m.requestState(target)
	return model, tea.Batch(cmd, rearm)
}

// handleReloaded applies a reload result. Failures keep the previous records
// and surface the error in the header rather than blanking a good list.
func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastErr = msg.err
		if len(m.records) == 0 {
			return m.requestState(stateEmpty)
		}
		return m, nil
	}

	m.lastErr = nil
	m.records = msg.records
	if len(msg.records) == 0 {
		return m.requestState(stateEmpty)
	}
	return m.requestState(stateList)
}

// handleGrant applies the outcome of a permission request. A grant triggers
// exactly one reload; the resulting renderAll happens in handleReloaded. A
// rejection leaves the view untouched.
func (m Model) handleGrant(msg grantMsg) (tea.Model, tea.Cmd) {
	if msg.granted {
		m.permNote = ""
		if m.wtch != nil {
			m.wtch.Poke()
		}
		return m, reloadCmd(m)
	}

	if errors.Is(msg.err, perm.ErrPromptUnsupported) {
		m.permNote = "This context cannot show a consent prompt. Grant access in the " +
			m.browserLabel + " settings, or set preauthorize = true in the config."
		return m, nil
	}
	if msg.err != nil {
		m.permNote = "Access check failed: " + msg.err.Error()
	}
	return m, nil
}

// requestState swaps the attached state root, animating when enabled. While
// a transition is in flight further view mutations are suppressed; the
// completion handler re-applies the latest state.
func (m Model) requestState(next viewState) (tea.Model, tea.Cmd) {
	if m.trans != nil {
		m.dirty = true
		m.state = next
		return m, nil
	}
	if next == m.state || !m.animations || !m.sized {
		m.state = next
		return m, nil
	}

	m.trans = newTransition(m.state, next, directionOf(m.state, next))
	m.state = next
	return m, transitionTick()
}

// handleTransitionTick advances the running animation one frame.
func (m Model) handleTransitionTick() (tea.Model, tea.Cmd) {
	if m.trans == nil {
		return m, nil
	}
	if m.trans.advance() {
		return m, transitionTick()
	}

	// Transition complete: old root detached, guard released.
	m.trans = nil
	if m.dirty {
		m.dirty = false
		m.records = m.reg.Entries()
	}
	return m, nil
}

func (m Model) setFlash(text string) (tea.Model, tea.Cmd) {
	m.flash = text
	return m, flashClearCmd()
}

// submitOrigin validates the prompt input and brings the session to Ready
// via the watcher's ready signal.
func (m Model) submitOrigin() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.originInput.Value())
	if raw == "" {
		return m, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		m.originInput.SetValue("")
		m.originInput.Placeholder = "invalid origin, try https://example.com"
		return m, nil
	}

	origin := strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
	m.promptingOrigin = false
	if m.sess != nil {
		m.sess.SetOrigin(origin)
	}
	if m.wtch != nil {
		m.wtch.SetOrigin(origin)
	}
	return m, nil
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Animations: m.animations})
	}
	return m, nil
}
