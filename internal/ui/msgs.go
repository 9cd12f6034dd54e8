package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cookiedeck/cookiedeck/internal/clip"
	"github.com/cookiedeck/cookiedeck/internal/cookie"
	"github.com/cookiedeck/cookiedeck/internal/perm"
	"github.com/cookiedeck/cookiedeck/internal/prefs"
	"github.com/cookiedeck/cookiedeck/internal/watch"
)

// Messages

// readyMsg fires once the watcher completes its first listing.
type readyMsg struct{}

// changeMsg carries one cookie change event from the watcher.
type changeMsg cookie.ChangeEvent

// eventsClosedMsg fires when the subscription channel closes.
type eventsClosedMsg struct{}

// reloadedMsg carries the result of a registry reload.
type reloadedMsg struct {
	records []cookie.Record
	err     error
}

// copiedMsg carries the result of a clipboard copy.
type copiedMsg struct {
	header string
	count  int
	err    error
}

// grantMsg carries the result of a permission request.
type grantMsg struct {
	pattern string
	granted bool
	err     error
}

// PrefsChangedMsg is sent into the program when the preferences file changes
// outside the session.
type PrefsChangedMsg prefs.Prefs

type transitionTickMsg struct{}

type flashClearMsg struct{}

// Commands

func waitReadyCmd(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Ready()
		return readyMsg{}
	}
}

// nextEventCmd delivers the next change event; the handler re-arms it, so
// events are processed strictly in delivery order, one per Update cycle.
func nextEventCmd(sub *watch.Subscription) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub.Events()
		if !ok {
			return eventsClosedMsg{}
		}
		return changeMsg(ev)
	}
}

func reloadCmd(m Model) tea.Cmd {
	ctx, reg, src, origin := m.ctx, m.reg, m.src, m.origin()
	return func() tea.Msg {
		records, err := reg.Reload(ctx, src, origin)
		return reloadedMsg{records: records, err: err}
	}
}

func copyCmd(records []cookie.Record) tea.Cmd {
	return func() tea.Msg {
		header, err := clip.CopyHeader(records)
		return copiedMsg{header: header, count: len(records), err: err}
	}
}

func grantCmd(gate *perm.Gate, pattern string) tea.Cmd {
	return func() tea.Msg {
		granted, err := gate.Request(pattern)
		return grantMsg{pattern: pattern, granted: granted, err: err}
	}
}

func transitionTick() tea.Cmd {
	return tea.Tick(transitionFrameInterval, func(time.Time) tea.Msg {
		return transitionTickMsg{}
	})
}

func flashClearCmd() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}
