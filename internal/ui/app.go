// Package ui implements the cookiedeck terminal front-end with Bubble Tea.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
	"github.com/cookiedeck/cookiedeck/internal/perm"
	"github.com/cookiedeck/cookiedeck/internal/prefs"
	"github.com/cookiedeck/cookiedeck/internal/registry"
	"github.com/cookiedeck/cookiedeck/internal/session"
	"github.com/cookiedeck/cookiedeck/internal/store"
	"github.com/cookiedeck/cookiedeck/internal/watch"
)

// viewState is the single visible state root. Exactly one is attached at any
// time; transitions swap them.
type viewState int

const (
	stateList viewState = iota
	stateEmpty
	stateNoPermission
)

const flashDuration = 1500 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context  context.Context
	Session  *session.Session
	Gate     *perm.Gate
	Registry *registry.Registry
	Source   registry.Source
	Watcher  *watch.Watcher

	Browser      store.Browser
	BrowserLabel string // shown on the no-permission view
	ThemeName    string
	Animations   bool
	PrefsPath    string

	// OnProgram exposes the running program so callers can inject messages,
	// e.g. PrefsChangedMsg from a preferences watcher.
	OnProgram func(*tea.Program)
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx  context.Context
	sess *session.Session
	gate *perm.Gate
	reg  *registry.Registry
	src  registry.Source
	wtch *watch.Watcher
	sub  *watch.Subscription

	browser      store.Browser
	browserLabel string
	prefsPath    string

	theme      Theme
	animations bool

	width  int
	height int
	sized  bool

	// View state
	state   viewState
	records []cookie.Record // view model behind the list root
	lastErr error           // last fetch failure, shown in the header

	// Transition in flight; non-nil suppresses view mutations.
	trans *transition
	dirty bool

	// Title flash (copy confirmations etc.)
	flash string

	// permNote carries instructive text on the no-permission view, e.g. for
	// the unsupported-prompt context.
	permNote string

	// browserBusy caches the running-browser check taken when the
	// no-permission view is entered; View must stay pure, so the process
	// scan never happens at render time.
	browserBusy bool

	// Origin prompt, shown while the session awaits an origin.
	originInput     textinput.Model
	promptingOrigin bool

	// Create-form overlay.
	form *createForm

	quitting bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "https://example.com"
	input.CharLimit = 256
	input.Width = 48

	prompting := opts.Session != nil && opts.Session.Origin() == ""
	if prompting {
		input.Focus()
	}

	var sub *watch.Subscription
	if opts.Watcher != nil {
		sub = opts.Watcher.Subscribe()
	}

	return Model{
		ctx:             ctx,
		sess:            opts.Session,
		gate:            opts.Gate,
		reg:             opts.Registry,
		src:             opts.Source,
		wtch:            opts.Watcher,
		sub:             sub,
		browser:         opts.Browser,
		browserLabel:    opts.BrowserLabel,
		prefsPath:       prefsPath,
		theme:           GetTheme(themeName),
		animations:      opts.Animations,
		state:           stateEmpty,
		originInput:     input,
		promptingOrigin: prompting,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	if m.wtch != nil {
		cmds = append(cmds, waitReadyCmd(m.wtch))
	}
	if m.sub != nil {
		cmds = append(cmds, nextEventCmd(m.sub))
	}
	if m.sess != nil && m.sess.Origin() == "" {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sized = true
		return m, nil

	case readyMsg:
		return m.handleReady()

	case changeMsg:
		return m.handleChange(cookie.ChangeEvent(msg))

	case eventsClosedMsg:
		return m, nil

	case reloadedMsg:
		return m.handleReloaded(msg)

	case copiedMsg:
		if msg.err != nil {
			return m.setFlash("copy failed: " + msg.err.Error())
		}
		return m.setFlash(pluralize(msg.count, "cookie") + " copied")

	case grantMsg:
		return m.handleGrant(msg)

	case PrefsChangedMsg:
		p := prefs.Prefs(msg)
		m.theme = GetTheme(p.Theme)
		m.animations = p.Animations
		return m, nil

	case transitionTickMsg:
		return m.handleTransitionTick()

	case flashClearMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.sized {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.form != nil {
		b.WriteString(m.form.render(m.theme, m.width))
	} else if m.promptingOrigin {
		b.WriteString(m.renderOriginPrompt())
	} else {
		b.WriteString(m.renderContent())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderContent renders the single attached state root, or the transition
// composite while a swap is animating.
func (m Model) renderContent() string {
	if m.trans != nil {
		return m.trans.render(m, m.width)
	}
	return m.renderState(m.state)
}

func (m Model) renderState(s viewState) string {
	switch s {
	case stateList:
		return m.renderList()
	case stateNoPermission:
		return m.renderNoPermission()
	default:
		return m.renderEmpty()
	}
}

func (m Model) ready() bool {
	return m.sess != nil && m.sess.IsReady()
}

func (m Model) origin() string {
	if m.sess == nil {
		return ""
	}
	return m.sess.Origin()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if opts.OnProgram != nil {
		opts.OnProgram(p)
	}
	_, err := p.Run()
	return err
}
