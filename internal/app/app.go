package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cookiedeck/cookiedeck/internal/config"
	"github.com/cookiedeck/cookiedeck/internal/perm"
	"github.com/cookiedeck/cookiedeck/internal/prefs"
	"github.com/cookiedeck/cookiedeck/internal/registry"
	"github.com/cookiedeck/cookiedeck/internal/session"
	"github.com/cookiedeck/cookiedeck/internal/store"
	"github.com/cookiedeck/cookiedeck/internal/ui"
	"github.com/cookiedeck/cookiedeck/internal/watch"
)

const (
	defaultPollInterval = 2 * time.Second
	prefsWatchInterval  = time.Second
)

// Options configure the cookiedeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/cookiedeck/prefs.toml
	Browser    string // overrides the configured browser
	Origin     string // overrides the configured origin
	PollEvery  int    // seconds; zero uses the configured cadence
}

// Run boots the cookiedeck TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Browser != "" {
		cfg.Browser = opts.Browser
	}
	if opts.Origin != "" {
		cfg.Origin = opts.Origin
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	sess := session.New()
	if err := sess.MarkOptionsLoaded(); err != nil {
		return err
	}
	sess.SetOrigin(cfg.Origin)

	st, err := store.New(cfg.Browser, cfg.Profile, cfg.CookieDBPath)
	if err != nil {
		return fmt.Errorf("open cookie store: %w", err)
	}

	gate := perm.New(st)
	if cfg.Preauthorize {
		gate.Grant(perm.AllOrigins)
	}

	reg := registry.New()

	interval := defaultPollInterval
	if cfg.PollSeconds > 0 {
		interval = time.Duration(cfg.PollSeconds) * time.Second
	}
	watcher := watch.New(st, cfg.Origin, interval)
	watcher.Start(ctx)

	if err := sess.MarkSubscribed(); err != nil {
		return err
	}
	// With a configured origin the first poll delivers readiness on its
	// own; otherwise the UI prompts and readiness waits for the origin.
	if cfg.Origin == "" {
		if err := sess.MarkAwaitingReady(); err != nil {
			return err
		}
	}

	uiOpts := ui.Options{
		Context:      ctx,
		Session:      sess,
		Gate:         gate,
		Registry:     reg,
		Source:       st,
		Watcher:      watcher,
		Browser:      st.Browser(),
		BrowserLabel: browserLabel(st.Browser()),
		ThemeName:    userPrefs.Theme,
		Animations:   userPrefs.Animations,
		PrefsPath:    opts.PrefsPath,
		OnProgram: func(p *tea.Program) {
			prefs.Watch(ctx, opts.PrefsPath, prefsWatchInterval, func(next prefs.Prefs) {
				p.Send(ui.PrefsChangedMsg(next))
			})
		},
	}
	return ui.Run(uiOpts)
}

// browserLabel renders the browser family for display.
func browserLabel(b store.Browser) string {
	switch b {
	case store.BrowserChrome:
		return "Chrome"
	case store.BrowserChromium:
		return "Chromium"
	case store.BrowserEdge:
		return "Edge"
	case store.BrowserBrave:
		return "Brave"
	case store.BrowserFirefox:
		return "Firefox"
	default:
		return string(b)
	}
}
