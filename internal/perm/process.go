package perm

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/cookiedeck/cookiedeck/internal/store"
)

var browserProcessNames = map[store.Browser][]string{
	store.BrowserChrome:   {"chrome", "google-chrome", "Google Chrome"},
	store.BrowserChromium: {"chromium", "chromium-browser"},
	store.BrowserEdge:     {"msedge", "microsoft-edge"},
	store.BrowserBrave:    {"brave", "brave-browser"},
	store.BrowserFirefox:  {"firefox", "firefox-bin"},
}

// BrowserRunning reports whether a process for the given browser family is
// currently running. Used for the advisory note on the no-permission view: a
// running browser flushes cookie writes lazily, so the on-disk store can lag
// the live session.
func BrowserRunning(b store.Browser) bool {
	procs, err := process.Processes()
	if err != nil {
		return false
	}
	names := browserProcessNames[b]
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		name = strings.ToLower(name)
		for _, want := range names {
			if name == strings.ToLower(want) {
				return true
			}
		}
	}
	return false
}
