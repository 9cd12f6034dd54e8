// Package store reads cookies for an origin straight from an installed
// browser's on-disk cookie database. It is the host cookie source behind the
// registry: Chromium-family stores are SQLite databases with encrypted
// values, Firefox stores are plain SQLite.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

// Browser identifies a cookie store family.
type Browser string

const (
	BrowserChrome   Browser = "chrome"
	BrowserChromium Browser = "chromium"
	BrowserEdge     Browser = "edge"
	BrowserBrave    Browser = "brave"
	BrowserFirefox  Browser = "firefox"
)

// ErrUnknownBrowser is returned for a browser name New does not recognize.
var ErrUnknownBrowser = errors.New("store: unknown browser")

// ErrStoreNotFound is returned when no cookie database exists for the
// configured browser and profile.
var ErrStoreNotFound = errors.New("store: cookie store not found")

// AllOrigins lists every cookie in the store regardless of host.
const AllOrigins = "<all_urls>"

// Store reads a single browser's cookie database.
type Store struct {
	browser Browser
	profile string
	dbPath  string // explicit override; skips path resolution
}

// New returns a Store for the named browser. profile selects a profile by
// name or directory; an empty profile uses the default. dbPath, when set,
// points directly at a cookie database and bypasses discovery.
func New(browser string, profile string, dbPath string) (*Store, error) {
	b := Browser(strings.ToLower(strings.TrimSpace(browser)))
	switch b {
	case BrowserChrome, BrowserChromium, BrowserEdge, BrowserBrave, BrowserFirefox:
	case "":
		b = BrowserChrome
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBrowser, browser)
	}
	return &Store{browser: b, profile: profile, dbPath: dbPath}, nil
}

// Browser returns the store's browser family.
func (s *Store) Browser() Browser { return s.browser }

// List returns the store's cookies matching origin, or every cookie when
// origin is AllOrigins. Expired cookies are dropped.
func (s *Store) List(ctx context.Context, origin string) ([]cookie.Record, error) {
	host, scheme, err := originHost(origin)
	if err != nil {
		return nil, err
	}

	path, err := s.DBPath()
	if err != nil {
		return nil, err
	}

	var records []cookie.Record
	if s.browser == BrowserFirefox {
		records, err = readFirefox(ctx, path)
	} else {
		records, err = readChromium(ctx, s.browser, path)
	}
	if err != nil {
		return nil, err
	}
	return filterRecords(records, host, scheme), nil
}

// DBPath resolves the cookie database path for the store.
func (s *Store) DBPath() (string, error) {
	if s.dbPath != "" {
		return s.dbPath, nil
	}
	if s.browser == BrowserFirefox {
		return firefoxCookieDB(s.profile)
	}
	return chromiumCookieDB(s.browser, s.profile)
}

// originHost extracts the host and scheme from an origin URL. AllOrigins and
// the empty string match everything.
func originHost(origin string) (host, scheme string, err error) {
	origin = strings.TrimSpace(origin)
	if origin == "" || origin == AllOrigins {
		return "", "", nil
	}
	u, err := url.Parse(origin)
	if err != nil {
		return "", "", fmt.Errorf("store: parse origin: %w", err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return "", "", fmt.Errorf("store: origin %q must include scheme and host", origin)
	}
	return cookie.NormalizeDomain(u.Hostname()), strings.ToLower(u.Scheme), nil
}
