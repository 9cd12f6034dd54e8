// Package perm gates access to the browser cookie store. A grant is session
// scoped: Check consults the in-memory grant set plus the store's actual
// readability, Request records consent after re-verifying the capability.
// Grant persistence is deliberately left to the host environment.
package perm

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/cookiedeck/cookiedeck/internal/store"
)

// AllOrigins grants blanket access to every origin in the store.
const AllOrigins = store.AllOrigins

// ErrPromptUnsupported is returned by Request when the process has no
// interactive terminal to carry a consent prompt. Callers should show
// instructive text instead of retrying; the condition does not clear on its
// own.
var ErrPromptUnsupported = errors.New("perm: consent prompt unsupported in this context")

// PathResolver locates the cookie database the gate protects.
type PathResolver interface {
	DBPath() (string, error)
}

// Gate answers permission checks for one cookie store.
type Gate struct {
	resolver    PathResolver
	interactive bool

	mu     sync.Mutex
	grants map[string]struct{}
}

// New builds a gate over resolver. Interactivity is detected from the
// terminal; NewWithInteractive pins it for tests.
func New(resolver PathResolver) *Gate {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsTerminal(os.Stdout.Fd())
	return NewWithInteractive(resolver, interactive)
}

// NewWithInteractive builds a gate with an explicit interactivity flag.
func NewWithInteractive(resolver PathResolver, interactive bool) *Gate {
	return &Gate{
		resolver:    resolver,
		interactive: interactive,
		grants:      make(map[string]struct{}),
	}
}

// Check reports whether cookies for origin can be read right now: a grant
// covers the origin and the underlying store file is readable. No side
// effects.
func (g *Gate) Check(origin string) bool {
	if !g.hasGrant(origin) {
		return false
	}
	return g.readable() == nil
}

// Request records consent for pattern (a specific origin or AllOrigins) after
// verifying the store is actually readable. The interactive consent itself is
// the caller's: the gate is invoked once the user has accepted. In a
// non-interactive context it fails with ErrPromptUnsupported.
func (g *Gate) Request(pattern string) (bool, error) {
	if !g.interactive {
		return false, ErrPromptUnsupported
	}
	if err := g.readable(); err != nil {
		return false, fmt.Errorf("perm: cookie store inaccessible: %w", err)
	}

	g.mu.Lock()
	g.grants[normalizePattern(pattern)] = struct{}{}
	g.mu.Unlock()
	return true, nil
}

// Grant preseeds a grant without a prompt, for configurations that declare
// consent up front.
func (g *Gate) Grant(pattern string) {
	g.mu.Lock()
	g.grants[normalizePattern(pattern)] = struct{}{}
	g.mu.Unlock()
}

// Revoke drops a grant. Revoking AllOrigins clears everything.
func (g *Gate) Revoke(pattern string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	pattern = normalizePattern(pattern)
	if pattern == AllOrigins {
		g.grants = make(map[string]struct{})
		return
	}
	delete(g.grants, pattern)
}

func (g *Gate) hasGrant(origin string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.grants[AllOrigins]; ok {
		return true
	}
	_, ok := g.grants[normalizePattern(origin)]
	return ok
}

// readable verifies the store file exists and opens for reading.
func (g *Gate) readable() error {
	path, err := g.resolver.DBPath()
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func normalizePattern(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	if pattern == AllOrigins {
		return pattern
	}
	return strings.ToLower(strings.TrimSuffix(pattern, "/"))
}
