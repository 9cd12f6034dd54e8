// Package session tracks the startup lifecycle of one popup session and the
// origin it inspects. The lifecycle is a strict one-way machine:
//
//	Uninit → OptionsLoaded → Subscribed → (Ready | AwaitingReady → Ready)
//
// AwaitingReady covers the case where the session starts without knowing its
// origin and must wait for one to be supplied. Change events that arrive
// before Ready are ignored by consumers; there is nothing to apply them to.
package session

import (
	"fmt"
	"sync"
)

// Phase is a session lifecycle phase.
type Phase int

const (
	Uninit Phase = iota
	OptionsLoaded
	Subscribed
	AwaitingReady
	Ready
)

func (p Phase) String() string {
	switch p {
	case Uninit:
		return "uninit"
	case OptionsLoaded:
		return "options-loaded"
	case Subscribed:
		return "subscribed"
	case AwaitingReady:
		return "awaiting-ready"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session is the explicit state passed to all handlers; there are no ambient
// globals. Ready is terminal.
type Session struct {
	mu     sync.Mutex
	phase  Phase
	origin string
}

// New returns a session in Uninit.
func New() *Session {
	return &Session{phase: Uninit}
}

// MarkOptionsLoaded records that persisted options were loaded and applied.
func (s *Session) MarkOptionsLoaded() error {
	return s.advance(Uninit, OptionsLoaded)
}

// MarkSubscribed records that all event subscriptions are attached.
func (s *Session) MarkSubscribed() error {
	return s.advance(OptionsLoaded, Subscribed)
}

// MarkAwaitingReady records that the session is subscribed but its origin is
// not yet known.
func (s *Session) MarkAwaitingReady() error {
	return s.advance(Subscribed, AwaitingReady)
}

// MarkReady records the terminal Ready phase, from either Subscribed (origin
// known at startup) or AwaitingReady (origin supplied later).
func (s *Session) MarkReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Subscribed && s.phase != AwaitingReady {
		return fmt.Errorf("session: illegal transition %s → %s", s.phase, Ready)
	}
	s.phase = Ready
	return nil
}

func (s *Session) advance(from, to Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != from {
		return fmt.Errorf("session: illegal transition %s → %s", s.phase, to)
	}
	s.phase = to
	return nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// IsReady reports whether the session reached its terminal phase.
func (s *Session) IsReady() bool {
	return s.Phase() == Ready
}

// SetOrigin records the origin under inspection.
func (s *Session) SetOrigin(origin string) {
	s.mu.Lock()
	s.origin = origin
	s.mu.Unlock()
}

// Origin returns the origin under inspection; empty until known.
func (s *Session) Origin() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.origin
}
