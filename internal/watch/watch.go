// Package watch turns the polled cookie store into an ordered stream of
// change events. A background goroutine re-lists the store at a fixed
// cadence, diffs consecutive snapshots by fingerprint, and fans the resulting
// events out to subscribers.
package watch

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
	"github.com/cookiedeck/cookiedeck/internal/registry"
)

const defaultInterval = 2 * time.Second

// subBuffer bounds each subscriber channel. A subscriber that falls this far
// behind loses oldest-first; the registry converges again on the next reload.
const subBuffer = 128

// Watcher polls a cookie source and emits change events.
type Watcher struct {
	src      registry.Source
	interval time.Duration

	mu     sync.Mutex
	origin string
	prev   map[cookie.Fingerprint]cookie.Record
	primed bool
	subs   map[int]*Subscription
	nextID int

	ready     chan struct{}
	readyOnce sync.Once
	pokeC     chan struct{}
}

// Subscription receives change events until cancelled.
type Subscription struct {
	w  *Watcher
	id int
	ch chan cookie.ChangeEvent
}

// Events returns the subscription's event channel. It is closed by Cancel.
func (s *Subscription) Events() <-chan cookie.ChangeEvent { return s.ch }

// Cancel detaches the subscription and closes its channel. Safe to call once.
func (s *Subscription) Cancel() {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	if _, ok := s.w.subs[s.id]; !ok {
		return
	}
	delete(s.w.subs, s.id)
	close(s.ch)
}

// New returns a watcher for src. origin may be empty when the session's
// origin is not yet known; events start flowing after SetOrigin.
func New(src registry.Source, origin string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{
		src:      src,
		interval: interval,
		origin:   origin,
		subs:     make(map[int]*Subscription),
		ready:    make(chan struct{}),
		pokeC:    make(chan struct{}, 1),
	}
}

// Subscribe registers a new event consumer.
func (w *Watcher) Subscribe() *Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	sub := &Subscription{w: w, id: w.nextID, ch: make(chan cookie.ChangeEvent, subBuffer)}
	w.subs[sub.id] = sub
	return sub
}

// Ready is closed after the first successful listing for a known origin.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// SetOrigin supplies the origin after startup and forces an immediate poll.
// The current baseline is discarded so the next listing primes fresh.
func (w *Watcher) SetOrigin(origin string) {
	w.mu.Lock()
	w.origin = origin
	w.prev = nil
	w.primed = false
	w.mu.Unlock()
	w.poke()
}

// Poke forces a poll ahead of the next tick, e.g. right after a reload so the
// watcher's baseline matches the registry.
func (w *Watcher) Poke() { w.poke() }

func (w *Watcher) poke() {
	select {
	case w.pokeC <- struct{}{}:
	default:
	}
}

// Start launches the poll loop. It returns immediately; the loop stops when
// ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			w.pollOnce(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case <-w.pokeC:
			}
		}
	}()
}

func (w *Watcher) pollOnce(ctx context.Context) {
	w.mu.Lock()
	origin := w.origin
	w.mu.Unlock()
	if origin == "" {
		return
	}

	records, err := w.src.List(ctx, origin)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("cookie poll failed: %v", err)
		}
		return
	}

	next := make(map[cookie.Fingerprint]cookie.Record, len(records))
	for _, rec := range records {
		next[cookie.FingerprintOf(rec)] = rec
	}

	w.mu.Lock()
	prev, primed := w.prev, w.primed
	w.prev = next
	w.primed = true
	w.mu.Unlock()

	if primed {
		for _, ev := range diff(prev, next) {
			w.publish(ev)
		}
	}
	w.readyOnce.Do(func() { close(w.ready) })
}

// diff computes the events that turn prev into next: removals first, then
// value changes (as an overwrite removal followed by an explicit insert, the
// way Chromium reports updates), then inserts. Each group is ordered by
// fingerprint so a given delta always produces the same event sequence.
func diff(prev, next map[cookie.Fingerprint]cookie.Record) []cookie.ChangeEvent {
	var removed, changed, added []cookie.Fingerprint
	for fp := range prev {
		if _, ok := next[fp]; !ok {
			removed = append(removed, fp)
		}
	}
	for fp, rec := range next {
		old, ok := prev[fp]
		if !ok {
			added = append(added, fp)
			continue
		}
		if !sameRecord(old, rec) {
			changed = append(changed, fp)
		}
	}
	sortFPs(removed)
	sortFPs(changed)
	sortFPs(added)

	events := make([]cookie.ChangeEvent, 0, len(removed)+2*len(changed)+len(added))
	now := time.Now()
	for _, fp := range removed {
		cause := cookie.CauseExplicit
		if prev[fp].Expired(now) {
			cause = cookie.CauseExpired
		}
		events = append(events, cookie.ChangeEvent{Cookie: prev[fp], Removed: true, Cause: cause})
	}
	for _, fp := range changed {
		events = append(events,
			cookie.ChangeEvent{Cookie: prev[fp], Removed: true, Cause: cookie.CauseOverwrite},
			cookie.ChangeEvent{Cookie: next[fp], Cause: cookie.CauseExplicit},
		)
	}
	for _, fp := range added {
		events = append(events, cookie.ChangeEvent{Cookie: next[fp], Cause: cookie.CauseExplicit})
	}
	return events
}

func sameRecord(a, b cookie.Record) bool {
	if a.Value != b.Value || a.Secure != b.Secure || a.HTTPOnly != b.HTTPOnly || a.SameSite != b.SameSite {
		return false
	}
	switch {
	case a.Expires == nil && b.Expires == nil:
		return true
	case a.Expires == nil || b.Expires == nil:
		return false
	default:
		return a.Expires.Equal(*b.Expires)
	}
}

func sortFPs(fps []cookie.Fingerprint) {
	sort.Slice(fps, func(i, j int) bool { return fps[i] < fps[j] })
}

// publish delivers ev to every subscriber. A full subscriber drops its oldest
// event to make room, preserving delivery order for what remains.
func (w *Watcher) publish(ev cookie.ChangeEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sub := range w.subs {
		select {
		case sub.ch <- ev:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- ev:
			default:
			}
		}
	}
}
