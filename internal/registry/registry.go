// Package registry holds the in-memory cookie set for the current session,
// keyed by fingerprint. It is rebuilt wholesale by Reload and mutated
// incrementally by ApplyChange.
package registry

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

// Source lists the host's cookies for an origin.
type Source interface {
	List(ctx context.Context, origin string) ([]cookie.Record, error)
}

// Registry maps fingerprints to cookie records.
//
// A write lock guards the map because reloads resolve on a background
// goroutine while change events land on the UI loop.
type Registry struct {
	mu      sync.RWMutex
	entries map[cookie.Fingerprint]cookie.Record

	// issued is bumped per Reload; a resolved reload older than the latest
	// issued generation is discarded so a slow stale listing cannot clobber
	// fresher data.
	issued  uint64
	applied uint64
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[cookie.Fingerprint]cookie.Record)}
}

// Reload fetches the origin's cookies from src and rebuilds the map. After a
// successful reload the map exactly reflects the listing: no duplicates, no
// stale entries. Returns the post-guard map contents in display order, so a
// reload superseded by a newer one hands back the newer data and a caller
// rendering the result can never resurrect a stale listing.
func (r *Registry) Reload(ctx context.Context, src Source, origin string) ([]cookie.Record, error) {
	r.mu.Lock()
	r.issued++
	gen := r.issued
	r.mu.Unlock()

	records, err := src.List(ctx, origin)
	if err != nil {
		return nil, err
	}
	cookie.Sort(records)

	r.mu.Lock()
	if gen < r.issued {
		// A newer reload was issued while this one was in flight; its
		// data wins, including over this return value.
		r.mu.Unlock()
		return r.Entries(), nil
	}
	r.applied = gen
	r.entries = make(map[cookie.Fingerprint]cookie.Record, len(records))
	for _, rec := range records {
		r.entries[cookie.FingerprintOf(rec)] = rec
	}
	r.mu.Unlock()
	return records, nil
}

// ApplyChange updates the map for one change event. Overwrite events are
// ignored: the host always follows them with an explicit insert or removal
// carrying the real state, so acting on them would double-apply. Removals of
// absent entries are tolerated.
func (r *Registry) ApplyChange(ev cookie.ChangeEvent) {
	if ev.Cause == cookie.CauseOverwrite {
		return
	}

	fp := cookie.FingerprintOf(ev.Cookie)
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.Removed {
		delete(r.entries, fp)
		return
	}
	r.entries[fp] = ev.Cookie
}

// Entries returns the current records in display order. Map iteration has no
// order, so ties on name are broken by domain then path to keep the view
// deterministic across refreshes.
func (r *Registry) Entries() []cookie.Record {
	r.mu.RLock()
	records := make([]cookie.Record, 0, len(r.entries))
	for _, rec := range r.entries {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		ad, bd := cookie.NormalizeDomain(a.Domain), cookie.NormalizeDomain(b.Domain)
		if ad != bd {
			return ad < bd
		}
		return a.Path < b.Path
	})
	return records
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Get looks up a record by fingerprint.
func (r *Registry) Get(fp cookie.Fingerprint) (cookie.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.entries[fp]
	return rec, ok
}
