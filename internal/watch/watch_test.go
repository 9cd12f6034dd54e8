package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

type fakeSource struct {
	mu      sync.Mutex
	records []cookie.Record
	err     error
}

func (f *fakeSource) set(records []cookie.Record) {
	f.mu.Lock()
	f.records = records
	f.mu.Unlock()
}

func (f *fakeSource) List(ctx context.Context, origin string) ([]cookie.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]cookie.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func rec(name, value string) cookie.Record {
	return cookie.Record{Name: name, Domain: "example.com", Path: "/", Value: value}
}

func drain(sub *Subscription) []cookie.ChangeEvent {
	var out []cookie.ChangeEvent
	for {
		select {
		case ev := <-sub.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestPoll_FirstListingPrimesWithoutEvents(t *testing.T) {
	src := &fakeSource{records: []cookie.Record{rec("sid", "abc")}}
	w := New(src, "https://example.com", time.Minute)
	sub := w.Subscribe()

	w.pollOnce(context.Background())

	select {
	case <-w.Ready():
	default:
		t.Fatal("Ready not signalled after first listing")
	}
	if events := drain(sub); len(events) != 0 {
		t.Fatalf("priming listing emitted %d events", len(events))
	}
}

func TestPoll_InsertAndRemove(t *testing.T) {
	src := &fakeSource{records: []cookie.Record{rec("sid", "abc")}}
	w := New(src, "https://example.com", time.Minute)
	sub := w.Subscribe()
	w.pollOnce(context.Background())

	src.set([]cookie.Record{rec("sid", "abc"), rec("theme", "dark")})
	w.pollOnce(context.Background())

	events := drain(sub)
	if len(events) != 1 || events[0].Removed || events[0].Cookie.Name != "theme" {
		t.Fatalf("insert events = %+v", events)
	}

	src.set([]cookie.Record{rec("theme", "dark")})
	w.pollOnce(context.Background())

	events = drain(sub)
	if len(events) != 1 || !events[0].Removed || events[0].Cookie.Name != "sid" {
		t.Fatalf("remove events = %+v", events)
	}
	if events[0].Cause != cookie.CauseExplicit {
		t.Fatalf("remove cause = %q, want explicit", events[0].Cause)
	}
}

func TestPoll_ValueChangeEmitsOverwriteThenInsert(t *testing.T) {
	src := &fakeSource{records: []cookie.Record{rec("sid", "old")}}
	w := New(src, "https://example.com", time.Minute)
	sub := w.Subscribe()
	w.pollOnce(context.Background())

	src.set([]cookie.Record{rec("sid", "new")})
	w.pollOnce(context.Background())

	events := drain(sub)
	if len(events) != 2 {
		t.Fatalf("change produced %d events, want 2: %+v", len(events), events)
	}
	if !events[0].Removed || events[0].Cause != cookie.CauseOverwrite || events[0].Cookie.Value != "old" {
		t.Fatalf("first event = %+v, want overwrite removal of old", events[0])
	}
	if events[1].Removed || events[1].Cause != cookie.CauseExplicit || events[1].Cookie.Value != "new" {
		t.Fatalf("second event = %+v, want explicit insert of new", events[1])
	}
}

func TestPoll_ExpiredRemovalCause(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	expiring := rec("sid", "abc")
	expiring.Expires = &past

	src := &fakeSource{records: []cookie.Record{expiring}}
	w := New(src, "https://example.com", time.Minute)
	sub := w.Subscribe()
	w.pollOnce(context.Background())

	src.set(nil)
	w.pollOnce(context.Background())

	events := drain(sub)
	if len(events) != 1 || events[0].Cause != cookie.CauseExpired {
		t.Fatalf("events = %+v, want one expired removal", events)
	}
}

func TestPoll_ErrorKeepsBaseline(t *testing.T) {
	src := &fakeSource{records: []cookie.Record{rec("sid", "abc")}}
	w := New(src, "https://example.com", time.Minute)
	sub := w.Subscribe()
	w.pollOnce(context.Background())

	src.mu.Lock()
	src.err = errors.New("locked")
	src.mu.Unlock()
	w.pollOnce(context.Background())

	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()
	w.pollOnce(context.Background())

	if events := drain(sub); len(events) != 0 {
		t.Fatalf("failed poll produced events: %+v", events)
	}
}

func TestPoll_NoOriginNoReady(t *testing.T) {
	src := &fakeSource{records: []cookie.Record{rec("sid", "abc")}}
	w := New(src, "", time.Minute)
	w.pollOnce(context.Background())

	select {
	case <-w.Ready():
		t.Fatal("Ready signalled with no origin")
	default:
	}

	w.SetOrigin("https://example.com")
	w.pollOnce(context.Background())
	select {
	case <-w.Ready():
	default:
		t.Fatal("Ready not signalled after origin set")
	}
}

func TestSetOrigin_DiscardsBaseline(t *testing.T) {
	src := &fakeSource{records: []cookie.Record{rec("sid", "abc")}}
	w := New(src, "https://example.com", time.Minute)
	sub := w.Subscribe()
	w.pollOnce(context.Background())

	w.SetOrigin("https://other.com")
	src.set([]cookie.Record{rec("other", "x")})
	w.pollOnce(context.Background())

	// First listing for the new origin primes; no synthetic removals for the
	// old origin's cookies.
	if events := drain(sub); len(events) != 0 {
		t.Fatalf("origin switch produced events: %+v", events)
	}
}

func TestSubscription_CancelClosesChannel(t *testing.T) {
	src := &fakeSource{}
	w := New(src, "https://example.com", time.Minute)
	sub := w.Subscribe()

	sub.Cancel()
	sub.Cancel() // second cancel is a no-op

	if _, ok := <-sub.Events(); ok {
		t.Fatal("cancelled subscription channel still open")
	}

	// Publishing after cancel must not panic on the closed channel.
	w.pollOnce(context.Background())
	src.set([]cookie.Record{rec("sid", "abc")})
	w.pollOnce(context.Background())
}

func TestDiff_DeterministicOrder(t *testing.T) {
	prev := map[cookie.Fingerprint]cookie.Record{}
	next := map[cookie.Fingerprint]cookie.Record{}
	for _, r := range []cookie.Record{rec("b", "1"), rec("a", "1"), rec("c", "1")} {
		next[cookie.FingerprintOf(r)] = r
	}

	first := diff(prev, next)
	for i := 0; i < 10; i++ {
		again := diff(prev, next)
		if len(again) != len(first) {
			t.Fatalf("diff length varied: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j].Cookie.Name != first[j].Cookie.Name {
				t.Fatalf("diff order varied at %d: %q vs %q", j, again[j].Cookie.Name, first[j].Cookie.Name)
			}
		}
	}
}
