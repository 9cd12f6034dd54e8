package session

import "testing"

func TestHappyPath_OriginKnown(t *testing.T) {
	s := New()
	if s.Phase() != Uninit {
		t.Fatalf("Phase = %v, want Uninit", s.Phase())
	}

	steps := []func() error{s.MarkOptionsLoaded, s.MarkSubscribed, s.MarkReady}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if !s.IsReady() {
		t.Fatal("IsReady = false after MarkReady")
	}
}

func TestHappyPath_AwaitingReady(t *testing.T) {
	s := New()
	mustOK(t, s.MarkOptionsLoaded())
	mustOK(t, s.MarkSubscribed())
	mustOK(t, s.MarkAwaitingReady())
	if s.Phase() != AwaitingReady {
		t.Fatalf("Phase = %v, want AwaitingReady", s.Phase())
	}
	mustOK(t, s.MarkReady())
}

func TestIllegalTransitions(t *testing.T) {
	s := New()
	if err := s.MarkSubscribed(); err == nil {
		t.Fatal("Uninit → Subscribed allowed")
	}
	if err := s.MarkReady(); err == nil {
		t.Fatal("Uninit → Ready allowed")
	}

	mustOK(t, s.MarkOptionsLoaded())
	if err := s.MarkOptionsLoaded(); err == nil {
		t.Fatal("OptionsLoaded → OptionsLoaded allowed")
	}
	if err := s.MarkAwaitingReady(); err == nil {
		t.Fatal("OptionsLoaded → AwaitingReady allowed")
	}

	mustOK(t, s.MarkSubscribed())
	mustOK(t, s.MarkReady())
	if err := s.MarkReady(); err == nil {
		t.Fatal("Ready is not terminal")
	}
	if err := s.MarkAwaitingReady(); err == nil {
		t.Fatal("Ready → AwaitingReady allowed")
	}
}

func TestOrigin(t *testing.T) {
	s := New()
	if s.Origin() != "" {
		t.Fatalf("Origin = %q, want empty", s.Origin())
	}
	s.SetOrigin("https://example.com")
	if s.Origin() != "https://example.com" {
		t.Fatalf("Origin = %q", s.Origin())
	}
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
