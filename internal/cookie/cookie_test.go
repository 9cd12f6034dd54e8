package cookie

import (
	"testing"
	"time"
)

func TestFingerprint_IdentityFieldsOnly(t *testing.T) {
	a := Record{Name: "sid", Domain: "example.com", Path: "/", Value: "one"}
	b := Record{Name: "sid", Domain: "example.com", Path: "/", Value: "two", Secure: true}

	if FingerprintOf(a) != FingerprintOf(b) {
		t.Fatalf("fingerprints differ for same identity: %q vs %q", FingerprintOf(a), FingerprintOf(b))
	}
}

func TestFingerprint_DomainNormalized(t *testing.T) {
	a := Record{Name: "sid", Domain: ".Example.com", Path: "/"}
	b := Record{Name: "sid", Domain: "example.com", Path: "/"}

	if FingerprintOf(a) != FingerprintOf(b) {
		t.Fatalf("fingerprints differ across domain spellings: %q vs %q", FingerprintOf(a), FingerprintOf(b))
	}
}

func TestFingerprint_DistinctIdentitiesNeverCollide(t *testing.T) {
	base := Record{Name: "sid", Domain: "example.com", Path: "/"}
	variants := []Record{
		{Name: "sid2", Domain: "example.com", Path: "/"},
		{Name: "sid", Domain: "example.org", Path: "/"},
		{Name: "sid", Domain: "example.com", Path: "/app"},
	}
	for _, v := range variants {
		if FingerprintOf(base) == FingerprintOf(v) {
			t.Fatalf("fingerprint collision between %+v and %+v", base, v)
		}
	}
}

func TestSort_CaseInsensitiveStable(t *testing.T) {
	records := []Record{
		{Name: "Beta"},
		{Name: "alpha"},
		{Name: "Gamma"},
	}
	Sort(records)

	want := []string{"alpha", "Beta", "Gamma"}
	for i, name := range want {
		if records[i].Name != name {
			t.Fatalf("records[%d].Name = %q, want %q", i, records[i].Name, name)
		}
	}
}

func TestSort_TiesKeepOriginalOrder(t *testing.T) {
	records := []Record{
		{Name: "sid", Domain: "b.example.com"},
		{Name: "SID", Domain: "a.example.com"},
		{Name: "sid", Domain: "c.example.com"},
	}
	Sort(records)

	wantDomains := []string{"b.example.com", "a.example.com", "c.example.com"}
	for i, domain := range wantDomains {
		if records[i].Domain != domain {
			t.Fatalf("records[%d].Domain = %q, want %q", i, records[i].Domain, domain)
		}
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if (Record{}).Expired(now) {
		t.Fatal("session cookie reported expired")
	}
	if !(Record{Expires: &past}).Expired(now) {
		t.Fatal("past expiry not reported expired")
	}
	if (Record{Expires: &future}).Expired(now) {
		t.Fatal("future expiry reported expired")
	}
}

func TestHeaderValue(t *testing.T) {
	records := []Record{
		{Name: "sid", Value: "abc"},
		{Name: "theme", Value: "dark"},
		{Name: "", Value: "dropped"},
	}
	if got, want := HeaderValue(records), "sid=abc; theme=dark"; got != want {
		t.Fatalf("HeaderValue = %q, want %q", got, want)
	}
	if got := HeaderValue(nil); got != "" {
		t.Fatalf("HeaderValue(nil) = %q, want empty", got)
	}
}

func TestSetCookieLine(t *testing.T) {
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Record{
		Name:     "sid",
		Value:    "abc",
		Domain:   ".Example.com",
		Path:     "/app",
		Secure:   true,
		HTTPOnly: true,
		SameSite: SameSiteLax,
		Expires:  &expires,
	}
	want := "sid=abc; Domain=example.com; Path=/app; Expires=Sun, 01 Mar 2026 12:00:00 GMT; Secure; HttpOnly; SameSite=Lax"
	if got := SetCookieLine(r); got != want {
		t.Fatalf("SetCookieLine = %q, want %q", got, want)
	}
}
