package store

import (
	"testing"
	"time"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

func TestHostMatchesDomain(t *testing.T) {
	cases := []struct {
		host, domain string
		want         bool
	}{
		{"example.com", "example.com", true},
		{"app.example.com", "example.com", true},
		{"example.com", ".Example.com", true},
		{"example.com", "app.example.com", false},
		{"badexample.com", "example.com", false},
		{"", "example.com", false},
		{"example.com", "", false},
	}
	for _, c := range cases {
		if got := hostMatchesDomain(c.host, c.domain); got != c.want {
			t.Errorf("hostMatchesDomain(%q, %q) = %v, want %v", c.host, c.domain, got, c.want)
		}
	}
}

func TestFilterRecords_DropsExpiredAndForeign(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	records := []cookie.Record{
		{Name: "keep", Domain: "example.com", Path: "/"},
		{Name: "expired", Domain: "example.com", Path: "/", Expires: &past},
		{Name: "foreign", Domain: "other.com", Path: "/"},
		{Name: "", Domain: "example.com", Path: "/"},
	}

	out := filterRecords(records, "example.com", "https")
	if len(out) != 1 || out[0].Name != "keep" {
		t.Fatalf("filterRecords = %+v, want only keep", out)
	}
}

func TestFilterRecords_SecureNeedsHTTPS(t *testing.T) {
	records := []cookie.Record{
		{Name: "sid", Domain: "example.com", Path: "/", Secure: true},
	}
	if out := filterRecords(records, "example.com", "http"); len(out) != 0 {
		t.Fatalf("secure cookie leaked to http origin: %+v", out)
	}
	if out := filterRecords(records, "example.com", "https"); len(out) != 1 {
		t.Fatalf("secure cookie missing for https origin: %+v", out)
	}
}

func TestFilterRecords_AllOriginsKeepsEverything(t *testing.T) {
	records := []cookie.Record{
		{Name: "a", Domain: "example.com"},
		{Name: "b", Domain: "other.com", Secure: true},
	}
	out := filterRecords(records, "", "")
	if len(out) != 2 {
		t.Fatalf("filterRecords without host = %d records, want 2", len(out))
	}
	if out[0].Path != "/" {
		t.Fatalf("empty path not defaulted: %q", out[0].Path)
	}
}

func TestOriginHost(t *testing.T) {
	host, scheme, err := originHost("https://App.Example.com/login")
	if err != nil {
		t.Fatalf("originHost: %v", err)
	}
	if host != "app.example.com" || scheme != "https" {
		t.Fatalf("originHost = %q/%q", host, scheme)
	}

	if host, _, err := originHost(AllOrigins); err != nil || host != "" {
		t.Fatalf("originHost(AllOrigins) = %q, %v", host, err)
	}
	if _, _, err := originHost("example.com"); err == nil {
		t.Fatal("schemeless origin accepted")
	}
}

func TestNew_UnknownBrowser(t *testing.T) {
	if _, err := New("netscape", "", ""); err == nil {
		t.Fatal("unknown browser accepted")
	}
	s, err := New("", "", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Browser() != BrowserChrome {
		t.Fatalf("default browser = %q, want chrome", s.Browser())
	}
}
