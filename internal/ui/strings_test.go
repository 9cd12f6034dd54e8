package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exact", 5, "exact"},
		{"long", "averylongvalue", 8, "avery..."},
		{"tiny_limit", "abcdef", 2, "ab"},
		{"zero", "abc", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("https://accounts.example.com/signin", 20)
	if len([]rune(got)) > 20 {
		t.Fatalf("truncateMiddle too long: %q", got)
	}
	if got[:5] != "https" {
		t.Fatalf("prefix lost: %q", got)
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "cookie"); got != "1 cookie" {
		t.Fatalf("pluralize(1) = %q", got)
	}
	if got := pluralize(2, "cookie"); got != "2 cookies" {
		t.Fatalf("pluralize(2) = %q", got)
	}
	if got := pluralize(0, "cookie"); got != "0 cookies" {
		t.Fatalf("pluralize(0) = %q", got)
	}
}
