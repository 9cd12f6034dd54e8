// Package cookie defines the cookie record shared by the store, registry,
// watcher, and UI, plus the identity fingerprint used as the registry key.
package cookie

import (
	"sort"
	"strings"
	"time"
)

// SameSite is the cookie SameSite attribute.
type SameSite string

const (
	// SameSiteNone is SameSite=None.
	SameSiteNone SameSite = "None"
	// SameSiteLax is SameSite=Lax.
	SameSiteLax SameSite = "Lax"
	// SameSiteStrict is SameSite=Strict.
	SameSiteStrict SameSite = "Strict"
)

// Record is an immutable snapshot of a browser cookie.
type Record struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite SameSite

	// Expires is nil for session cookies.
	Expires *time.Time
}

// Fingerprint identifies a cookie by its (name, domain, path) identity.
type Fingerprint string

// sep cannot occur in a cookie name, domain, or path, so two distinct
// identities can never collide.
const sep = "\x1f"

// FingerprintOf derives the identity key for a record. Equal identity fields
// always yield the same fingerprint; the domain is normalized first so
// ".Example.com" and "example.com" are the same identity.
func FingerprintOf(r Record) Fingerprint {
	return Fingerprint(r.Name + sep + NormalizeDomain(r.Domain) + sep + r.Path)
}

// NormalizeDomain lowercases a cookie domain and strips the host-only leading dot.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, ".")
	return strings.ToLower(domain)
}

// Sort orders records case-insensitively by name, ascending. The sort is
// stable: equal names keep their original relative order.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
}

// Expired reports whether the record has an expiry in the past.
func (r Record) Expired(now time.Time) bool {
	return r.Expires != nil && r.Expires.Before(now)
}

// Session reports whether the record is a session cookie.
func (r Record) Session() bool {
	return r.Expires == nil
}
