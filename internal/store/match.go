package store

import (
	"strings"
	"time"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

// filterRecords drops expired cookies and, when host is non-empty, cookies
// whose domain does not cover the host. Secure cookies are kept only for
// https origins.
func filterRecords(records []cookie.Record, host, scheme string) []cookie.Record {
	now := time.Now()
	out := make([]cookie.Record, 0, len(records))
	for _, r := range records {
		if r.Name == "" || r.Expired(now) {
			continue
		}
		if host != "" {
			if !hostMatchesDomain(host, r.Domain) {
				continue
			}
			if r.Secure && scheme != "https" && scheme != "wss" {
				continue
			}
		}
		if r.Path == "" {
			r.Path = "/"
		}
		out = append(out, r)
	}
	return out
}

// hostMatchesDomain implements cookie domain matching: the host either equals
// the cookie domain or is a subdomain of it.
func hostMatchesDomain(host, domain string) bool {
	host = cookie.NormalizeDomain(host)
	domain = cookie.NormalizeDomain(domain)
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
