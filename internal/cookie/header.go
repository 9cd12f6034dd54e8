package cookie

import "strings"

// HeaderValue serializes records into a Cookie request-header value,
// "name=value" pairs joined by "; ", in the order given.
func HeaderValue(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	parts := make([]string, 0, len(records))
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		parts = append(parts, r.Name+"="+r.Value)
	}
	return strings.Join(parts, "; ")
}

// SetCookieLine serializes a single record as a Set-Cookie response-header
// value, including attribute flags.
func SetCookieLine(r Record) string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString("=")
	b.WriteString(r.Value)
	if r.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(NormalizeDomain(r.Domain))
	}
	if r.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(r.Path)
	}
	if r.Expires != nil {
		b.WriteString("; Expires=")
		b.WriteString(r.Expires.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT"))
	}
	if r.Secure {
		b.WriteString("; Secure")
	}
	if r.HTTPOnly {
		b.WriteString("; HttpOnly")
	}
	if r.SameSite != "" {
		b.WriteString("; SameSite=")
		b.WriteString(string(r.SameSite))
	}
	return b.String()
}
