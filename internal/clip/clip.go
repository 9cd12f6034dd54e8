// Package clip copies cookie serializations to the system clipboard.
package clip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

// ErrNothingToCopy is returned when the record set serializes to nothing.
var ErrNothingToCopy = errors.New("clip: no cookies to copy")

// writeText is swapped out in tests; clipboard access needs a display server.
var writeText = clipboard.WriteAll

// CopyHeader writes the records' Cookie-header serialization to the
// clipboard and returns it.
func CopyHeader(records []cookie.Record) (string, error) {
	header := cookie.HeaderValue(records)
	if header == "" {
		return "", ErrNothingToCopy
	}
	if err := writeText(header); err != nil {
		return "", fmt.Errorf("clip: write clipboard: %w", err)
	}
	return header, nil
}

// CopySetCookie writes a single record as a Set-Cookie line to the clipboard
// and returns it.
func CopySetCookie(r cookie.Record) (string, error) {
	if r.Name == "" {
		return "", ErrNothingToCopy
	}
	line := cookie.SetCookieLine(r)
	if err := writeText(line); err != nil {
		return "", fmt.Errorf("clip: write clipboard: %w", err)
	}
	return line, nil
}
