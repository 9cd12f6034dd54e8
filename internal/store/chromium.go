package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

// windowsEpochDelta is the offset in seconds between the Windows FILETIME
// epoch (1601-01-01) Chromium timestamps use and the Unix epoch.
const windowsEpochDelta = 11644473600

// chromiumCookieDB locates the Cookies database for a Chromium-family
// browser. profile is a profile directory name ("Default", "Profile 1"); an
// empty profile picks the first profile that has a cookie DB.
func chromiumCookieDB(b Browser, profile string) (string, error) {
	for _, userData := range chromiumUserDataDirs(b) {
		candidates := []string{profile}
		if profile == "" {
			candidates = []string{"Default", "Profile 1"}
		}
		for _, prof := range candidates {
			for _, p := range []string{
				filepath.Join(userData, prof, "Network", "Cookies"), // Chrome 96+
				filepath.Join(userData, prof, "Cookies"),
			} {
				if fileExists(p) {
					return p, nil
				}
			}
		}
	}
	return "", fmt.Errorf("%w for %s", ErrStoreNotFound, b)
}

func chromiumUserDataDirs(b Browser) []string {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		support := filepath.Join(home, "Library", "Application Support")
		switch b {
		case BrowserChrome:
			return []string{filepath.Join(support, "Google", "Chrome")}
		case BrowserChromium:
			return []string{filepath.Join(support, "Chromium")}
		case BrowserEdge:
			return []string{filepath.Join(support, "Microsoft Edge")}
		case BrowserBrave:
			return []string{filepath.Join(support, "BraveSoftware", "Brave-Browser")}
		}
	default:
		base := xdgConfigHome()
		if base == "" {
			return nil
		}
		switch b {
		case BrowserChrome:
			return []string{
				filepath.Join(base, "google-chrome"),
				filepath.Join(base, "google-chrome-beta"),
			}
		case BrowserChromium:
			return []string{filepath.Join(base, "chromium")}
		case BrowserEdge:
			return []string{filepath.Join(base, "microsoft-edge")}
		case BrowserBrave:
			return []string{
				filepath.Join(base, "BraveSoftware", "Brave-Browser"),
				filepath.Join(base, "brave-browser"),
			}
		}
	}
	return nil
}

func xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// readChromium lists every cookie in a Chromium Cookies database, decrypting
// encrypted values with the browser's safe-storage key.
func readChromium(ctx context.Context, b Browser, dbPath string) ([]cookie.Record, error) {
	db, cleanup, err := openSnapshot(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	metaVersion := chromiumMetaVersion(ctx, db)
	decrypt := newSafeStorageDecryptor(b)

	rows, err := db.QueryContext(ctx, `
		SELECT host_key, name, path, value, encrypted_value, expires_utc,
		       is_secure, is_httponly, samesite
		FROM cookies`)
	if err != nil {
		return nil, fmt.Errorf("store: query cookies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []cookie.Record
	for rows.Next() {
		var (
			hostKey, name, path, value     string
			encrypted                      []byte
			expires, secure, httpOnly, sam sql.NullInt64
		)
		if err := rows.Scan(&hostKey, &name, &path, &value, &encrypted, &expires, &secure, &httpOnly, &sam); err != nil {
			return nil, err
		}
		if value == "" && len(encrypted) > 0 {
			if plain, ok := decrypt(encrypted, metaVersion); ok {
				value = plain
			}
		}
		if name == "" || hostKey == "" || value == "" {
			continue
		}

		rec := cookie.Record{
			Name:     name,
			Value:    value,
			Domain:   cookie.NormalizeDomain(hostKey),
			Path:     path,
			Secure:   secure.Valid && secure.Int64 == 1,
			HTTPOnly: httpOnly.Valid && httpOnly.Int64 == 1,
			SameSite: chromiumSameSite(sam),
		}
		if expires.Valid && expires.Int64 != 0 {
			if t, ok := chromiumTime(expires.Int64); ok {
				rec.Expires = &t
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func chromiumMetaVersion(ctx context.Context, db *sql.DB) int64 {
	var v int64
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&v); err != nil {
		return 0
	}
	return v
}

// chromiumTime converts microseconds since the Windows epoch to time.Time.
func chromiumTime(expiresUTC int64) (time.Time, bool) {
	secs := expiresUTC/1_000_000 - windowsEpochDelta
	if secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

func chromiumSameSite(v sql.NullInt64) cookie.SameSite {
	if !v.Valid {
		return ""
	}
	switch v.Int64 {
	case 0:
		return cookie.SameSiteNone
	case 1:
		return cookie.SameSiteLax
	case 2:
		return cookie.SameSiteStrict
	default:
		return ""
	}
}
