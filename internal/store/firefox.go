package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-ini/ini"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

// firefoxCookieDB locates cookies.sqlite for a Firefox profile. profile is a
// profile name or directory from profiles.ini; empty picks the first profile
// that has a cookie DB.
func firefoxCookieDB(profile string) (string, error) {
	profile = strings.TrimSpace(profile)
	for _, root := range firefoxRoots() {
		cfg, err := ini.Load(filepath.Join(root, "profiles.ini"))
		if err != nil {
			continue
		}
		for _, secName := range cfg.SectionStrings() {
			if !strings.HasPrefix(secName, "Profile") {
				continue
			}
			sec := cfg.Section(secName)
			dir := filepath.FromSlash(sec.Key("Path").String())
			if dir == "" {
				continue
			}
			if sec.Key("IsRelative").String() == "1" {
				dir = filepath.Join(root, dir)
			}
			if profile != "" && sec.Key("Name").String() != profile && filepath.Base(dir) != profile {
				continue
			}
			dbPath := filepath.Join(dir, "cookies.sqlite")
			if fileExists(dbPath) {
				return dbPath, nil
			}
		}
	}
	if profile != "" {
		return "", fmt.Errorf("%w: firefox profile %q", ErrStoreNotFound, profile)
	}
	return "", fmt.Errorf("%w for firefox", ErrStoreNotFound)
}

func firefoxRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	if runtime.GOOS == "darwin" {
		return []string{filepath.Join(home, "Library", "Application Support", "Firefox")}
	}
	return []string{
		filepath.Join(home, ".mozilla", "firefox"),
		filepath.Join(home, "snap", "firefox", "common", ".mozilla", "firefox"),
	}
}

// readFirefox lists every cookie in a Firefox cookies.sqlite database.
// Values are stored in the clear.
func readFirefox(ctx context.Context, dbPath string) ([]cookie.Record, error) {
	db, cleanup, err := openSnapshot(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	rows, err := db.QueryContext(ctx, `
		SELECT name, value, host, path, expiry, isSecure, isHttpOnly, sameSite
		FROM moz_cookies`)
	if err != nil {
		return nil, fmt.Errorf("store: query moz_cookies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []cookie.Record
	for rows.Next() {
		var (
			name, value, host, path        string
			expiry, secure, httpOnly, same sql.NullInt64
		)
		if err := rows.Scan(&name, &value, &host, &path, &expiry, &secure, &httpOnly, &same); err != nil {
			return nil, err
		}
		if name == "" || host == "" {
			continue
		}

		rec := cookie.Record{
			Name:     name,
			Value:    value,
			Domain:   cookie.NormalizeDomain(host),
			Path:     path,
			Secure:   secure.Valid && secure.Int64 == 1,
			HTTPOnly: httpOnly.Valid && httpOnly.Int64 == 1,
			SameSite: firefoxSameSite(same),
		}
		if expiry.Valid && expiry.Int64 > 0 {
			t := time.Unix(expiry.Int64, 0).UTC()
			rec.Expires = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func firefoxSameSite(v sql.NullInt64) cookie.SameSite {
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
