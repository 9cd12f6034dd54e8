package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields cookiedeck needs to find and poll a cookie store.
type Config struct {
	Browser      string // chrome, chromium, edge, brave, firefox
	Profile      string // browser profile name or directory
	CookieDBPath string // explicit database path; bypasses discovery
	Origin       string // default origin to open at startup
	PollSeconds  int    // store poll cadence
	Preauthorize bool   // treat consent as already given (skips the grant flow)
}

const (
	defaultConfigPath  = "~/.config/cookiedeck/config.toml"
	defaultBrowser     = "chrome"
	defaultPollSeconds = 2
)

// Load locates and parses the cookiedeck config, falling back to defaults
// when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Browser: defaultBrowser, PollSeconds: defaultPollSeconds}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Browser      string `toml:"browser"`
		Profile      string `toml:"profile"`
		CookieDBPath string `toml:"cookie_db_path"`
		Origin       string `toml:"origin"`
		PollSeconds  int    `toml:"poll_seconds"`
		Preauthorize bool   `toml:"preauthorize"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Browser = strings.ToLower(strings.TrimSpace(raw.Browser))
	if cfg.Browser == "" {
		cfg.Browser = defaultBrowser
	}
	cfg.Profile = strings.TrimSpace(raw.Profile)
	cfg.Origin = strings.TrimSpace(raw.Origin)
	cfg.Preauthorize = raw.Preauthorize

	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}

	cfg.CookieDBPath = strings.TrimSpace(raw.CookieDBPath)
	if cfg.CookieDBPath != "" {
		cfg.CookieDBPath = mustExpand(cfg.CookieDBPath)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
