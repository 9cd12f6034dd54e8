// Package config handles loading and parsing cookiedeck configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cookiedeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Configuration Fields
//
//   - browser: which cookie store family to read (chrome, chromium, edge,
//     brave, firefox); defaults to chrome
//   - profile: browser profile name or directory; empty picks the default
//   - cookie_db_path: explicit database path, bypassing discovery; supports
//     ~ expansion
//   - origin: origin URL to open at startup; empty starts the session
//     without a known origin and the UI asks for one
//   - poll_seconds: cookie store poll cadence, default 2
//   - preauthorize: treat consent as already given, skipping the grant flow
//
// # Error Handling
//
// A missing file is not an error; defaults apply. An unreadable or
// unparseable file is a fatal error, because silently ignoring a config the
// user wrote would be worse than failing loudly.
package config
