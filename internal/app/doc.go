// Package app provides the orchestration layer for cookiedeck.
//
// # Overview
//
// This package wires together configuration, the cookie store, the
// permission gate, the registry, the change watcher, and the UI to create
// the complete cookiedeck session. It is the composition root where all
// dependencies are initialized and connected.
//
// # Startup Sequence
//
// Run follows a fixed order so every layer sees a fully initialized
// predecessor:
//
//  1. Load configuration from ~/.config/cookiedeck/config.toml
//  2. Load user preferences (theme, animations) with graceful fallback
//  3. Create the session object and mark options loaded
//  4. Resolve the browser cookie store for the configured browser/profile
//  5. Build the permission gate over the store path
//  6. Start the background watcher that polls the store for changes
//  7. Mark the session subscribed, then ready or awaiting-ready depending
//     on whether an origin is already known
//  8. Start the TUI and block until the user exits or the context cancels
//
// When no origin is configured the UI prompts for one; the session stays in
// the awaiting-ready phase until the watcher completes its first listing for
// the chosen origin. Cookie change events arriving before that point are
// ignored rather than applied to an unknown origin.
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable or malformed configuration,
// an unknown browser name, and illegal session phase transitions. Recoverable
// conditions (surfaced in the UI, session continues): a missing or locked
// cookie database, failed listings, and denied permission prompts.
package app
