// Package config provides the configuration for vtconsole.
//
// Settings are resolved in three layers, higher overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← VTCONSOLE_SECTION_KEY
//	├─────────────────────────────┤
//	│  2. Config File             │  ← .toml, .yaml or .yml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Load resolves all three and validates the result. A missing config file
// is not an error.
//
// # Live Reload
//
// Watcher reloads the file through fsnotify when it changes and hands the
// new configuration to a callback. Only some settings can be applied to a
// running console (log level and key repeat timing); the rest take effect on
// restart.
package config
