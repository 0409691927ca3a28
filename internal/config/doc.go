// Package config loads viewer settings from a TOML file and supports live
// reload.
//
// Settings cover the editing grid (tab width), fold placeholder text, inlay
// hint and error lens toggles, and the colors used for phantom text. A
// missing config file is not an error; defaults apply. The Watcher monitors
// the config file with fsnotify and delivers debounced reloads to a handler.
package config
