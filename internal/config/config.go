package config

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all viewer settings.
type Config struct {
	Editor      EditorConfig     `toml:"editor"`
	InlayHints  InlayHintConfig  `toml:"inlay_hints"`
	Diagnostics DiagnosticConfig `toml:"diagnostics"`
	Style       StyleConfig      `toml:"style"`
}

// EditorConfig holds text grid settings.
type EditorConfig struct {
	// TabWidth is the distance between tab stops in display cells.
	TabWidth int `toml:"tab_width"`

	// FoldPlaceholder overrides the collapsed-region placeholder text.
	// Empty derives the placeholder from the folded text itself.
	FoldPlaceholder string `toml:"fold_placeholder"`
}

// InlayHintConfig controls inline hint rendering.
type InlayHintConfig struct {
	Enabled bool `toml:"enabled"`
}

// DiagnosticConfig controls diagnostic rendering.
type DiagnosticConfig struct {
	// ErrorLens renders the diagnostic message as virtual text at the end
	// of the offending line.
	ErrorLens bool `toml:"error_lens"`
}

// StyleConfig holds colors as hex strings such as "#808080".
type StyleConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	FoldedFg   string `toml:"folded_fg"`
	FoldedBg   string `toml:"folded_bg"`
	HintFg     string `toml:"hint_fg"`
	HintBg     string `toml:"hint_bg"`
	ErrorFg    string `toml:"error_fg"`
	WarningFg  string `toml:"warning_fg"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth: 4,
		},
		InlayHints: InlayHintConfig{
			Enabled: true,
		},
		Diagnostics: DiagnosticConfig{
			ErrorLens: true,
		},
		Style: StyleConfig{
			Foreground: "#d8dee9",
			Background: "#2e3440",
			FoldedFg:   "#88c0d0",
			FoldedBg:   "#3b4252",
			HintFg:     "#6c7a96",
			HintBg:     "#353c4a",
			ErrorFg:    "#bf616a",
			WarningFg:  "#ebcb8b",
		},
	}
}

// Load reads settings from a TOML file, applying them over the defaults.
// A missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks the settings for values the viewer cannot work with.
func (c Config) Validate() error {
	if c.Editor.TabWidth <= 0 {
		return fmt.Errorf("%w: tab_width must be positive, got %d", ErrInvalidConfig, c.Editor.TabWidth)
	}
	colors := map[string]string{
		"foreground": c.Style.Foreground,
		"background": c.Style.Background,
		"folded_fg":  c.Style.FoldedFg,
		"folded_bg":  c.Style.FoldedBg,
		"hint_fg":    c.Style.HintFg,
		"hint_bg":    c.Style.HintBg,
		"error_fg":   c.Style.ErrorFg,
		"warning_fg": c.Style.WarningFg,
	}
	for name, hex := range colors {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: style.%s: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// Color parses a style hex string, falling back to fallback when the string
// is empty or malformed.
func Color(hex, fallback string) colorful.Color {
	if hex != "" {
		if c, err := colorful.Hex(hex); err == nil {
			return c
		}
	}
	c, _ := colorful.Hex(fallback)
	return c
}
