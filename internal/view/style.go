package view

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/foldview/internal/config"
	"github.com/dshills/foldview/internal/phantom"
)

// Styles holds the resolved colors applied to phantom text.
type Styles struct {
	Foreground phantom.Color
	Background phantom.Color
	FoldedFg   phantom.Color
	FoldedBg   phantom.Color
	HintFg     phantom.Color
	HintBg     phantom.Color
	ErrorFg    phantom.Color
	WarningFg  phantom.Color
}

// StylesFromConfig resolves the configured hex colors. Phantom backgrounds
// are blended toward the base background so they read as a tint rather than
// a solid block.
func StylesFromConfig(cfg config.Config) Styles {
	def := config.Default().Style
	base := config.Color(cfg.Style.Background, def.Background)

	tint := func(hex, fallback string) phantom.Color {
		return toPhantom(base.BlendRgb(config.Color(hex, fallback), 0.6))
	}
	return Styles{
		Foreground: toPhantom(config.Color(cfg.Style.Foreground, def.Foreground)),
		Background: toPhantom(base),
		FoldedFg:   toPhantom(config.Color(cfg.Style.FoldedFg, def.FoldedFg)),
		FoldedBg:   tint(cfg.Style.FoldedBg, def.FoldedBg),
		HintFg:     toPhantom(config.Color(cfg.Style.HintFg, def.HintFg)),
		HintBg:     tint(cfg.Style.HintBg, def.HintBg),
		ErrorFg:    toPhantom(config.Color(cfg.Style.ErrorFg, def.ErrorFg)),
		WarningFg:  toPhantom(config.Color(cfg.Style.WarningFg, def.WarningFg)),
	}
}

func toPhantom(c colorful.Color) phantom.Color {
	r, g, b := c.RGB255()
	return phantom.RGB(r, g, b)
}

// StyleSpan is a styled byte range of a rendered line, in final-column
// space.
type StyleSpan struct {
	Start     int
	End       int
	Fg        phantom.Color
	Bg        phantom.Color
	Underline phantom.Color
}
