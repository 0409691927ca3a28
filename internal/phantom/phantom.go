package phantom

import (
	"github.com/dshills/foldview/internal/engine/buffer"
	"github.com/dshills/foldview/internal/protocol"
)

// Span is a half-open column range, aliased from buffer.Interval.
type Span = buffer.Interval

// Affinity says which side of a zero-width boundary (an inlay hint, a fold
// placeholder edge) a position logically belongs to. Two positions can share
// the same document offset yet sit on opposite sides of virtual text; the
// affinity keeps them apart.
type Affinity uint8

const (
	// AffinityBackward places the position before the boundary.
	AffinityBackward Affinity = iota

	// AffinityForward places the position after the boundary.
	AffinityForward
)

// Invert returns the opposite affinity.
func (a Affinity) Invert() Affinity {
	if a == AffinityForward {
		return AffinityBackward
	}
	return AffinityForward
}

// IsForward returns true for AffinityForward.
func (a Affinity) IsForward() bool {
	return a == AffinityForward
}

// String returns the affinity name.
func (a Affinity) String() string {
	if a == AffinityForward {
		return "forward"
	}
	return "backward"
}

// Kind identifies what produced a phantom. The ordering is meaningful: when
// two phantoms anchor at the same merge column, the lower kind renders
// first.
type Kind uint8

const (
	// KindIME is input-method preedit text.
	KindIME Kind = iota

	// KindPlaceholder is placeholder text for an empty editor.
	KindPlaceholder

	// KindCompletion is a completion lens / inline completion preview.
	KindCompletion

	// KindInlayHint is a server-provided inlay hint such as a type
	// annotation.
	KindInlayHint

	// KindDiagnostic is an error-lens diagnostic message after line end.
	KindDiagnostic

	// KindFolded is a fold placeholder standing in for a collapsed span.
	// Multi-line folds are decomposed into per-line fold phantoms.
	KindFolded
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIME:
		return "ime"
	case KindPlaceholder:
		return "placeholder"
	case KindCompletion:
		return "completion"
	case KindInlayHint:
		return "inlay-hint"
	case KindDiagnostic:
		return "diagnostic"
	case KindFolded:
		return "folded"
	default:
		return "unknown"
	}
}

// Color is an RGB color attached to a phantom. The zero value means unset.
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB creates a set color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// PhantomText is one piece of virtual text: not part of the document, but
// rendered with it.
type PhantomText struct {
	Kind Kind

	// Line is the origin line the phantom anchors on.
	Line int

	// Col is the anchor column on Line.
	Col int

	// MergeCol is the anchor column in merge space. Equal to Col until the
	// phantom's line is appended to a MultiLine.
	MergeCol int

	// FinalCol is the anchor column in the rendered line. Computed during
	// Line construction.
	FinalCol int

	// Text is the rendered text. May be empty: the continuation phantom on
	// a fold's end line renders nothing but still swallows origin text.
	Text string

	// Fg, Bg, and Underline style the phantom when set.
	Fg, Bg, Underline Color

	// FoldLen is the number of origin bytes the phantom replaces on its
	// anchor line. Zero for everything but KindFolded.
	FoldLen int

	// AllLen is the number of bytes the fold replaces in merge space, which
	// exceeds FoldLen when the fold spans lines. Zero for non-folds.
	AllLen int

	// NextLine is the origin line the fold continues on, or -1 when the
	// phantom is not a fold or the fold ends on its own line.
	NextLine int

	// StartPosition is the folding range's start, kept so a click on the
	// placeholder can toggle the fold.
	StartPosition protocol.Position
}

// NextFinalCol returns the final column just past the phantom's text.
func (p *PhantomText) NextFinalCol() int {
	return p.FinalCol + len(p.Text)
}

// NextOriginCol returns the origin column just past the span the phantom
// replaces on its anchor line.
func (p *PhantomText) NextOriginCol() int {
	if p.Kind == KindFolded {
		return p.Col + p.FoldLen
	}
	return p.Col
}

// NextMergeCol returns the merge column just past the replaced span.
func (p *PhantomText) NextMergeCol() int {
	if p.Kind == KindFolded {
		return p.MergeCol + p.FoldLen
	}
	return p.MergeCol
}

// ContinuesOn returns the origin line a fold placeholder continues on.
func (p *PhantomText) ContinuesOn() (int, bool) {
	if p.Kind == KindFolded && p.NextLine >= 0 {
		return p.NextLine, true
	}
	return 0, false
}

// ColumnTriple carries a segment's column span in each of the three
// coordinate spaces.
type ColumnTriple struct {
	Origin Span
	Merge  Span
	Final  Span
}

// Segment is one run of a rendered line. It is either a *PhantomText, an
// *OriginSegment, or an *EmptySegment.
type Segment interface {
	segment()
}

func (p *PhantomText) segment() {}

// OriginSegment is a run of real document text between phantoms.
type OriginSegment struct {
	Line int
	Cols ColumnTriple
}

func (s *OriginSegment) segment() {}

// OriginColOfFinalCol maps a final column inside the segment back to its
// origin column.
func (s *OriginSegment) OriginColOfFinalCol(finalCol int) int {
	return finalCol - s.Cols.Final.Start + s.Cols.Origin.Start
}

// EmptySegment marks a line with no content at all.
type EmptySegment struct {
	Line         int
	OffsetOfLine int
}

func (s *EmptySegment) segment() {}
