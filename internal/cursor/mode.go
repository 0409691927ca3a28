package cursor

import "github.com/dshills/foldview/internal/phantom"

// Affinity is an alias for phantom.Affinity for convenience.
type Affinity = phantom.Affinity

// AffinityBackward and AffinityForward are re-exported for callers that
// never touch the phantom package.
const (
	AffinityBackward = phantom.AffinityBackward
	AffinityForward  = phantom.AffinityForward
)

// VisualKind selects the shape of a visual selection.
type VisualKind uint8

const (
	// VisualNormal selects a contiguous run of characters.
	VisualNormal VisualKind = iota

	// VisualLinewise selects whole lines.
	VisualLinewise

	// VisualBlockwise selects a rectangular column block.
	VisualBlockwise
)

// String returns the kind name.
func (k VisualKind) String() string {
	switch k {
	case VisualNormal:
		return "visual"
	case VisualLinewise:
		return "visual-line"
	case VisualBlockwise:
		return "visual-block"
	default:
		return "unknown"
	}
}

// MotionMode is a pending operator awaiting a motion.
type MotionMode uint8

const (
	// MotionNone means no operator is pending.
	MotionNone MotionMode = iota

	// MotionDelete deletes the text the motion covers.
	MotionDelete

	// MotionYank copies the text the motion covers.
	MotionYank

	// MotionIndent indents the lines the motion covers.
	MotionIndent

	// MotionOutdent outdents the lines the motion covers.
	MotionOutdent
)

// String returns the motion mode name.
func (m MotionMode) String() string {
	switch m {
	case MotionNone:
		return "none"
	case MotionDelete:
		return "delete"
	case MotionYank:
		return "yank"
	case MotionIndent:
		return "indent"
	case MotionOutdent:
		return "outdent"
	default:
		return "unknown"
	}
}

// ColPositionKind tells how a remembered horizontal position resolves on a
// new line.
type ColPositionKind uint8

const (
	// ColFirstNonBlank snaps to the first non-blank column.
	ColFirstNonBlank ColPositionKind = iota

	// ColStart snaps to column zero.
	ColStart

	// ColEnd snaps to the line end.
	ColEnd

	// ColExact snaps to a specific column, clamped to the line.
	ColExact
)

// ColPosition is the horizontal position vertical movement tries to keep.
type ColPosition struct {
	Kind ColPositionKind
	Col  int
}

// ColAt remembers an exact column.
func ColAt(col int) ColPosition {
	return ColPosition{Kind: ColExact, Col: col}
}

// Mode is the cursor's current mode: NormalMode, VisualMode, or InsertMode.
type Mode interface {
	// Offset returns the position where typing would occur.
	Offset() int

	// StartOffset returns the position the mode is anchored at.
	StartOffset() int

	isMode()
}

// NormalMode is a block caret resting on a single character.
type NormalMode struct {
	Pos int
}

func (m NormalMode) Offset() int      { return m.Pos }
func (m NormalMode) StartOffset() int { return m.Pos }
func (m NormalMode) isMode()          {}

// VisualMode is an anchored selection. Start is fixed; End moves with the
// caret and may precede Start.
type VisualMode struct {
	Start int
	End   int
	Kind  VisualKind
}

func (m VisualMode) Offset() int      { return m.End }
func (m VisualMode) StartOffset() int { return m.Start }
func (m VisualMode) isMode()          {}

// InsertMode carries a multi-caret selection.
type InsertMode struct {
	Selection Selection
}

func (m InsertMode) Offset() int      { return m.Selection.CursorOffset() }
func (m InsertMode) StartOffset() int { return m.Selection.MinOffset() }
func (m InsertMode) isMode()          {}
