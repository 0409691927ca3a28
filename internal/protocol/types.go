package protocol

import "fmt"

// Position in a text document expressed as zero-based line and character
// offset.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Character)
}

// Compare returns -1 if p < other, 0 if equal, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Character != other.Character {
		if p.Character < other.Character {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Range in a text document expressed as start and end positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains returns true if pos is within the range, end inclusive.
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && !r.End.Before(pos)
}

// FoldingRangeKind categorizes a folding range.
type FoldingRangeKind string

const (
	FoldingRangeComment FoldingRangeKind = "comment"
	FoldingRangeImports FoldingRangeKind = "imports"
	FoldingRangeRegion  FoldingRangeKind = "region"
)

// FoldingRange is a server-provided foldable region of a document.
type FoldingRange struct {
	StartLine      int              `json:"startLine"`
	StartCharacter int              `json:"startCharacter"`
	EndLine        int              `json:"endLine"`
	EndCharacter   int              `json:"endCharacter"`
	Kind           FoldingRangeKind `json:"kind,omitempty"`
	CollapsedText  string           `json:"collapsedText,omitempty"`
}

// StartPosition returns the range's start as a Position.
func (f FoldingRange) StartPosition() Position {
	return Position{Line: f.StartLine, Character: f.StartCharacter}
}

// EndPosition returns the range's end as a Position.
func (f FoldingRange) EndPosition() Position {
	return Position{Line: f.EndLine, Character: f.EndCharacter}
}

// InlayHintKind is the kind of an inlay hint.
type InlayHintKind int

const (
	// InlayHintType is a type annotation hint.
	InlayHintType InlayHintKind = 1

	// InlayHintParameter is a parameter name hint.
	InlayHintParameter InlayHintKind = 2
)

// InlayHint is virtual text a server asks to render inline, such as a type
// annotation. Label is the concatenation of the server's label parts.
type InlayHint struct {
	Position     Position      `json:"position"`
	Label        string        `json:"label"`
	Kind         InlayHintKind `json:"kind,omitempty"`
	PaddingLeft  bool          `json:"paddingLeft,omitempty"`
	PaddingRight bool          `json:"paddingRight,omitempty"`
}

// Text returns the hint's rendered text with padding applied.
func (h InlayHint) Text() string {
	text := h.Label
	if h.PaddingLeft {
		text = " " + text
	}
	if h.PaddingRight {
		text += " "
	}
	return text
}

// DiagnosticSeverity represents the severity of a diagnostic.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// String returns the severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic represents an error, warning, info, or hint reported for a
// range of the document.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     string             `json:"code,omitempty"`
	CodeHref string             `json:"codeDescription,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}
