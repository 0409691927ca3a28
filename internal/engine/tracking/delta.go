package tracking

import (
	"fmt"

	"github.com/dshills/foldview/internal/engine/buffer"
)

// ChangeType categorizes the type of a change.
type ChangeType uint8

const (
	// ChangeInsert indicates text was inserted (OldText is empty).
	ChangeInsert ChangeType = iota

	// ChangeDelete indicates text was deleted (NewText is empty).
	ChangeDelete

	// ChangeReplace indicates text was replaced.
	ChangeReplace
)

// String returns a human-readable representation of the change type.
func (ct ChangeType) String() string {
	switch ct {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change represents a single change to the buffer: the interval replaced in
// the old text and the text that took its place.
type Change struct {
	// Interval is the affected interval in the OLD text.
	// For inserts, Start == End.
	Interval buffer.Interval

	// OldText is the text that was removed (empty for inserts).
	OldText string

	// NewText is the text that was added (empty for deletes).
	NewText string
}

// FromEditResult builds a Change from an applied buffer edit.
func FromEditResult(res buffer.EditResult) Change {
	return Change{
		Interval: res.OldInterval,
		OldText:  res.OldText,
		NewText:  res.NewText,
	}
}

// NewInsertChange creates a change representing an insertion.
func NewInsertChange(offset int, text string) Change {
	return Change{
		Interval: buffer.Interval{Start: offset, End: offset},
		NewText:  text,
	}
}

// NewDeleteChange creates a change representing a deletion.
func NewDeleteChange(start, end int, oldText string) Change {
	return Change{
		Interval: buffer.Interval{Start: start, End: end},
		OldText:  oldText,
	}
}

// Type returns the change's type.
func (c Change) Type() ChangeType {
	switch {
	case c.Interval.IsEmpty():
		return ChangeInsert
	case c.NewText == "":
		return ChangeDelete
	default:
		return ChangeReplace
	}
}

// Delta returns the byte delta of this change.
func (c Change) Delta() int {
	return len(c.NewText) - c.Interval.Len()
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type() {
	case ChangeInsert:
		return fmt.Sprintf("Insert %q at %d", clip(c.NewText), c.Interval.Start)
	case ChangeDelete:
		return fmt.Sprintf("Delete %q at %v", clip(c.OldText), c.Interval)
	default:
		return fmt.Sprintf("Replace %q with %q at %v", clip(c.OldText), clip(c.NewText), c.Interval)
	}
}

func clip(s string) string {
	if len(s) > 20 {
		return s[:17] + "..."
	}
	return s
}

// Delta is an ordered sequence of changes forming one logical edit.
// Each change's interval is expressed in the coordinates produced by the
// changes before it.
type Delta struct {
	Changes []Change
}

// NewDelta creates a delta from the given changes.
func NewDelta(changes ...Change) Delta {
	return Delta{Changes: changes}
}

// IsEmpty returns true if the delta contains no changes.
func (d Delta) IsEmpty() bool {
	return len(d.Changes) == 0
}

// TotalDelta returns the total byte delta of all changes.
func (d Delta) TotalDelta() int {
	var total int
	for _, c := range d.Changes {
		total += c.Delta()
	}
	return total
}

// LineDelta returns the change in line count produced by the delta.
func (d Delta) LineDelta() int {
	var total int
	for _, c := range d.Changes {
		total += countNewlines(c.NewText) - countNewlines(c.OldText)
	}
	return total
}

func countNewlines(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}
