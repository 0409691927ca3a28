package buffer

import "fmt"

// Edit replaces the text within an interval.
type Edit struct {
	Interval Interval // The interval to replace
	NewText  string   // The replacement text
}

// NewInsert creates an Edit that inserts text at an offset.
func NewInsert(offset int, text string) Edit {
	return Edit{Interval: Interval{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes an interval of text.
func NewDelete(start, end int) Edit {
	return Edit{Interval: Interval{Start: start, End: end}}
}

// NewReplace creates an Edit that replaces an interval with new text.
func NewReplace(start, end int, text string) Edit {
	return Edit{Interval: Interval{Start: start, End: end}, NewText: text}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Interval.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Interval.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Interval)
	}
	return fmt.Sprintf("Replace%s with %q", e.Interval, e.NewText)
}

// IsInsert returns true if this is a pure insertion.
func (e Edit) IsInsert() bool {
	return e.Interval.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion.
func (e Edit) IsDelete() bool {
	return !e.Interval.IsEmpty() && e.NewText == ""
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Interval.Len()
}

// EditResult describes an applied edit.
type EditResult struct {
	OldInterval Interval // The replaced interval in the old text
	NewInterval Interval // The resulting interval in the new text
	OldText     string   // The text that was removed
	NewText     string   // The text that was inserted
	Revision    Revision // The revision after the edit
}

// Delta returns the change in buffer length.
func (r EditResult) Delta() int {
	return len(r.NewText) - len(r.OldText)
}
