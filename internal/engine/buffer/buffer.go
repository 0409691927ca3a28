package buffer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Revision identifies a buffer state. Each edit produces a new revision.
type Revision uint64

// Buffer is a line-indexed text document.
//
// The zero value is not usable; create buffers with New.
type Buffer struct {
	id         uuid.UUID
	text       string
	lineStarts []int // byte offset of the first character of each line
	revision   Revision
}

// New creates a buffer holding the given text.
func New(text string) *Buffer {
	b := &Buffer{
		id:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(text)),
		text: text,
	}
	b.reindex()
	return b
}

// ID returns the buffer's document identity, a fingerprint of the text the
// buffer was created with. It never changes across edits, so state keyed by
// it can tell a stale snapshot of this document from a different document.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Revision returns the current revision.
func (b *Buffer) Revision() Revision {
	return b.revision
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.text
}

// NumLines returns the number of lines. An empty buffer has one line.
// Text ending in a newline has a final empty line.
func (b *Buffer) NumLines() int {
	return len(b.lineStarts)
}

// LastLine returns the index of the last line.
func (b *Buffer) LastLine() int {
	return len(b.lineStarts) - 1
}

// IsValidOffset returns true if the offset is within [0, Len()].
func (b *Buffer) IsValidOffset(offset int) bool {
	return offset >= 0 && offset <= len(b.text)
}

// OffsetOfLine returns the byte offset of the start of a line.
// Line NumLines() is accepted and yields Len(), so callers can compute
// exclusive line spans as OffsetOfLine(line+1)-OffsetOfLine(line).
func (b *Buffer) OffsetOfLine(line int) (int, error) {
	if line < 0 || line > len(b.lineStarts) {
		return 0, ErrLineOutOfRange
	}
	if line == len(b.lineStarts) {
		return len(b.text), nil
	}
	return b.lineStarts[line], nil
}

// LineOfOffset returns the line containing the given offset.
// The end-of-buffer offset belongs to the last line.
func (b *Buffer) LineOfOffset(offset int) (int, error) {
	if !b.IsValidOffset(offset) {
		return 0, ErrOffsetOutOfRange
	}
	// First line start greater than offset, minus one.
	n := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	return n - 1, nil
}

// OffsetToLineCol converts an offset to a (line, column) pair.
// The column is a byte offset within the line.
func (b *Buffer) OffsetToLineCol(offset int) (int, int, error) {
	line, err := b.LineOfOffset(offset)
	if err != nil {
		return 0, 0, err
	}
	return line, offset - b.lineStarts[line], nil
}

// OffsetOfLineCol converts a (line, column) pair to an offset.
// Columns beyond the line's content (including its line ending) are an error.
func (b *Buffer) OffsetOfLineCol(line, col int) (int, error) {
	start, err := b.OffsetOfLine(line)
	if err != nil {
		return 0, err
	}
	end, err := b.OffsetOfLine(line + 1)
	if err != nil {
		end = len(b.text)
	}
	if col < 0 || start+col > end {
		return 0, ErrColumnOutOfRange
	}
	return start + col, nil
}

// LineContent returns a line's text including its line ending.
func (b *Buffer) LineContent(line int) (string, error) {
	start, err := b.OffsetOfLine(line)
	if err != nil {
		return "", err
	}
	end := len(b.text)
	if line+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1]
	}
	return b.text[start:end], nil
}

// LineEndCol returns the column of the end of a line, excluding the line
// ending. With caret true the returned column may sit past the last
// character; with caret false it is pulled back to the start of the last
// grapheme cluster, the way a block cursor rests on a character.
func (b *Buffer) LineEndCol(line int, caret bool) (int, error) {
	content, err := b.LineContent(line)
	if err != nil {
		return 0, err
	}
	end := len(trimLineEnding(content))
	if caret || end == 0 {
		return end, nil
	}
	return prevGraphemeBoundary(content[:end], end), nil
}

// FirstNonBlankCol returns the column of the first non-whitespace character
// of a line, or the line end column when the line is blank.
func (b *Buffer) FirstNonBlankCol(line int) (int, error) {
	content, err := b.LineContent(line)
	if err != nil {
		return 0, err
	}
	content = trimLineEnding(content)
	idx := strings.IndexFunc(content, func(r rune) bool {
		return r != ' ' && r != '\t'
	})
	if idx < 0 {
		return len(content), nil
	}
	return idx, nil
}

// Slice returns the text within the given interval.
func (b *Buffer) Slice(iv Interval) (string, error) {
	if !iv.IsValid() {
		return "", ErrIntervalInvalid
	}
	if iv.Start < 0 || iv.End > len(b.text) {
		return "", ErrOffsetOutOfRange
	}
	return b.text[iv.Start:iv.End], nil
}

// CharAt returns the rune starting at the given offset.
// Returns false when the offset is out of range or not a rune boundary.
func (b *Buffer) CharAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(b.text) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(b.text[offset:])
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	return r, true
}

// Apply applies an edit, bumps the revision, and returns the result.
func (b *Buffer) Apply(edit Edit) (EditResult, error) {
	if !edit.Interval.IsValid() {
		return EditResult{}, ErrIntervalInvalid
	}
	if edit.Interval.Start < 0 || edit.Interval.End > len(b.text) {
		return EditResult{}, ErrOffsetOutOfRange
	}
	old := b.text[edit.Interval.Start:edit.Interval.End]
	b.text = b.text[:edit.Interval.Start] + edit.NewText + b.text[edit.Interval.End:]
	b.reindex()
	b.revision++
	return EditResult{
		OldInterval: edit.Interval,
		NewInterval: Interval{
			Start: edit.Interval.Start,
			End:   edit.Interval.Start + len(edit.NewText),
		},
		OldText:  old,
		NewText:  edit.NewText,
		Revision: b.revision,
	}, nil
}

// reindex rebuilds the line-start index.
func (b *Buffer) reindex() {
	starts := b.lineStarts[:0]
	starts = append(starts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	b.lineStarts = starts
}

// trimLineEnding removes a trailing "\n", "\r\n", or "\r" from a line.
func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
