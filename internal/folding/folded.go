package folding

import (
	"strings"

	"github.com/dshills/foldview/internal/engine/buffer"
	"github.com/dshills/foldview/internal/phantom"
	"github.com/dshills/foldview/internal/protocol"
)

// FoldedRange is a read-only snapshot of one currently collapsed range.
type FoldedRange struct {
	Start         protocol.Position
	End           protocol.Position
	CollapsedText string
}

// ContainsLine reports whether the line falls within the range, endpoints
// included.
func (fr FoldedRange) ContainsLine(line int) bool {
	return fr.Start.Line <= line && line <= fr.End.Line
}

// ContainsPosition reports whether the position falls within the range,
// endpoints included.
func (fr FoldedRange) ContainsPosition(pos protocol.Position) bool {
	return !pos.Before(fr.Start) && !fr.End.Before(pos)
}

// PhantomForLine decomposes the range into the fold placeholder for one
// origin line. The start line carries the visible placeholder and swallows
// the rest of its line; the end line carries an invisible phantom covering
// the folded head of the line. Lines fully inside the range produce
// nothing, they are absorbed through the start line's continuation.
func (fr FoldedRange) PhantomForLine(buf *buffer.Buffer, line int) (phantom.PhantomText, bool, error) {
	sameLine := fr.Start.Line == fr.End.Line
	switch line {
	case fr.Start.Line:
		text, err := fr.placeholder(buf)
		if err != nil {
			return phantom.PhantomText{}, false, err
		}
		nextLine := -1
		if !sameLine {
			nextLine = fr.End.Line
		}
		start := fr.Start.Character
		var foldLen, allLen int
		if sameLine {
			foldLen = fr.End.Character - start
			allLen = foldLen
		} else {
			startOff, err := buf.OffsetOfLine(fr.Start.Line)
			if err != nil {
				return phantom.PhantomText{}, false, err
			}
			endOff, err := buf.OffsetOfLine(fr.End.Line)
			if err != nil {
				return phantom.PhantomText{}, false, err
			}
			content, err := buf.LineContent(line)
			if err != nil {
				return phantom.PhantomText{}, false, err
			}
			allLen = endOff - startOff - start
			foldLen = len(content) - start
		}
		return phantom.PhantomText{
			Kind:          phantom.KindFolded,
			Line:          line,
			Col:           start,
			MergeCol:      start,
			FinalCol:      start,
			Text:          text,
			FoldLen:       foldLen,
			AllLen:        allLen,
			NextLine:      nextLine,
			StartPosition: fr.Start,
		}, true, nil
	case fr.End.Line:
		if sameLine {
			return phantom.PhantomText{}, false, nil
		}
		return phantom.PhantomText{
			Kind:          phantom.KindFolded,
			Line:          line,
			Col:           0,
			MergeCol:      0,
			FinalCol:      0,
			FoldLen:       fr.End.Character,
			AllLen:        fr.End.Character,
			NextLine:      -1,
			StartPosition: fr.Start,
		}, true, nil
	default:
		return phantom.PhantomText{}, false, nil
	}
}

// placeholder builds the collapsed text: the server-provided text when
// present, otherwise the first and last folded characters around an
// ellipsis, "{...}" for a brace fold.
func (fr FoldedRange) placeholder(buf *buffer.Buffer) (string, error) {
	if fr.CollapsedText != "" {
		return fr.CollapsedText, nil
	}
	startOff, err := buf.OffsetOfLineCol(fr.Start.Line, fr.Start.Character)
	if err != nil {
		return "", err
	}
	endOff, err := buf.OffsetOfLineCol(fr.End.Line, fr.End.Character)
	if err != nil {
		return "", err
	}
	first, ok := buf.CharAt(startOff)
	if !ok {
		return "", buffer.ErrOffsetOutOfRange
	}
	last, ok := buf.CharAt(buf.PrevGraphemeOffset(endOff, 1))
	if !ok {
		return "", buffer.ErrOffsetOutOfRange
	}
	var b strings.Builder
	b.WriteRune(first)
	b.WriteString("...")
	b.WriteRune(last)
	return b.String(), nil
}

// FoldedRanges is an ordered set of folded ranges.
type FoldedRanges []FoldedRange

// FilterByLine keeps the ranges touching the line.
func (frs FoldedRanges) FilterByLine(line int) FoldedRanges {
	var out FoldedRanges
	for _, fr := range frs {
		if fr.ContainsLine(line) {
			out = append(out, fr)
		}
	}
	return out
}

// VisualLine maps an origin line to the line it renders on: the start line
// of the fold hiding it, or itself when visible.
func (frs FoldedRanges) VisualLine(line int) int {
	for _, fr := range frs {
		if line <= fr.Start.Line {
			return line
		}
		if fr.Start.Line < line && line <= fr.End.Line {
			return fr.Start.Line
		}
	}
	return line
}

// ContainLine reports whether the line is hidden inside a fold, starting
// the scan at startIndex. It returns the index the next, higher line can
// resume from, so a caller walking lines in order scans the set once.
func (frs FoldedRanges) ContainLine(startIndex, line int) (bool, int) {
	if startIndex >= len(frs) {
		return false, startIndex
	}
	last := startIndex
	for _, fr := range frs[startIndex:] {
		switch {
		case fr.Start.Line >= line:
			return false, last
		case fr.End.Line >= line:
			return true, last
		default:
			last++
		}
	}
	return false, last
}

// ContainsPosition reports whether any range contains the position.
func (frs FoldedRanges) ContainsPosition(pos protocol.Position) bool {
	for _, fr := range frs {
		if fr.ContainsPosition(pos) {
			return true
		}
	}
	return false
}

// PhantomsForLine collects the fold placeholders the set contributes to
// one origin line.
func (frs FoldedRanges) PhantomsForLine(buf *buffer.Buffer, line int) ([]phantom.PhantomText, error) {
	var out []phantom.PhantomText
	for _, fr := range frs {
		p, ok, err := fr.PhantomForLine(buf, line)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}
