package folding

import (
	"fmt"
	"sort"

	"github.com/dshills/foldview/internal/engine/buffer"
	"github.com/dshills/foldview/internal/engine/tracking"
	"github.com/dshills/foldview/internal/protocol"
)

// Status is the fold state of a single range.
type Status uint8

const (
	// StatusUnfolded renders the range expanded.
	StatusUnfolded Status = iota

	// StatusFolded collapses the range behind a placeholder.
	StatusFolded
)

// IsFolded returns true when the range is collapsed.
func (s Status) IsFolded() bool {
	return s == StatusFolded
}

// Toggle flips the fold state.
func (s *Status) Toggle() {
	if *s == StatusFolded {
		*s = StatusUnfolded
	} else {
		*s = StatusFolded
	}
}

// String returns the status name.
func (s Status) String() string {
	if s == StatusFolded {
		return "folded"
	}
	return "unfolded"
}

// Range is a foldable region with its current state.
type Range struct {
	Start         protocol.Position
	End           protocol.Position
	Kind          protocol.FoldingRangeKind
	CollapsedText string
	Status        Status
}

func rangeFromProtocol(fr protocol.FoldingRange) Range {
	return Range{
		Start:         fr.StartPosition(),
		End:           fr.EndPosition(),
		Kind:          fr.Kind,
		CollapsedText: fr.CollapsedText,
	}
}

// Store holds a document's folding ranges, ordered by start position with
// enclosing ranges before the ranges they contain.
type Store struct {
	ranges []Range
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of ranges.
func (s *Store) Len() int {
	return len(s.ranges)
}

// Ranges returns a copy of the ranges in store order.
func (s *Store) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// UpdateRanges replaces the store with a fresh server response. A new range
// whose start and end exactly match a currently folded range stays folded;
// everything else starts unfolded.
func (s *Store) UpdateRanges(ranges []protocol.FoldingRange) {
	folded := s.AllFoldedRanges()
	next := make([]Range, 0, len(ranges))
	for _, fr := range ranges {
		r := rangeFromProtocol(fr)
		for _, f := range folded {
			if f.Start == r.Start && f.End == r.End {
				r.Status = StatusFolded
				break
			}
		}
		next = append(next, r)
	}
	sort.SliceStable(next, func(i, j int) bool {
		if c := next[i].Start.Compare(next[j].Start); c != 0 {
			return c < 0
		}
		// Same start: the enclosing range sorts first.
		return next[j].End.Before(next[i].End)
	})
	s.ranges = next
}

// UnfoldAllRangeByOffset expands every folded range containing the offset.
// The walk stops at the first range starting past the offset, which is
// sound because the store is start ordered.
func (s *Store) UnfoldAllRangeByOffset(buf *buffer.Buffer, offset int) error {
	for i := range s.ranges {
		iv, err := s.rangeInterval(buf, s.ranges[i])
		if err != nil {
			return err
		}
		if iv.Start > offset {
			break
		}
		if iv.Contains(offset) {
			s.ranges[i].Status = StatusUnfolded
		}
	}
	return nil
}

// FoldMinRangeByOffset collapses the innermost range containing the offset,
// the one with the latest start among candidates, and returns it.
func (s *Store) FoldMinRangeByOffset(buf *buffer.Buffer, offset int) (Range, error) {
	found := -1
	for i := range s.ranges {
		iv, err := s.rangeInterval(buf, s.ranges[i])
		if err != nil {
			return Range{}, err
		}
		if iv.Start > offset {
			break
		}
		if iv.Contains(offset) {
			found = i
		}
	}
	if found < 0 {
		return Range{}, fmt.Errorf("%w: %d", ErrNoFoldableRange, offset)
	}
	s.ranges[found].Status = StatusFolded
	return s.ranges[found], nil
}

// AllFoldedRanges computes the effective folded ranges in one linear pass.
// A running line limit suppresses folds nested inside an already collapsed
// range, so the outermost folded range wins.
func (s *Store) AllFoldedRanges() FoldedRanges {
	var out FoldedRanges
	limitLine := 0
	for _, r := range s.ranges {
		if r.Start.Line < limitLine && limitLine > 0 {
			continue
		}
		if r.Status.IsFolded() {
			out = append(out, FoldedRange{
				Start:         r.Start,
				End:           r.End,
				CollapsedText: r.CollapsedText,
			})
			limitLine = r.End.Line
		}
	}
	return out
}

// MergedFoldedRanges is AllFoldedRanges with adjacent folds joined: when
// one fold ends on the line the next one starts on, the two collapse into
// a single continuous range.
func (s *Store) MergedFoldedRanges() FoldedRanges {
	folded := s.AllFoldedRanges()
	if len(folded) < 2 {
		return folded
	}
	out := FoldedRanges{folded[0]}
	for _, fr := range folded[1:] {
		last := &out[len(out)-1]
		if last.End.Line == fr.Start.Line {
			last.End = fr.End
			last.CollapsedText = ""
			continue
		}
		out = append(out, fr)
	}
	return out
}

// ToggleAt flips the range whose start is exactly at the position, as when
// the fold placeholder itself is clicked. It reports whether a range
// matched.
func (s *Store) ToggleAt(pos protocol.Position) bool {
	for i := range s.ranges {
		if s.ranges[i].Start == pos {
			s.ranges[i].Status.Toggle()
			return true
		}
	}
	return false
}

// ApplyDelta re-bases every range through an edit. Range boundaries shrink
// away from the edit, so text inserted exactly at a fold edge stays outside
// the fold. Ranges the edit collapses to nothing are dropped.
func (s *Store) ApplyDelta(old, cur *buffer.Buffer, delta tracking.Delta) error {
	tr := tracking.NewTransformer(delta)
	next := make([]Range, 0, len(s.ranges))
	for _, r := range s.ranges {
		iv, err := s.rangeInterval(old, r)
		if err != nil {
			return err
		}
		iv = tr.TransformIntervalShrink(iv)
		if iv.IsEmpty() {
			continue
		}
		startLine, startCol, err := cur.OffsetToLineCol(iv.Start)
		if err != nil {
			return err
		}
		endLine, endCol, err := cur.OffsetToLineCol(iv.End)
		if err != nil {
			return err
		}
		r.Start = protocol.Position{Line: startLine, Character: startCol}
		r.End = protocol.Position{Line: endLine, Character: endCol}
		next = append(next, r)
	}
	s.ranges = next
	return nil
}

func (s *Store) rangeInterval(buf *buffer.Buffer, r Range) (buffer.Interval, error) {
	start, err := buf.OffsetOfLineCol(r.Start.Line, r.Start.Character)
	if err != nil {
		return buffer.Interval{}, err
	}
	end, err := buf.OffsetOfLineCol(r.End.Line, r.End.Character)
	if err != nil {
		return buffer.Interval{}, err
	}
	return buffer.Interval{Start: start, End: end}, nil
}
