package folding

import (
	"sort"

	"github.com/dshills/foldview/internal/protocol"
)

// DisplayKind tells what a gutter fold marker looks like.
type DisplayKind uint8

const (
	// DisplayUnfoldStart marks the first line of an expanded range.
	DisplayUnfoldStart DisplayKind = iota

	// DisplayFolded marks a collapsed range.
	DisplayFolded

	// DisplayUnfoldEnd marks the last line of an expanded range.
	DisplayUnfoldEnd
)

// String returns the kind name.
func (k DisplayKind) String() string {
	switch k {
	case DisplayUnfoldStart:
		return "unfold-start"
	case DisplayFolded:
		return "folded"
	case DisplayUnfoldEnd:
		return "unfold-end"
	default:
		return "unknown"
	}
}

// DisplayItem is one fold marker in the gutter.
type DisplayItem struct {
	Position protocol.Position
	Y        int
	Kind     DisplayKind
}

// DisplayItems computes the gutter markers for the lines currently on
// screen. yOf maps an origin line to its screen y, reporting false for
// off-screen lines. One marker survives per line; a collapsed marker beats
// an expanded one, and a range start beats a range end.
func (s *Store) DisplayItems(yOf func(line int) (int, bool)) []DisplayItem {
	folded := map[int]DisplayItem{}
	unfoldStart := map[int]DisplayItem{}
	unfoldEnd := map[int]DisplayItem{}
	limitLine := 0
	for _, r := range s.ranges {
		if r.Start.Line < limitLine && limitLine > 0 {
			continue
		}
		if r.Status.IsFolded() {
			if y, ok := yOf(r.Start.Line); ok {
				folded[r.Start.Line] = DisplayItem{
					Position: r.Start,
					Y:        y,
					Kind:     DisplayFolded,
				}
			}
			limitLine = r.End.Line
			continue
		}
		if y, ok := yOf(r.Start.Line); ok {
			unfoldStart[r.Start.Line] = DisplayItem{
				Position: r.Start,
				Y:        y,
				Kind:     DisplayUnfoldStart,
			}
		}
		if y, ok := yOf(r.End.Line); ok {
			unfoldEnd[r.End.Line] = DisplayItem{
				Position: r.End,
				Y:        y,
				Kind:     DisplayUnfoldEnd,
			}
		}
		limitLine = 0
	}
	byLine := map[int]DisplayItem{}
	for line, item := range unfoldEnd {
		byLine[line] = item
	}
	for line, item := range unfoldStart {
		byLine[line] = item
	}
	for line, item := range folded {
		byLine[line] = item
	}
	items := make([]DisplayItem, 0, len(byLine))
	for _, item := range byLine {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Position.Compare(items[j].Position) < 0
	})
	return items
}

// UpdateDisplayItem toggles the range a gutter marker refers to. Start
// markers match their range's start position; end markers match the end.
func (s *Store) UpdateDisplayItem(item DisplayItem) {
	switch item.Kind {
	case DisplayUnfoldStart, DisplayFolded:
		for i := range s.ranges {
			if s.ranges[i].Start == item.Position {
				s.ranges[i].Status.Toggle()
				return
			}
		}
	case DisplayUnfoldEnd:
		for i := range s.ranges {
			if s.ranges[i].End == item.Position {
				s.ranges[i].Status.Toggle()
				return
			}
		}
	}
}
