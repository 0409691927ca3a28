package cursor

import (
	"sort"

	"github.com/dshills/foldview/internal/engine/tracking"
)

// SelRegion is one selection region. Start is the anchor, End the active
// edge; End may precede Start. Start == End is a caret.
type SelRegion struct {
	Start int
	End   int

	// StartAffinity and EndAffinity place the edges relative to virtual
	// text at the same offset.
	StartAffinity Affinity
	EndAffinity   Affinity

	// Horiz is the remembered column for vertical movement, when any.
	Horiz *ColPosition
}

// NewRegion creates a region from anchor to active edge.
func NewRegion(start, end int) SelRegion {
	return SelRegion{Start: start, End: end}
}

// NewCaret creates an empty region.
func NewCaret(offset int) SelRegion {
	return SelRegion{Start: offset, End: offset}
}

// Min returns the lower edge.
func (r SelRegion) Min() int {
	return min(r.Start, r.End)
}

// Max returns the upper edge.
func (r SelRegion) Max() int {
	return max(r.Start, r.End)
}

// IsCaret returns true when the region has no extent.
func (r SelRegion) IsCaret() bool {
	return r.Start == r.End
}

// IsForward returns true when the active edge is at or past the anchor.
func (r SelRegion) IsForward() bool {
	return r.End >= r.Start
}

// MergeWith unions two regions, keeping r's direction.
func (r SelRegion) MergeWith(other SelRegion) SelRegion {
	lo := min(r.Min(), other.Min())
	hi := max(r.Max(), other.Max())
	if r.IsForward() {
		return SelRegion{Start: lo, End: hi}
	}
	return SelRegion{Start: hi, End: lo}
}

// shouldMerge reports whether other belongs in the same region as r:
// overlapping always, touching only when one side is a caret.
func (r SelRegion) shouldMerge(other SelRegion) bool {
	if other.Min() < r.Max() {
		return true
	}
	return other.Min() == r.Max() && (r.IsCaret() || other.IsCaret())
}

// InsertDrift tells ApplyDelta how regions behave around an insertion that
// lands exactly on a region edge.
type InsertDrift uint8

const (
	// DriftDefault moves both edges per the after flag.
	DriftDefault InsertDrift = iota

	// DriftInside keeps the inserted text inside non-caret regions.
	DriftInside

	// DriftOutside keeps the inserted text outside non-caret regions.
	DriftOutside
)

// Selection is an ordered set of non-overlapping regions. The zero value
// is an empty selection.
type Selection struct {
	regions      []SelRegion
	lastInserted int
}

// NewSelection creates an empty selection.
func NewSelection() Selection {
	return Selection{}
}

// CaretSelection creates a selection holding one caret.
func CaretSelection(offset int) Selection {
	return FromRegion(NewCaret(offset))
}

// RegionSelection creates a selection holding one region.
func RegionSelection(start, end int) Selection {
	return FromRegion(NewRegion(start, end))
}

// FromRegion creates a selection holding the given region.
func FromRegion(r SelRegion) Selection {
	return Selection{regions: []SelRegion{r}}
}

// Regions returns the regions in offset order.
func (s Selection) Regions() []SelRegion {
	return s.regions
}

// Len returns the number of regions.
func (s Selection) Len() int {
	return len(s.regions)
}

// IsEmpty returns true when the selection holds no regions.
func (s Selection) IsEmpty() bool {
	return len(s.regions) == 0
}

// First returns the lowest region.
func (s Selection) First() (SelRegion, bool) {
	if len(s.regions) == 0 {
		return SelRegion{}, false
	}
	return s.regions[0], true
}

// Last returns the highest region.
func (s Selection) Last() (SelRegion, bool) {
	if len(s.regions) == 0 {
		return SelRegion{}, false
	}
	return s.regions[len(s.regions)-1], true
}

// LastInserted returns the most recently added region.
func (s Selection) LastInserted() (SelRegion, bool) {
	if len(s.regions) == 0 {
		return SelRegion{}, false
	}
	return s.regions[s.lastInserted], true
}

// ReplaceLastInserted swaps the most recently added region for another,
// re-merging as needed.
func (s *Selection) ReplaceLastInserted(r SelRegion) {
	if len(s.regions) == 0 {
		s.AddRegion(r)
		return
	}
	s.regions = append(s.regions[:s.lastInserted], s.regions[s.lastInserted+1:]...)
	s.AddRegion(r)
}

// MinOffset returns the lowest offset covered.
func (s Selection) MinOffset() int {
	if len(s.regions) == 0 {
		return 0
	}
	return s.regions[0].Min()
}

// MaxOffset returns the highest offset covered.
func (s Selection) MaxOffset() int {
	if len(s.regions) == 0 {
		return 0
	}
	return s.regions[len(s.regions)-1].Max()
}

// CursorOffset returns the active edge of the most recently added region,
// the position where typing occurs.
func (s Selection) CursorOffset() int {
	if len(s.regions) == 0 {
		return 0
	}
	return s.regions[s.lastInserted].End
}

// Contains reports whether any region covers the offset, edges included.
func (s Selection) Contains(offset int) bool {
	for _, r := range s.regions {
		if r.Min() <= offset && offset <= r.Max() {
			return true
		}
	}
	return false
}

// AddRegion inserts a region, keeping the set ordered and merging any
// regions the new one overlaps.
func (s *Selection) AddRegion(r SelRegion) {
	ix := sort.Search(len(s.regions), func(i int) bool {
		return s.regions[i].Max() >= r.Min()
	})
	if ix == len(s.regions) {
		s.regions = append(s.regions, r)
		s.lastInserted = ix
		return
	}
	endIx := ix
	if s.regions[ix].Min() <= r.Min() {
		if s.regions[ix].shouldMerge(r) {
			r = s.regions[ix].MergeWith(r)
		} else {
			ix++
		}
		endIx = ix
	}
	for endIx < len(s.regions) && r.shouldMerge(s.regions[endIx]) {
		r = r.MergeWith(s.regions[endIx])
		endIx++
	}
	if ix == endIx {
		s.regions = append(s.regions, SelRegion{})
		copy(s.regions[ix+1:], s.regions[ix:])
		s.regions[ix] = r
	} else {
		s.regions[ix] = r
		s.regions = append(s.regions[:ix+1], s.regions[endIx:]...)
	}
	s.lastInserted = ix
}

// ApplyDelta maps every region through an edit and returns the re-based
// selection. after controls which side of an insertion carets land on;
// drift overrides that per edge for non-caret regions.
func (s Selection) ApplyDelta(delta tracking.Delta, after bool, drift InsertDrift) Selection {
	result := NewSelection()
	tr := tracking.NewTransformer(delta)
	for _, r := range s.regions {
		startAfter, endAfter := after, after
		if !r.IsCaret() {
			switch drift {
			case DriftInside:
				startAfter, endAfter = !r.IsForward(), r.IsForward()
			case DriftOutside:
				startAfter, endAfter = r.IsForward(), !r.IsForward()
			}
		}
		result.AddRegion(SelRegion{
			Start:         tr.Transform(r.Start, startAfter),
			End:           tr.Transform(r.End, endAfter),
			StartAffinity: r.StartAffinity,
			EndAffinity:   r.EndAffinity,
		})
	}
	return result
}
