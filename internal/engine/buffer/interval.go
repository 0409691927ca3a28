package buffer

import "fmt"

// Interval is a half-open byte range in the buffer: [Start, End).
type Interval struct {
	Start int // Inclusive start offset
	End   int // Exclusive end offset
}

// NewInterval creates an interval from start and end offsets.
func NewInterval(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// String returns a human-readable representation of the interval.
func (iv Interval) String() string {
	return fmt.Sprintf("[%d:%d)", iv.Start, iv.End)
}

// Len returns the length of the interval in bytes.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// IsEmpty returns true if the interval has zero length.
func (iv Interval) IsEmpty() bool {
	return iv.Start == iv.End
}

// IsValid returns true if Start <= End.
func (iv Interval) IsValid() bool {
	return iv.Start <= iv.End
}

// Contains returns true if the given offset is within the interval.
func (iv Interval) Contains(offset int) bool {
	return offset >= iv.Start && offset < iv.End
}

// ContainsInterval returns true if other is entirely within this interval.
func (iv Interval) ContainsInterval(other Interval) bool {
	return other.Start >= iv.Start && other.End <= iv.End
}

// Overlaps returns true if this interval overlaps with another.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Translate returns the interval shifted right by delta bytes.
func (iv Interval) Translate(delta int) Interval {
	return Interval{Start: iv.Start + delta, End: iv.End + delta}
}

// Intersect returns the overlapping part of two intervals.
// The result is empty when they do not overlap.
func (iv Interval) Intersect(other Interval) Interval {
	start := iv.Start
	if other.Start > start {
		start = other.Start
	}
	end := iv.End
	if other.End < end {
		end = other.End
	}
	if end < start {
		end = start
	}
	return Interval{Start: start, End: end}
}

// Union returns the smallest interval covering both intervals.
func (iv Interval) Union(other Interval) Interval {
	start := iv.Start
	if other.Start < start {
		start = other.Start
	}
	end := iv.End
	if other.End > end {
		end = other.End
	}
	return Interval{Start: start, End: end}
}

// Equals returns true if both intervals have the same bounds.
func (iv Interval) Equals(other Interval) bool {
	return iv.Start == other.Start && iv.End == other.End
}
