package tracking

import "github.com/dshills/foldview/internal/engine/buffer"

// Interval is an alias for buffer.Interval for convenience.
type Interval = buffer.Interval

// Transformer maps offsets from the coordinate space before a delta to the
// space after it.
type Transformer struct {
	delta Delta
}

// NewTransformer creates a transformer for the given delta.
func NewTransformer(delta Delta) *Transformer {
	return &Transformer{delta: delta}
}

// Transform maps an old-text offset to its new-text position.
//
// Rules per change:
//   - Offset before the change: unchanged.
//   - Offset after the change: shifted by the change's delta.
//   - Offset exactly at the change start: stays put when after is false,
//     moves past the inserted text when after is true.
//   - Offset strictly inside the replaced interval: collapses to the start
//     of the replacement (or its end when after is true).
func (t *Transformer) Transform(offset int, after bool) int {
	for _, c := range t.delta.Changes {
		offset = transformOne(offset, c, after)
	}
	return offset
}

func transformOne(offset int, c Change, after bool) int {
	start, end := c.Interval.Start, c.Interval.End
	newLen := len(c.NewText)

	switch {
	case offset < start:
		return offset
	case offset == start:
		if after {
			return start + newLen
		}
		return start
	case offset < end:
		if after {
			return start + newLen
		}
		return start
	default:
		return offset - (end - start) + newLen
	}
}

// TransformInterval maps an interval through the delta, transforming the
// start with after=false and the end with after=true so that text inserted
// at either boundary is absorbed into the interval.
func (t *Transformer) TransformInterval(iv Interval) Interval {
	start := t.Transform(iv.Start, false)
	end := t.Transform(iv.End, true)
	if end < start {
		end = start
	}
	return Interval{Start: start, End: end}
}

// TransformIntervalShrink maps an interval through the delta with the
// opposite bias: insertions at either boundary fall outside the interval.
func (t *Transformer) TransformIntervalShrink(iv Interval) Interval {
	start := t.Transform(iv.Start, true)
	end := t.Transform(iv.End, false)
	if end < start {
		end = start
	}
	return Interval{Start: start, End: end}
}
