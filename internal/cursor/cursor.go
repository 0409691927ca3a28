package cursor

import (
	"strings"

	"github.com/dshills/foldview/internal/engine/buffer"
	"github.com/dshills/foldview/internal/engine/tracking"
)

// maxSelectionHistory bounds the selection undo stack.
const maxSelectionHistory = 32

// RegisterData is yanked text together with the selection shape it came
// from, so a later paste can reproduce it.
type RegisterData struct {
	Content string
	Mode    VisualKind
}

// Cursor is the caret/selection state of one editor view.
type Cursor struct {
	mode Mode

	// Horiz is the column vertical movement tries to keep, nil when the
	// last motion was not vertical.
	Horiz *ColPosition

	// MotionMode is the pending operator, MotionNone when idle.
	MotionMode MotionMode

	// Affinity places the caret relative to virtual text at its offset.
	// Backward by default, so a caret at the very start of a line sits
	// before any inlay hint anchored there.
	Affinity Affinity

	history []Selection
}

// New creates a cursor in the given mode.
func New(mode Mode) *Cursor {
	return &Cursor{mode: mode}
}

// Origin creates a cursor at offset zero: a Normal block caret in modal
// editing, a single Insert caret otherwise.
func Origin(modal bool) *Cursor {
	if modal {
		return New(NormalMode{Pos: 0})
	}
	return New(InsertMode{Selection: CaretSelection(0)})
}

// Mode returns the current mode.
func (c *Cursor) Mode() Mode {
	return c.mode
}

// SetMode switches modes. Leaving Insert mode pushes the selection onto
// the history stack so it can be restored later.
func (c *Cursor) SetMode(mode Mode) {
	if m, ok := c.mode.(InsertMode); ok {
		c.history = append(c.history, m.Selection)
		if len(c.history) > maxSelectionHistory {
			c.history = c.history[1:]
		}
	}
	c.mode = mode
}

// SetInsert switches to Insert mode with the given selection.
func (c *Cursor) SetInsert(sel Selection) {
	c.SetMode(InsertMode{Selection: sel})
}

// RestorePreviousSelection pops the selection history back into Insert
// mode. It reports whether there was anything to restore.
func (c *Cursor) RestorePreviousSelection() bool {
	if len(c.history) == 0 {
		return false
	}
	sel := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.mode = InsertMode{Selection: sel}
	return true
}

// IsBlock returns true when the caret renders as a block.
func (c *Cursor) IsBlock() bool {
	switch c.mode.(type) {
	case NormalMode, VisualMode:
		return true
	default:
		return false
	}
}

// IsNormal returns true in Normal mode.
func (c *Cursor) IsNormal() bool {
	_, ok := c.mode.(NormalMode)
	return ok
}

// IsVisual returns true in Visual mode.
func (c *Cursor) IsVisual() bool {
	_, ok := c.mode.(VisualMode)
	return ok
}

// IsInsert returns true in Insert mode.
func (c *Cursor) IsInsert() bool {
	_, ok := c.mode.(InsertMode)
	return ok
}

// Offset returns the position where typing would occur.
func (c *Cursor) Offset() int {
	return c.mode.Offset()
}

// StartOffset returns the anchored position.
func (c *Cursor) StartOffset() int {
	return c.mode.StartOffset()
}

// Regions returns the selection as regions, one per caret. Normal and
// Visual modes yield a single region.
func (c *Cursor) Regions() []SelRegion {
	switch m := c.mode.(type) {
	case NormalMode:
		return []SelRegion{NewCaret(m.Pos)}
	case VisualMode:
		return []SelRegion{NewRegion(m.Start, m.End)}
	case InsertMode:
		return m.Selection.Regions()
	default:
		return nil
	}
}

// SelectionCount returns the number of carets.
func (c *Cursor) SelectionCount() int {
	if m, ok := c.mode.(InsertMode); ok {
		return m.Selection.Len()
	}
	return 0
}

// UpdateSelection moves the cursor to cover a new selection, collapsing to
// a Normal caret in the block modes.
func (c *Cursor) UpdateSelection(buf *buffer.Buffer, sel Selection) error {
	switch c.mode.(type) {
	case NormalMode, VisualMode:
		offset := sel.MinOffset()
		line, err := buf.LineOfOffset(offset)
		if err != nil {
			return err
		}
		endCol, err := buf.LineEndCol(line, false)
		if err != nil {
			return err
		}
		lineStart, err := buf.OffsetOfLine(line)
		if err != nil {
			return err
		}
		c.mode = NormalMode{Pos: min(offset, lineStart+endCol)}
	case InsertMode:
		c.SetInsert(sel)
	}
	return nil
}

// EditSelection expands the cursor to the text an edit applies to: the
// character under a Normal caret, whole lines in linewise visual, a region
// per line in blockwise visual.
func (c *Cursor) EditSelection(buf *buffer.Buffer) (Selection, error) {
	switch m := c.mode.(type) {
	case InsertMode:
		return m.Selection, nil
	case NormalMode:
		end := buf.NextGraphemeOffset(m.Pos, 1, buf.Len())
		return RegionSelection(m.Pos, end), nil
	case VisualMode:
		lo := min(m.Start, m.End)
		hi := max(m.Start, m.End)
		switch m.Kind {
		case VisualNormal:
			return RegionSelection(lo, buf.NextGraphemeOffset(hi, 1, buf.Len())), nil
		case VisualLinewise:
			startLine, err := buf.LineOfOffset(lo)
			if err != nil {
				return Selection{}, err
			}
			endLine, err := buf.LineOfOffset(hi)
			if err != nil {
				return Selection{}, err
			}
			start, err := buf.OffsetOfLine(startLine)
			if err != nil {
				return Selection{}, err
			}
			end, err := buf.OffsetOfLine(endLine + 1)
			if err != nil {
				return Selection{}, err
			}
			return RegionSelection(start, end), nil
		case VisualBlockwise:
			return c.blockwiseSelection(buf, lo, hi)
		}
	}
	return Selection{}, nil
}

// blockwiseSelection builds one region per line of the block, clamped to
// each line's own end. With Horiz at line end, every region extends to its
// line's end instead of the block's right edge.
func (c *Cursor) blockwiseSelection(buf *buffer.Buffer, lo, hi int) (Selection, error) {
	sel := NewSelection()
	startLine, startCol, err := buf.OffsetToLineCol(lo)
	if err != nil {
		return Selection{}, err
	}
	endLine, endCol, err := buf.OffsetToLineCol(hi)
	if err != nil {
		return Selection{}, err
	}
	left := min(startCol, endCol)
	right := max(startCol, endCol) + 1
	toEnd := c.Horiz != nil && c.Horiz.Kind == ColEnd
	for line := startLine; line <= endLine; line++ {
		maxCol, err := buf.LineEndCol(line, true)
		if err != nil {
			return Selection{}, err
		}
		if left > maxCol {
			continue
		}
		lineRight := right
		if toEnd || lineRight > maxCol {
			lineRight = maxCol
		}
		start, err := buf.OffsetOfLineCol(line, left)
		if err != nil {
			return Selection{}, err
		}
		end, err := buf.OffsetOfLineCol(line, lineRight)
		if err != nil {
			return Selection{}, err
		}
		sel.AddRegion(NewRegion(start, end))
	}
	return sel, nil
}

// ApplyDelta re-bases the cursor through an edit and clears the remembered
// column. A Normal caret drifts forward past text inserted at it; a Visual
// anchor stays put while its active edge drifts.
func (c *Cursor) ApplyDelta(delta tracking.Delta) {
	tr := tracking.NewTransformer(delta)
	switch m := c.mode.(type) {
	case NormalMode:
		c.mode = NormalMode{Pos: tr.Transform(m.Pos, true)}
	case VisualMode:
		c.mode = VisualMode{
			Start: tr.Transform(m.Start, false),
			End:   tr.Transform(m.End, true),
			Kind:  m.Kind,
		}
	case InsertMode:
		c.SetInsert(m.Selection.ApplyDelta(delta, true, DriftDefault))
	}
	c.Horiz = nil
}

// Yank copies the selected text. Caret regions in Insert mode yank whole
// lines; blockwise selections join one line fragment per row.
func (c *Cursor) Yank(buf *buffer.Buffer) (RegisterData, error) {
	switch m := c.mode.(type) {
	case InsertMode:
		return yankInsert(buf, m.Selection)
	case NormalMode:
		end := buf.NextGraphemeOffset(m.Pos, 1, buf.Len())
		content, err := buf.Slice(buffer.Interval{Start: m.Pos, End: end})
		if err != nil {
			return RegisterData{}, err
		}
		return RegisterData{Content: content, Mode: VisualNormal}, nil
	case VisualMode:
		return c.yankVisual(buf, m)
	}
	return RegisterData{}, nil
}

func yankInsert(buf *buffer.Buffer, sel Selection) (RegisterData, error) {
	mode := VisualNormal
	var content strings.Builder
	for _, r := range sel.Regions() {
		var piece string
		if r.IsCaret() {
			mode = VisualLinewise
			line, err := buf.LineOfOffset(r.Start)
			if err != nil {
				return RegisterData{}, err
			}
			piece, err = buf.LineContent(line)
			if err != nil {
				return RegisterData{}, err
			}
		} else {
			var err error
			piece, err = buf.Slice(buffer.Interval{Start: r.Min(), End: r.Max()})
			if err != nil {
				return RegisterData{}, err
			}
		}
		if content.Len() > 0 && !strings.HasSuffix(content.String(), "\n") {
			content.WriteByte('\n')
		}
		content.WriteString(piece)
	}
	return RegisterData{Content: content.String(), Mode: mode}, nil
}

func (c *Cursor) yankVisual(buf *buffer.Buffer, m VisualMode) (RegisterData, error) {
	lo := min(m.Start, m.End)
	hi := max(m.Start, m.End)
	switch m.Kind {
	case VisualLinewise:
		startLine, err := buf.LineOfOffset(lo)
		if err != nil {
			return RegisterData{}, err
		}
		endLine, err := buf.LineOfOffset(hi)
		if err != nil {
			return RegisterData{}, err
		}
		start, err := buf.OffsetOfLine(startLine)
		if err != nil {
			return RegisterData{}, err
		}
		end, err := buf.OffsetOfLine(endLine + 1)
		if err != nil {
			return RegisterData{}, err
		}
		content, err := buf.Slice(buffer.Interval{Start: start, End: end})
		if err != nil {
			return RegisterData{}, err
		}
		return RegisterData{Content: content, Mode: VisualLinewise}, nil
	case VisualBlockwise:
		sel, err := c.blockwiseSelection(buf, lo, hi)
		if err != nil {
			return RegisterData{}, err
		}
		lines := make([]string, 0, sel.Len())
		for _, r := range sel.Regions() {
			piece, err := buf.Slice(buffer.Interval{Start: r.Min(), End: r.Max()})
			if err != nil {
				return RegisterData{}, err
			}
			lines = append(lines, piece)
		}
		return RegisterData{
			Content: strings.Join(lines, "\n") + "\n",
			Mode:    VisualBlockwise,
		}, nil
	default:
		end := buf.NextGraphemeOffset(hi, 1, buf.Len())
		content, err := buf.Slice(buffer.Interval{Start: lo, End: end})
		if err != nil {
			return RegisterData{}, err
		}
		return RegisterData{Content: content, Mode: VisualNormal}, nil
	}
}

// SetOffset moves the caret. With modify, the current region extends to
// the offset instead of collapsing; with newCursor, a fresh caret is added
// alongside the existing ones.
func (c *Cursor) SetOffset(offset int, modify, newCursor bool) {
	c.setOffset(offset, modify, newCursor, nil)
}

// SetOffsetWithAffinity is SetOffset with an explicit caret affinity, used
// when the position came from clicking near virtual text.
func (c *Cursor) SetOffsetWithAffinity(offset int, modify, newCursor bool, affinity Affinity) {
	c.setOffset(offset, modify, newCursor, &affinity)
}

func (c *Cursor) setOffset(offset int, modify, newCursor bool, affinity *Affinity) {
	if affinity != nil {
		c.Affinity = *affinity
	}
	switch m := c.mode.(type) {
	case NormalMode:
		if modify && m.Pos != offset {
			c.mode = VisualMode{Start: m.Pos, End: offset, Kind: VisualNormal}
		} else {
			c.mode = NormalMode{Pos: offset}
		}
	case VisualMode:
		if modify {
			c.mode = VisualMode{Start: m.Start, End: offset, Kind: m.Kind}
		} else {
			c.mode = NormalMode{Pos: offset}
		}
	case InsertMode:
		switch {
		case newCursor:
			sel := m.Selection
			region := NewCaret(offset)
			if affinity != nil {
				region.StartAffinity = *affinity
				region.EndAffinity = *affinity
			}
			if modify {
				if last, ok := sel.LastInserted(); ok {
					region = NewRegion(last.Start, offset)
				}
				sel.ReplaceLastInserted(region)
			} else {
				sel.AddRegion(region)
			}
			c.SetInsert(sel)
		case modify:
			sel := NewSelection()
			if first, ok := m.Selection.First(); ok {
				region := NewRegion(first.Start, offset)
				region.StartAffinity = first.StartAffinity
				if affinity != nil {
					region.EndAffinity = *affinity
				}
				sel.AddRegion(region)
			} else {
				sel.AddRegion(NewCaret(offset))
			}
			c.SetInsert(sel)
		default:
			region := NewCaret(offset)
			if affinity != nil {
				region.StartAffinity = *affinity
				region.EndAffinity = *affinity
			}
			c.SetInsert(FromRegion(region))
		}
	}
}

// AddRegion extends the cursor with a freshly selected range, as from a
// double-click word selection or a drag. In the block modes the range
// folds into one visual selection; in Insert mode it becomes another
// region, merging with the last one when modify is set.
func (c *Cursor) AddRegion(start, end int, modify, newCursor bool) {
	switch m := c.mode.(type) {
	case NormalMode:
		c.mode = VisualMode{Start: start, End: end - 1, Kind: VisualNormal}
	case VisualMode:
		forward := m.End >= m.Start
		lo := min(min(m.Start, m.End), min(start, end-1))
		hi := max(max(m.Start, m.End), max(start, end-1))
		if forward {
			c.mode = VisualMode{Start: lo, End: hi, Kind: VisualNormal}
		} else {
			c.mode = VisualMode{Start: hi, End: lo, Kind: VisualNormal}
		}
	case InsertMode:
		region := NewRegion(start, end)
		switch {
		case newCursor:
			sel := m.Selection
			if modify {
				if last, ok := sel.LastInserted(); ok {
					region = last.MergeWith(region)
				}
				sel.ReplaceLastInserted(region)
			} else {
				sel.AddRegion(region)
			}
			c.SetInsert(sel)
		case modify:
			sel := m.Selection
			sel.AddRegion(region)
			c.SetInsert(sel)
		default:
			c.SetInsert(FromRegion(region))
		}
	}
}

// GetFirstSelectionAfter places a caret at the edit boundary closest to
// the cursor, the position a caller wants after an external edit such as a
// formatter run. It reports false when the delta is empty.
func GetFirstSelectionAfter(c *Cursor, buf *buffer.Buffer, delta tracking.Delta) (*Cursor, bool) {
	if delta.IsEmpty() {
		return nil, false
	}
	tr := tracking.NewTransformer(delta)
	offset := tr.Transform(c.Offset(), false)

	best, bestDist := -1, -1
	consider := func(pos int) {
		dist := pos - offset
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = pos, dist
		}
	}
	for _, ch := range delta.Changes {
		start := tr.Transform(ch.Interval.Start, false)
		consider(start)
		if len(ch.NewText) > 0 {
			consider(start + len(ch.NewText))
		}
	}
	if best < 0 {
		return nil, false
	}

	next := New(c.mode)
	switch c.mode.(type) {
	case NormalMode, VisualMode:
		line, err := buf.LineOfOffset(best)
		if err != nil {
			return nil, false
		}
		endCol, err := buf.LineEndCol(line, false)
		if err != nil {
			return nil, false
		}
		lineStart, _ := buf.OffsetOfLine(line)
		next.mode = NormalMode{Pos: min(best, lineStart+endCol)}
	case InsertMode:
		next.mode = InsertMode{Selection: CaretSelection(best)}
	}
	return next, true
}
