package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Point is a position in viewport pixel space relative to the top-left
// corner of a line.
type Point struct {
	X int
	Y int
}

// Metrics describes the monospace grid the layout maps cells onto.
type Metrics struct {
	// CellWidth is the pixel width of one display cell.
	CellWidth int
	// LineHeight is the pixel height of one visual line.
	LineHeight int
}

// DefaultMetrics returns metrics for a typical terminal-style grid.
func DefaultMetrics() Metrics {
	return Metrics{CellWidth: 8, LineHeight: 16}
}

// Cell is one shaped grapheme cluster of the rendered text.
type Cell struct {
	// Col is the byte offset of the cluster in the rendered text.
	Col int
	// Text is the cluster's bytes.
	Text string
	// Width is the cluster's display width in cells. Tabs expand to the
	// next tab stop, wide CJK clusters occupy two cells, control and EOL
	// clusters occupy zero.
	Width int
}

// NextCol returns the byte offset just past the cluster.
func (c Cell) NextCol() int {
	return c.Col + len(c.Text)
}

// TextLayout maps the rendered text of one visual line onto a display cell
// grid. Shaping happens lazily on the first query; a zero-value query on an
// unshaped layout triggers it.
//
// All columns are byte offsets into the rendered text, the same final-column
// space the phantom package produces.
type TextLayout struct {
	text    string
	tabs    *TabExpander
	metrics Metrics

	shaped bool
	cells  []Cell
	width  int
}

// NewTextLayout creates a layout for the rendered text of one visual line.
// A nil tabs uses DefaultTabWidth.
func NewTextLayout(text string, tabs *TabExpander, metrics Metrics) *TextLayout {
	if tabs == nil {
		tabs = NewTabExpander(DefaultTabWidth)
	}
	if metrics.CellWidth <= 0 {
		metrics = DefaultMetrics()
	}
	return &TextLayout{text: text, tabs: tabs, metrics: metrics}
}

// Text returns the rendered text the layout was built from.
func (l *TextLayout) Text() string {
	return l.text
}

// Metrics returns the grid metrics.
func (l *TextLayout) Metrics() Metrics {
	return l.metrics
}

func (l *TextLayout) shape() {
	if l.shaped {
		return
	}
	l.shaped = true
	col := 0
	disp := 0
	g := uniseg.NewGraphemes(l.text)
	for g.Next() {
		cluster := g.Str()
		var w int
		if cluster == "\t" {
			w = l.tabs.TabDisplayWidth(disp)
		} else {
			w = runewidth.StringWidth(cluster)
		}
		l.cells = append(l.cells, Cell{Col: col, Text: cluster, Width: w})
		col += len(cluster)
		disp += w
	}
	l.width = disp
}

// Cells returns the shaped grapheme clusters in order.
func (l *TextLayout) Cells() []Cell {
	l.shape()
	return l.cells
}

// Width returns the total display width of the line in cells, excluding
// zero-width clusters such as the trailing line break.
func (l *TextLayout) Width() int {
	l.shape()
	return l.width
}

// PixelWidth returns the total display width of the line in pixels.
func (l *TextLayout) PixelWidth() int {
	return l.Width() * l.metrics.CellWidth
}

// HitPoint translates a pixel position into a column of the rendered text.
// A click on the left half of a cluster lands before it, a click on the
// right half lands after it. inside reports whether the point fell on a
// visible cluster; clicks past the end of the line return the column after
// the last visible cluster with inside false, and clicks left of the line
// return column 0 with inside false.
func (l *TextLayout) HitPoint(p Point) (col int, inside bool) {
	l.shape()
	if p.X < 0 {
		return 0, false
	}
	disp := 0
	end := 0
	for _, c := range l.cells {
		if c.Width == 0 {
			continue
		}
		x0 := disp * l.metrics.CellWidth
		x1 := (disp + c.Width) * l.metrics.CellWidth
		if p.X < x1 {
			if 2*(p.X-x0) >= x1-x0 {
				return c.NextCol(), true
			}
			return c.Col, true
		}
		disp += c.Width
		end = c.NextCol()
	}
	return end, false
}

// HitPosition returns the pixel position of the given column. A column
// inside a cluster snaps to the cluster's start; columns past the end of the
// text map to the position after the last visible cluster.
func (l *TextLayout) HitPosition(col int) Point {
	return Point{X: l.DisplayCol(col) * l.metrics.CellWidth}
}

// DisplayCol returns the display cell index of the given column. Like
// HitPosition it snaps columns inside a cluster to the cluster's start.
func (l *TextLayout) DisplayCol(col int) int {
	l.shape()
	disp := 0
	for _, c := range l.cells {
		if col < c.NextCol() {
			return disp
		}
		disp += c.Width
	}
	return disp
}

// ColOfDisplayCol returns the column whose cluster covers the given display
// cell index. Cells past the end of the line report the column after the
// last visible cluster with ok false.
func (l *TextLayout) ColOfDisplayCol(dcol int) (col int, ok bool) {
	l.shape()
	disp := 0
	end := 0
	for _, c := range l.cells {
		if c.Width == 0 {
			continue
		}
		if dcol < disp+c.Width {
			return c.Col, true
		}
		disp += c.Width
		end = c.NextCol()
	}
	return end, false
}
