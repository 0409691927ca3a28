package layout

import "testing"

func TestShapeTabExpansion(t *testing.T) {
	l := NewTextLayout("a\tb", NewTabExpander(4), DefaultMetrics())
	cells := l.Cells()
	if len(cells) != 3 {
		t.Fatalf("cells = %d, want 3", len(cells))
	}
	widths := []int{1, 3, 1}
	for i, want := range widths {
		if cells[i].Width != want {
			t.Errorf("cell %d width = %d, want %d", i, cells[i].Width, want)
		}
	}
	if l.Width() != 5 {
		t.Errorf("Width() = %d, want 5", l.Width())
	}

	// A tab at a tab stop advances a full stop.
	l = NewTextLayout("\tx", NewTabExpander(4), DefaultMetrics())
	if l.Cells()[0].Width != 4 {
		t.Errorf("leading tab width = %d, want 4", l.Cells()[0].Width)
	}
}

func TestShapeWideAndCombining(t *testing.T) {
	l := NewTextLayout("日本a", nil, DefaultMetrics())
	cells := l.Cells()
	if len(cells) != 3 {
		t.Fatalf("cells = %d, want 3", len(cells))
	}
	if cells[0].Width != 2 || cells[1].Width != 2 || cells[2].Width != 1 {
		t.Errorf("widths = %d %d %d, want 2 2 1", cells[0].Width, cells[1].Width, cells[2].Width)
	}
	if cells[1].Col != 3 || cells[2].Col != 6 {
		t.Errorf("cols = %d %d, want 3 6", cells[1].Col, cells[2].Col)
	}

	// e + combining acute stays one cluster one cell wide.
	l = NewTextLayout("éx", nil, DefaultMetrics())
	cells = l.Cells()
	if len(cells) != 2 {
		t.Fatalf("combining cells = %d, want 2", len(cells))
	}
	if cells[0].Width != 1 || len(cells[0].Text) != 3 {
		t.Errorf("cluster width = %d len = %d, want 1 3", cells[0].Width, len(cells[0].Text))
	}
}

func TestShapeTrailingEOLIsZeroWidth(t *testing.T) {
	l := NewTextLayout("ab\r\n", nil, DefaultMetrics())
	if l.Width() != 2 {
		t.Errorf("Width() = %d, want 2", l.Width())
	}
	cells := l.Cells()
	last := cells[len(cells)-1]
	if last.Width != 0 || last.Text != "\r\n" {
		t.Errorf("last cell = %+v, want zero-width CRLF cluster", last)
	}
}

func TestHitPointHalves(t *testing.T) {
	m := Metrics{CellWidth: 10, LineHeight: 20}
	l := NewTextLayout("abc", nil, m)

	tests := []struct {
		x      int
		col    int
		inside bool
	}{
		{0, 0, true},
		{4, 0, true},
		{5, 1, true},
		{14, 1, true},
		{15, 2, true},
		{25, 3, true},
		{29, 3, true},
		{30, 3, false},
		{100, 3, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		col, inside := l.HitPoint(Point{X: tt.x})
		if col != tt.col || inside != tt.inside {
			t.Errorf("HitPoint(%d) = (%d, %t), want (%d, %t)", tt.x, col, inside, tt.col, tt.inside)
		}
	}
}

func TestHitPointUnitCells(t *testing.T) {
	// One-unit cells have no interior pixels, so every hit must land on
	// the cluster's own column rather than rounding up past it.
	m := Metrics{CellWidth: 1, LineHeight: 1}
	l := NewTextLayout("abc", nil, m)
	for x := 0; x < 3; x++ {
		col, inside := l.HitPoint(Point{X: x})
		if col != x || !inside {
			t.Errorf("HitPoint(%d) = (%d, %t), want (%d, true)", x, col, inside, x)
		}
	}
	if col, inside := l.HitPoint(Point{X: 3}); col != 3 || inside {
		t.Errorf("HitPoint(3) = (%d, %t), want (3, false)", col, inside)
	}
}

func TestHitPointWideCluster(t *testing.T) {
	m := Metrics{CellWidth: 10, LineHeight: 20}
	l := NewTextLayout("日a", nil, m)

	// The ideograph spans pixels [0, 20) with its midpoint at 10.
	if col, _ := l.HitPoint(Point{X: 9}); col != 0 {
		t.Errorf("left half of wide cluster: col = %d, want 0", col)
	}
	if col, _ := l.HitPoint(Point{X: 10}); col != 3 {
		t.Errorf("right half of wide cluster: col = %d, want 3", col)
	}
	if col, inside := l.HitPoint(Point{X: 30}); col != 4 || inside {
		t.Errorf("past end: (%d, %t), want (4, false)", col, inside)
	}
}

func TestHitPointSkipsEOL(t *testing.T) {
	m := Metrics{CellWidth: 10, LineHeight: 20}
	l := NewTextLayout("ab\r\n", nil, m)
	if col, inside := l.HitPoint(Point{X: 50}); col != 2 || inside {
		t.Errorf("click past end = (%d, %t), want (2, false)", col, inside)
	}
}

func TestHitPositionAndRoundTrip(t *testing.T) {
	m := Metrics{CellWidth: 10, LineHeight: 20}
	l := NewTextLayout("a\t日b", NewTabExpander(4), m)

	// Byte cols: a=0, tab=1, ideograph=2, b=5. Display cols: 0, 1, 4, 6.
	wantX := map[int]int{0: 0, 1: 10, 2: 40, 5: 60, 8: 70}
	for col, x := range wantX {
		if got := l.HitPosition(col); got.X != x {
			t.Errorf("HitPosition(%d).X = %d, want %d", col, got.X, x)
		}
	}

	// A column inside a cluster snaps to the cluster start.
	if got := l.HitPosition(3); got.X != 40 {
		t.Errorf("HitPosition(3).X = %d, want 40", got.X)
	}

	// Hitting a cluster's left edge lands back on its column.
	for _, col := range []int{0, 1, 2, 5} {
		p := l.HitPosition(col)
		back, inside := l.HitPoint(p)
		if back != col || !inside {
			t.Errorf("round trip col %d: got (%d, %t)", col, back, inside)
		}
	}
}

func TestColOfDisplayCol(t *testing.T) {
	l := NewTextLayout("a\tb", NewTabExpander(4), DefaultMetrics())

	tests := []struct {
		dcol int
		col  int
		ok   bool
	}{
		{0, 0, true},
		{1, 1, true},
		{2, 1, true},
		{3, 1, true},
		{4, 2, true},
		{5, 3, false},
	}
	for _, tt := range tests {
		col, ok := l.ColOfDisplayCol(tt.dcol)
		if col != tt.col || ok != tt.ok {
			t.Errorf("ColOfDisplayCol(%d) = (%d, %t), want (%d, %t)", tt.dcol, col, ok, tt.col, tt.ok)
		}
	}
}

func TestNextTabStop(t *testing.T) {
	e := NewTabExpander(8)
	tests := []struct{ col, want int }{
		{0, 8}, {1, 8}, {7, 8}, {8, 16}, {9, 16},
	}
	for _, tt := range tests {
		if got := e.NextTabStop(tt.col); got != tt.want {
			t.Errorf("NextTabStop(%d) = %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestLineCacheHitMiss(t *testing.T) {
	c := NewLineCache(nil, DefaultMetrics(), 8)

	l1 := c.Get(0, "hello")
	l2 := c.Get(0, "hello")
	if l1 != l2 {
		t.Error("second Get with same text returned a new layout")
	}
	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", stats.Hits, stats.Misses)
	}

	// Changed content invalidates via the hash check.
	l3 := c.Get(0, "hello world")
	if l3 == l1 || l3.Text() != "hello world" {
		t.Error("changed text did not reshape the line")
	}
	if got := c.Stats().Misses; got != 2 {
		t.Errorf("misses = %d, want 2", got)
	}
}

func TestLineCacheInvalidateFrom(t *testing.T) {
	c := NewLineCache(nil, DefaultMetrics(), 0)
	for i := 0; i < 5; i++ {
		c.Get(i, "line")
	}
	c.InvalidateFrom(2)
	if c.Size() != 2 {
		t.Errorf("size after InvalidateFrom(2) = %d, want 2", c.Size())
	}
	c.InvalidateAll()
	if c.Size() != 0 {
		t.Errorf("size after InvalidateAll = %d, want 0", c.Size())
	}
}

func TestLineCacheEviction(t *testing.T) {
	c := NewLineCache(nil, DefaultMetrics(), 2)
	c.Get(0, "a")
	c.Get(1, "b")
	c.Get(2, "c")
	if c.Size() != 2 {
		t.Errorf("size = %d, want 2", c.Size())
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("evictions = %d, want 1", got)
	}
}
