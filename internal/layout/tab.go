package layout

// DefaultTabWidth is used when a TabExpander is created with a non-positive
// width.
const DefaultTabWidth = 4

// TabExpander converts tab characters into display cells using fixed tab
// stops. Tab stops are at every multiple of Width, so a tab advances the
// display column to the next stop rather than by a fixed amount.
type TabExpander struct {
	// Width is the distance between tab stops in display cells.
	Width int
}

// NewTabExpander returns a TabExpander with the given tab width.
func NewTabExpander(width int) *TabExpander {
	if width <= 0 {
		width = DefaultTabWidth
	}
	return &TabExpander{Width: width}
}

// NextTabStop returns the display column of the first tab stop after col.
func (t *TabExpander) NextTabStop(col int) int {
	return col + t.Width - col%t.Width
}

// TabDisplayWidth returns the number of display cells a tab occupies when it
// starts at col.
func (t *TabExpander) TabDisplayWidth(col int) int {
	return t.NextTabStop(col) - col
}
