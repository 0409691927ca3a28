package view

import (
	"fmt"

	"github.com/dshills/foldview/internal/config"
	"github.com/dshills/foldview/internal/engine/buffer"
	"github.com/dshills/foldview/internal/engine/tracking"
	"github.com/dshills/foldview/internal/folding"
	"github.com/dshills/foldview/internal/phantom"
	"github.com/dshills/foldview/internal/protocol"
)

// visualLine is one cached row: the phantom structure plus the merged
// origin text it interleaves with.
type visualLine struct {
	ml     *phantom.MultiLine
	origin string
}

// DocLines derives visual lines from a buffer, the folding store, and the
// latest server results. Derived state is invalidated by any buffer edit or
// fold/hint/diagnostic change and recomputed lazily on the next read.
type DocLines struct {
	buf    *buffer.Buffer
	folds  *folding.Store
	cfg    config.Config
	styles Styles

	hints []protocol.InlayHint
	diags []protocol.Diagnostic

	// gen counts fold/hint/diagnostic/config changes; together with the
	// buffer revision it keys the caches below.
	gen      uint64
	cacheRev buffer.Revision
	cacheGen uint64
	// folded drives phantom generation; merged (adjacent folds joined)
	// drives the hidden-line math. The two sets differ when a fold ends on
	// the line another one starts.
	folded folding.FoldedRanges
	merged folding.FoldedRanges
	starts []int
	lines  map[int]*visualLine
}

// NewDocLines creates the derived-line layer over buf.
func NewDocLines(buf *buffer.Buffer, cfg config.Config) *DocLines {
	return &DocLines{
		buf:    buf,
		folds:  folding.NewStore(),
		cfg:    cfg,
		styles: StylesFromConfig(cfg),
		lines:  make(map[int]*visualLine),
	}
}

// Buffer returns the underlying document.
func (d *DocLines) Buffer() *buffer.Buffer {
	return d.buf
}

// Folds returns the folding store. Mutating it directly requires a
// following InvalidateFolds call.
func (d *DocLines) Folds() *folding.Store {
	return d.folds
}

// Styles returns the resolved colors.
func (d *DocLines) Styles() Styles {
	return d.styles
}

// Config returns the active settings.
func (d *DocLines) Config() config.Config {
	return d.cfg
}

// SetConfig applies new settings and invalidates derived lines.
func (d *DocLines) SetConfig(cfg config.Config) {
	d.cfg = cfg
	d.styles = StylesFromConfig(cfg)
	d.gen++
}

// InvalidateFolds discards derived lines after a direct folding-store
// mutation such as ToggleAt.
func (d *DocLines) InvalidateFolds() {
	d.gen++
}

// SetFoldingRanges installs server folding ranges computed against rev.
// Stale results are dropped and false is returned.
func (d *DocLines) SetFoldingRanges(rev buffer.Revision, ranges []protocol.FoldingRange) bool {
	if rev != d.buf.Revision() {
		return false
	}
	d.folds.UpdateRanges(ranges)
	d.gen++
	return true
}

// SetInlayHints installs server inlay hints computed against rev. Stale
// results are dropped and false is returned.
func (d *DocLines) SetInlayHints(rev buffer.Revision, hints []protocol.InlayHint) bool {
	if rev != d.buf.Revision() {
		return false
	}
	d.hints = hints
	d.gen++
	return true
}

// SetDiagnostics installs diagnostics computed against rev. Stale results
// are dropped and false is returned.
func (d *DocLines) SetDiagnostics(rev buffer.Revision, diags []protocol.Diagnostic) bool {
	if rev != d.buf.Revision() {
		return false
	}
	d.diags = diags
	d.gen++
	return true
}

// ToggleFoldAt flips the folding range whose start position matches pos.
func (d *DocLines) ToggleFoldAt(pos protocol.Position) bool {
	if !d.folds.ToggleAt(pos) {
		return false
	}
	d.gen++
	return true
}

// SaveFoldState serializes the folded ranges together with the document's
// identity for session persistence.
func (d *DocLines) SaveFoldState() ([]byte, error) {
	return d.folds.MarshalState(d.buf.ID())
}

// RestoreFoldState re-applies fold state saved by SaveFoldState. State
// captured from a different document is rejected.
func (d *DocLines) RestoreFoldState(data []byte) error {
	if err := d.folds.RestoreState(d.buf.ID(), data); err != nil {
		return err
	}
	d.gen++
	return nil
}

// FoldAtOffset folds the innermost range containing offset.
func (d *DocLines) FoldAtOffset(offset int) error {
	if _, err := d.folds.FoldMinRangeByOffset(d.buf, offset); err != nil {
		return err
	}
	d.gen++
	return nil
}

// UnfoldAtOffset unfolds every folded range containing offset.
func (d *DocLines) UnfoldAtOffset(offset int) error {
	if err := d.folds.UnfoldAllRangeByOffset(d.buf, offset); err != nil {
		return err
	}
	d.gen++
	return nil
}

// ApplyEdit applies an edit to the buffer, re-bases the folding store
// through the resulting delta, and drops now-stale hints and diagnostics.
// The returned delta lets the caller transform its own positions, typically
// via Cursor.ApplyDelta.
func (d *DocLines) ApplyEdit(edit buffer.Edit) (tracking.Delta, error) {
	old := buffer.New(d.buf.Text())
	res, err := d.buf.Apply(edit)
	if err != nil {
		return tracking.Delta{}, err
	}
	delta := tracking.NewDelta(tracking.FromEditResult(res))
	if err := d.folds.ApplyDelta(old, d.buf, delta); err != nil {
		return delta, fmt.Errorf("re-basing folds: %w", err)
	}
	d.hints = nil
	d.diags = nil
	d.gen++
	return delta, nil
}

// ensure rebuilds the derived indexes when the buffer or fold/hint state
// has changed since the last read.
func (d *DocLines) ensure() error {
	if d.cacheRev == d.buf.Revision() && d.cacheGen == d.gen && d.starts != nil {
		return nil
	}
	d.cacheRev = d.buf.Revision()
	d.cacheGen = d.gen
	d.lines = make(map[int]*visualLine)

	d.folded = d.folds.AllFoldedRanges()
	d.merged = d.folds.MergedFoldedRanges()
	if ph := d.cfg.Editor.FoldPlaceholder; ph != "" {
		for i := range d.folded {
			d.folded[i].CollapsedText = ph
		}
	}

	d.starts = d.starts[:0]
	idx := 0
	for line := 0; line < d.buf.NumLines(); line++ {
		hidden, next := d.merged.ContainLine(idx, line)
		idx = next
		if !hidden {
			d.starts = append(d.starts, line)
		}
	}
	if len(d.starts) == 0 {
		return ErrNoVisualLines
	}
	return nil
}

// VisualLines returns the origin line each visual row starts at, top to
// bottom. Lines hidden inside a collapsed fold do not appear.
func (d *DocLines) VisualLines() ([]int, error) {
	if err := d.ensure(); err != nil {
		return nil, err
	}
	return d.starts, nil
}

// VisualLine builds (or returns the cached) phantom structure for the
// visual row starting at the given origin line, following fold
// continuations across lines.
func (d *DocLines) VisualLine(line int) (*phantom.MultiLine, error) {
	vl, err := d.visualLine(line)
	if err != nil {
		return nil, err
	}
	return vl.ml, nil
}

func (d *DocLines) visualLine(line int) (*visualLine, error) {
	if err := d.ensure(); err != nil {
		return nil, err
	}
	if vl, ok := d.lines[line]; ok {
		return vl, nil
	}

	cur, content, err := d.buildLine(line)
	if err != nil {
		return nil, err
	}
	ml := phantom.NewMultiLine(cur)
	origin := content
	for {
		next, ok := cur.FoldedLine()
		if !ok {
			break
		}
		cur, content, err = d.buildLine(next)
		if err != nil {
			return nil, err
		}
		ml.Merge(cur)
		origin += content
	}

	vl := &visualLine{ml: ml, origin: origin}
	d.lines[line] = vl
	return vl, nil
}

// buildLine assembles the single-origin-line phantom structure: fold
// placeholders from the folding store, then inlay hints and error-lens
// diagnostics anchored on the line.
func (d *DocLines) buildLine(line int) (*phantom.Line, string, error) {
	content, err := d.buf.LineContent(line)
	if err != nil {
		return nil, "", err
	}
	offsetOfLine, err := d.buf.OffsetOfLine(line)
	if err != nil {
		return nil, "", err
	}

	phantoms, err := d.folded.PhantomsForLine(d.buf, line)
	if err != nil {
		return nil, "", err
	}
	for i := range phantoms {
		phantoms[i].Fg = d.styles.FoldedFg
		phantoms[i].Bg = d.styles.FoldedBg
	}

	if d.cfg.InlayHints.Enabled {
		for _, h := range d.hints {
			if h.Position.Line != line {
				continue
			}
			// Text inside a collapsed span is replaced by its placeholder,
			// so a hint anchored there has nowhere to render.
			if d.folded.ContainsPosition(h.Position) {
				continue
			}
			col := h.Position.Character
			if col > len(content) {
				col = len(content)
			}
			phantoms = append(phantoms, phantom.PhantomText{
				Kind:     phantom.KindInlayHint,
				Line:     line,
				Col:      col,
				MergeCol: col,
				Text:     h.Text(),
				Fg:       d.styles.HintFg,
				Bg:       d.styles.HintBg,
				NextLine: -1,
			})
		}
	}

	if d.cfg.Diagnostics.ErrorLens {
		endCol, err := d.buf.LineEndCol(line, true)
		if err != nil {
			return nil, "", err
		}
		anchor := protocol.Position{Line: line, Character: endCol}
		for _, diag := range d.diags {
			if diag.Range.Start.Line != line || diag.Severity > protocol.SeverityWarning {
				continue
			}
			if d.folded.ContainsPosition(diag.Range.Start) || d.folded.ContainsPosition(anchor) {
				continue
			}
			fg := d.styles.ErrorFg
			if diag.Severity == protocol.SeverityWarning {
				fg = d.styles.WarningFg
			}
			phantoms = append(phantoms, phantom.PhantomText{
				Kind:     phantom.KindDiagnostic,
				Line:     line,
				Col:      endCol,
				MergeCol: endCol,
				Text:     "    " + diag.Message,
				Fg:       fg,
				NextLine: -1,
			})
		}
	}

	return phantom.NewLine(line, len(content), offsetOfLine, phantoms), content, nil
}
