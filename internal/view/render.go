package view

import "github.com/dshills/foldview/internal/phantom"

// RenderLine is the drawable form of one visual row.
type RenderLine struct {
	// Line is the origin line the row starts at.
	Line int

	// LastLine is the last origin line the row absorbs through folds.
	LastLine int

	// Text is the fully rendered text including the trailing line ending.
	Text string

	// Spans style the phantom portions of Text, ordered by start column and
	// non-overlapping.
	Spans []StyleSpan

	// Folds are the fold placeholders in the row, kept so a click on one
	// can toggle the fold. Entries alias the row's phantom structure.
	Folds []*phantom.PhantomText
}

// RenderLine produces the drawable form of the visual row starting at the
// given origin line.
func (d *DocLines) RenderLine(line int) (RenderLine, error) {
	vl, err := d.visualLine(line)
	if err != nil {
		return RenderLine{}, err
	}

	rl := RenderLine{
		Line:     line,
		LastLine: vl.ml.LastLine(),
		Text:     vl.ml.FinalText(vl.origin),
	}
	for _, p := range vl.ml.Phantoms() {
		if p.Kind == phantom.KindFolded && len(p.Text) > 0 {
			rl.Folds = append(rl.Folds, p)
		}
		if len(p.Text) == 0 {
			continue
		}
		if !p.Fg.Set && !p.Bg.Set && !p.Underline.Set {
			continue
		}
		rl.Spans = append(rl.Spans, StyleSpan{
			Start:     p.FinalCol,
			End:       p.NextFinalCol(),
			Fg:        p.Fg,
			Bg:        p.Bg,
			Underline: p.Underline,
		})
	}
	return rl, nil
}

// RenderAll produces every visual row of the document in order.
func (d *DocLines) RenderAll() ([]RenderLine, error) {
	starts, err := d.VisualLines()
	if err != nil {
		return nil, err
	}
	out := make([]RenderLine, 0, len(starts))
	for _, line := range starts {
		rl, err := d.RenderLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, rl)
	}
	return out, nil
}
