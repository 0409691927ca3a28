// Package main is a terminal viewer for documents with folds, inlay hints,
// and diagnostics.
//
// Text is laid out on the terminal cell grid (one pixel per cell), so the
// hit-testing path is exercised directly by mouse events. Folding ranges,
// hints, and diagnostics can be supplied as LSP-shaped JSON files. A
// two-cell gutter shows fold markers; clicking one toggles its range.
// Folds persist across sessions of the same document via -state.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/foldview/internal/config"
	"github.com/dshills/foldview/internal/engine/buffer"
	"github.com/dshills/foldview/internal/folding"
	"github.com/dshills/foldview/internal/layout"
	"github.com/dshills/foldview/internal/phantom"
	"github.com/dshills/foldview/internal/protocol"
	"github.com/dshills/foldview/internal/view"
)

var version = "dev"

// gutterWidth is the fold-marker column plus one cell of padding.
const gutterWidth = 2

const sampleText = "fn main() {\r\n" +
	"    if true {\r\n" +
	"        println(\"yes\");\r\n" +
	"    } else {\r\n" +
	"        println(\"no\");\r\n" +
	"    }\r\n" +
	"}\r\n"

var sampleFolds = []protocol.FoldingRange{
	{StartLine: 0, StartCharacter: 10, EndLine: 6, EndCharacter: 1},
	{StartLine: 1, StartCharacter: 12, EndLine: 3, EndCharacter: 5},
	{StartLine: 3, StartCharacter: 11, EndLine: 5, EndCharacter: 5},
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to TOML config file")
		foldsPath   = flag.String("folds", "", "path to LSP folding-range JSON")
		hintsPath   = flag.String("hints", "", "path to LSP inlay-hint JSON")
		diagsPath   = flag.String("diagnostics", "", "path to LSP diagnostics JSON")
		statePath   = flag.String("state", "", "path to fold session state file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("foldview %s\n", version)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (using defaults)\n", err)
	}

	text := sampleText
	if path := flag.Arg(0); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", path, err)
			return 1
		}
		text = string(data)
	}

	doc := view.NewDocLines(buffer.New(text), cfg)
	if err := loadServerData(doc, *foldsPath, *hintsPath, *diagsPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if flag.Arg(0) == "" && *foldsPath == "" {
		doc.SetFoldingRanges(doc.Buffer().Revision(), sampleFolds)
		doc.ToggleFoldAt(sampleFolds[1].StartPosition())
		doc.ToggleFoldAt(sampleFolds[2].StartPosition())
	}
	if *statePath != "" {
		if data, err := os.ReadFile(*statePath); err == nil {
			if err := doc.RestoreFoldState(data); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: ignoring fold state: %v\n", err)
			}
		}
	}

	// One terminal cell per pixel keeps hit-testing on the cell grid.
	v := view.NewView(doc, false, layout.Metrics{CellWidth: 1, LineHeight: 1})

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	if *configPath != "" {
		w, err := config.Watch(*configPath, func(cfg config.Config, err error) {
			if err != nil {
				return
			}
			screen.PostEvent(tcell.NewEventInterrupt(cfg))
		})
		if err == nil {
			defer w.Close()
		}
	}

	if err := loop(screen, v); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *statePath != "" {
		saveFoldState(doc, *statePath)
	}
	return 0
}

func saveFoldState(doc *view.DocLines, path string) {
	data, err := doc.SaveFoldState()
	if err == nil {
		err = os.WriteFile(path, data, 0o600)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: saving fold state: %v\n", err)
	}
}

// loadServerData decodes the optional LSP-shaped JSON inputs.
func loadServerData(doc *view.DocLines, folds, hints, diags string) error {
	rev := doc.Buffer().Revision()
	if folds != "" {
		data, err := os.ReadFile(folds)
		if err != nil {
			return fmt.Errorf("reading folds: %w", err)
		}
		ranges, err := protocol.ParseFoldingRanges(data)
		if err != nil {
			return fmt.Errorf("parsing folds: %w", err)
		}
		doc.SetFoldingRanges(rev, ranges)
		for _, r := range ranges {
			doc.ToggleFoldAt(r.StartPosition())
		}
	}
	if hints != "" {
		data, err := os.ReadFile(hints)
		if err != nil {
			return fmt.Errorf("reading hints: %w", err)
		}
		parsed, err := protocol.ParseInlayHints(data)
		if err != nil {
			return fmt.Errorf("parsing hints: %w", err)
		}
		doc.SetInlayHints(rev, parsed)
	}
	if diags != "" {
		data, err := os.ReadFile(diags)
		if err != nil {
			return fmt.Errorf("reading diagnostics: %w", err)
		}
		parsed, err := protocol.ParseDiagnostics(data)
		if err != nil {
			return fmt.Errorf("parsing diagnostics: %w", err)
		}
		doc.SetDiagnostics(rev, parsed)
	}
	return nil
}

// gutterItems computes the fold markers for the rows currently rendered.
func gutterItems(v *view.View) ([]folding.DisplayItem, error) {
	starts, err := v.Doc().VisualLines()
	if err != nil {
		return nil, err
	}
	return v.Doc().Folds().DisplayItems(func(line int) (int, bool) {
		i := sort.SearchInts(starts, line)
		if i < len(starts) && starts[i] == line {
			return i, true
		}
		return 0, false
	}), nil
}

// toggleGutter toggles the range behind the fold marker on row y, if any.
func toggleGutter(v *view.View, y int) error {
	items, err := gutterItems(v)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.Y == y {
			v.Doc().Folds().UpdateDisplayItem(it)
			v.Doc().InvalidateFolds()
			return nil
		}
	}
	return nil
}

func gutterRune(k folding.DisplayKind) rune {
	switch k {
	case folding.DisplayFolded:
		return '▸'
	case folding.DisplayUnfoldStart:
		return '▾'
	case folding.DisplayUnfoldEnd:
		return '▴'
	}
	return ' '
}

func loop(screen tcell.Screen, v *view.View) error {
	mouseDown := false
	for {
		if err := draw(screen, v); err != nil {
			return err
		}
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
				return nil
			case ev.Rune() == 'f':
				v.Doc().FoldAtOffset(v.Cursor().Offset())
			case ev.Rune() == 'u':
				v.Doc().UnfoldAtOffset(v.Cursor().Offset())
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			p := layout.Point{X: x - gutterWidth, Y: y}
			switch {
			case ev.Buttons()&tcell.Button1 != 0 && !mouseDown:
				mouseDown = true
				if x < gutterWidth {
					if err := toggleGutter(v, y); err != nil {
						return err
					}
					break
				}
				mods := view.Modifiers{
					Shift: ev.Modifiers()&tcell.ModShift != 0,
					Alt:   ev.Modifiers()&tcell.ModAlt != 0,
				}
				if _, err := v.PointerDown(p, mods); err != nil {
					return err
				}
			case ev.Buttons()&tcell.Button1 != 0:
				if err := v.PointerMove(p); err != nil {
					return err
				}
			case mouseDown:
				mouseDown = false
				v.PointerUp()
			}
		case *tcell.EventInterrupt:
			if cfg, ok := ev.Data().(config.Config); ok {
				v.SetConfig(cfg)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func draw(screen tcell.Screen, v *view.View) error {
	screen.Clear()
	styles := v.Doc().Styles()
	base := tcell.StyleDefault.
		Foreground(toTcell(styles.Foreground)).
		Background(toTcell(styles.Background))

	rows, err := v.Doc().RenderAll()
	if err != nil {
		return err
	}
	_, height := screen.Size()
	for row, rl := range rows {
		if row >= height {
			break
		}
		lay := v.Layout(row, rl)
		for _, c := range lay.Cells() {
			if c.Width == 0 || c.Text == "\t" {
				continue
			}
			st := base
			for _, sp := range rl.Spans {
				if c.Col >= sp.Start && c.Col < sp.End {
					st = spanStyle(base, sp)
					break
				}
			}
			x := gutterWidth + lay.DisplayCol(c.Col)
			rs := []rune(c.Text)
			screen.SetContent(x, row, rs[0], rs[1:], st)
		}
	}

	items, err := gutterItems(v)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.Y >= height {
			continue
		}
		screen.SetContent(0, it.Y, gutterRune(it.Kind), nil, base)
	}

	sels, err := v.SelectionRects()
	if err != nil {
		return err
	}
	for _, r := range sels {
		for x := r.X; x < r.X+r.W; x++ {
			mainc, combc, st, _ := screen.GetContent(gutterWidth+x, r.Y)
			screen.SetContent(gutterWidth+x, r.Y, mainc, combc, st.Reverse(true))
		}
	}

	carets, err := v.CaretRects()
	if err != nil {
		return err
	}
	if len(carets) > 0 {
		screen.ShowCursor(gutterWidth+carets[0].X, carets[0].Y)
	}

	screen.Show()
	return nil
}

func spanStyle(base tcell.Style, sp view.StyleSpan) tcell.Style {
	st := base
	if sp.Fg.Set {
		st = st.Foreground(toTcell(sp.Fg))
	}
	if sp.Bg.Set {
		st = st.Background(toTcell(sp.Bg))
	}
	if sp.Underline.Set {
		st = st.Underline(true)
	}
	return st
}

func toTcell(c phantom.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
