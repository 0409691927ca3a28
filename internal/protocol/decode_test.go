package protocol

import (
	"errors"
	"testing"
)

func TestParseFoldingRanges(t *testing.T) {
	data := []byte(`[
		{"startLine":0,"startCharacter":12,"endLine":2,"endCharacter":5},
		{"startLine":4,"endLine":9,"kind":"imports","collapsedText":"use ..."}
	]`)

	ranges, err := ParseFoldingRanges(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if ranges[0].StartLine != 0 || ranges[0].StartCharacter != 12 {
		t.Errorf("range 0 start = %v", ranges[0].StartPosition())
	}
	if ranges[0].EndLine != 2 || ranges[0].EndCharacter != 5 {
		t.Errorf("range 0 end = %v", ranges[0].EndPosition())
	}
	if ranges[1].Kind != FoldingRangeImports {
		t.Errorf("range 1 kind = %q", ranges[1].Kind)
	}
	if ranges[1].CollapsedText != "use ..." {
		t.Errorf("range 1 collapsedText = %q", ranges[1].CollapsedText)
	}
}

func TestParseFoldingRangesInvalid(t *testing.T) {
	if _, err := ParseFoldingRanges([]byte(`{"not":"array"}`)); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestParseInlayHintsStringLabel(t *testing.T) {
	data := []byte(`[{"position":{"line":6,"character":9},"label":": A","kind":1,"paddingRight":true}]`)

	hints, err := ParseInlayHints(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(hints) != 1 {
		t.Fatalf("expected 1 hint, got %d", len(hints))
	}
	h := hints[0]
	if h.Position != (Position{Line: 6, Character: 9}) {
		t.Errorf("position = %v", h.Position)
	}
	if h.Text() != ": A " {
		t.Errorf("text = %q, want %q", h.Text(), ": A ")
	}
	if h.Kind != InlayHintType {
		t.Errorf("kind = %d", h.Kind)
	}
}

func TestParseInlayHintsLabelParts(t *testing.T) {
	data := []byte(`[{"position":{"line":0,"character":5},"label":[{"value":": "},{"value":"String"}]}]`)

	hints, err := ParseInlayHints(data)
	if err != nil {
		t.Fatal(err)
	}
	if hints[0].Label != ": String" {
		t.Errorf("label = %q", hints[0].Label)
	}
}

func TestParseDiagnostics(t *testing.T) {
	data := []byte(`[{
		"range":{"start":{"line":3,"character":0},"end":{"line":3,"character":7}},
		"severity":2,
		"code":"unused",
		"source":"gopls",
		"message":"declared and not used"
	}]`)

	diags, err := ParseDiagnostics(data)
	if err != nil {
		t.Fatal(err)
	}
	d := diags[0]
	if d.Severity != SeverityWarning {
		t.Errorf("severity = %v", d.Severity)
	}
	if d.Range.Start != (Position{Line: 3}) {
		t.Errorf("range start = %v", d.Range.Start)
	}
	if d.Message != "declared and not used" {
		t.Errorf("message = %q", d.Message)
	}
}

func TestPositionCompare(t *testing.T) {
	a := Position{Line: 1, Character: 5}
	b := Position{Line: 1, Character: 9}
	c := Position{Line: 2}

	if !a.Before(b) || !b.Before(c) || c.Before(a) {
		t.Error("position ordering broken")
	}
	if a.Compare(a) != 0 {
		t.Error("self comparison should be 0")
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: Position{Line: 1, Character: 2}, End: Position{Line: 3, Character: 0}}
	if !r.Contains(Position{Line: 2, Character: 50}) {
		t.Error("interior position not contained")
	}
	if !r.Contains(r.End) {
		t.Error("end should be inclusive")
	}
	if r.Contains(Position{Line: 3, Character: 1}) {
		t.Error("past end contained")
	}
}
