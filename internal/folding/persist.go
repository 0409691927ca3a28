package folding

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MarshalState serializes the folded ranges for session persistence. The
// document identity is recorded alongside the folds so RestoreState can
// refuse state captured from a different document.
func (s *Store) MarshalState(doc uuid.UUID) ([]byte, error) {
	out := []byte(`{"folds":[]}`)
	out, err := sjson.SetBytes(out, "doc", doc.String())
	if err != nil {
		return nil, fmt.Errorf("marshal fold state: %w", err)
	}
	for _, r := range s.ranges {
		if !r.Status.IsFolded() {
			continue
		}
		out, err = sjson.SetBytes(out, "folds.-1", map[string]any{
			"startLine":      r.Start.Line,
			"startCharacter": r.Start.Character,
			"endLine":        r.End.Line,
			"endCharacter":   r.End.Character,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal fold state: %w", err)
		}
	}
	return out, nil
}

// RestoreState re-folds the ranges recorded by MarshalState. State saved
// for another document is rejected with ErrWrongDocument. Entries that no
// longer match a known range are ignored; the surrounding code may have
// changed since the session was saved.
func (s *Store) RestoreState(doc uuid.UUID, data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidState
	}
	if saved := gjson.GetBytes(data, "doc"); saved.String() != doc.String() {
		return ErrWrongDocument
	}
	folds := gjson.GetBytes(data, "folds")
	if !folds.IsArray() {
		return ErrInvalidState
	}
	for _, entry := range folds.Array() {
		startLine := int(entry.Get("startLine").Int())
		startChar := int(entry.Get("startCharacter").Int())
		endLine := int(entry.Get("endLine").Int())
		endChar := int(entry.Get("endCharacter").Int())
		for i := range s.ranges {
			r := &s.ranges[i]
			if r.Start.Line == startLine && r.Start.Character == startChar &&
				r.End.Line == endLine && r.End.Character == endChar {
				r.Status = StatusFolded
				break
			}
		}
	}
	return nil
}
