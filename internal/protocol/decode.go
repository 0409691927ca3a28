package protocol

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidPayload indicates a payload is not valid JSON or not the
// expected shape.
var ErrInvalidPayload = errors.New("invalid payload")

// ParseFoldingRanges decodes a textDocument/foldingRange result.
func ParseFoldingRanges(data []byte) ([]FoldingRange, error) {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, ErrInvalidPayload
	}
	var out []FoldingRange
	parsed.ForEach(func(_, item gjson.Result) bool {
		out = append(out, FoldingRange{
			StartLine:      int(item.Get("startLine").Int()),
			StartCharacter: int(item.Get("startCharacter").Int()),
			EndLine:        int(item.Get("endLine").Int()),
			EndCharacter:   int(item.Get("endCharacter").Int()),
			Kind:           FoldingRangeKind(item.Get("kind").String()),
			CollapsedText:  item.Get("collapsedText").String(),
		})
		return true
	})
	return out, nil
}

// ParseInlayHints decodes a textDocument/inlayHint result. A hint label may
// be a plain string or an array of label parts; parts are concatenated.
func ParseInlayHints(data []byte) ([]InlayHint, error) {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, ErrInvalidPayload
	}
	var out []InlayHint
	parsed.ForEach(func(_, item gjson.Result) bool {
		out = append(out, InlayHint{
			Position:     parsePosition(item.Get("position")),
			Label:        parseHintLabel(item.Get("label")),
			Kind:         InlayHintKind(item.Get("kind").Int()),
			PaddingLeft:  item.Get("paddingLeft").Bool(),
			PaddingRight: item.Get("paddingRight").Bool(),
		})
		return true
	})
	return out, nil
}

// ParseDiagnostics decodes the diagnostics array of a
// textDocument/publishDiagnostics notification.
func ParseDiagnostics(data []byte) ([]Diagnostic, error) {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, ErrInvalidPayload
	}
	var out []Diagnostic
	parsed.ForEach(func(_, item gjson.Result) bool {
		out = append(out, Diagnostic{
			Range: Range{
				Start: parsePosition(item.Get("range.start")),
				End:   parsePosition(item.Get("range.end")),
			},
			Severity: DiagnosticSeverity(item.Get("severity").Int()),
			Code:     item.Get("code").String(),
			CodeHref: item.Get("codeDescription.href").String(),
			Source:   item.Get("source").String(),
			Message:  item.Get("message").String(),
		})
		return true
	})
	return out, nil
}

func parsePosition(v gjson.Result) Position {
	return Position{
		Line:      int(v.Get("line").Int()),
		Character: int(v.Get("character").Int()),
	}
}

func parseHintLabel(v gjson.Result) string {
	if !v.IsArray() {
		return v.String()
	}
	var sb strings.Builder
	v.ForEach(func(_, part gjson.Result) bool {
		sb.WriteString(part.Get("value").String())
		return true
	})
	return sb.String()
}
