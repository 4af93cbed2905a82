package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// paletteRefAtCursor returns the entry name when the cursor is anywhere on
// a palette.<name> reference, and "" otherwise.
func paletteRefAtCursor(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}

	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}
	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}

	name, ok := strings.CutPrefix(line[start:end], "palette.")
	if !ok || name == "" || strings.Contains(name, ".") {
		return ""
	}
	return name
}

// isIdentChar returns true if the byte is a valid identifier character
// (letter, digit, underscore, or dot for dotted paths).
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '-' || b == '.'
}

// lineAt returns line n of content, or false past the end.
func lineAt(content string, n uint32) (string, bool) {
	lines := strings.Split(content, "\n")
	if int(n) >= len(lines) {
		return "", false
	}
	return lines[n], true
}

// definition returns the location of the palette entry referenced at pos,
// or nil if the cursor is not on a known reference.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	line, ok := lineAt(content, pos.Line)
	if !ok {
		return nil
	}

	name := paletteRefAtCursor(line, pos.Character)
	if name == "" {
		return nil
	}

	symRange, ok := result.Symbols["palette."+name]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	doc, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	if loc := definition(doc.Result, doc.Content, uri, params.Position); loc != nil {
		return loc, nil
	}
	return nil, nil
}
