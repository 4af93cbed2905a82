package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/rgbconv"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	clip := func(line string, c uint32) int {
		return min(int(c), len(line))
	}

	if startLine == endLine {
		line := lines[startLine]
		start, end := clip(line, r.Start.Character), clip(line, r.End.Character)
		if start > end {
			return ""
		}
		return line[start:end]
	}

	parts := []string{lines[startLine][clip(lines[startLine], r.Start.Character):]}
	parts = append(parts, lines[startLine+1:endLine]...)
	parts = append(parts, lines[endLine][:clip(lines[endLine], r.End.Character)])
	return strings.Join(parts, "\n")
}

// hoverMarkdown renders c in every model under a title.
func hoverMarkdown(title string, c rgbconv.RGB) string {
	return fmt.Sprintf("**%s**\n\n- `%s`\n- `%s`\n- `%s`",
		title, rgbCall(c), hslCall(c), hsvCall(c))
}

// hover produces a Hover response for the given cursor position. A cursor
// on a palette.<name> reference shows the referenced entry; anywhere else
// inside an entry's value shows that entry. Returns nil if no color is
// found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	if line, ok := lineAt(content, pos.Line); ok {
		if name := paletteRefAtCursor(line, pos.Character); name != "" {
			if e, ok := result.Entry(name); ok {
				return &protocol.Hover{
					Contents: protocol.MarkupContent{
						Kind:  protocol.MarkupKindMarkdown,
						Value: hoverMarkdown("palette."+e.Name, e.Color),
					},
				}
			}
		}
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: hoverMarkdown(cl.Name, cl.Color),
			},
			Range: &cl.Range,
		}
	}

	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return hover(doc.Result, doc.Content, params.Position), nil
}
