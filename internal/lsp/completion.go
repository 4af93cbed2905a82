package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextMeta                 // inside meta {}
	contextPalette              // inside palette {}
)

// metaAttributes are the valid attributes inside the meta block.
var metaAttributes = []string{"name", "author", "url"}

type functionDoc struct {
	name    string
	detail  string
	snippet string
}

// paletteFunctions are the functions available in palette values.
var paletteFunctions = []functionDoc{
	{"rgb", "rgb(r, g, b) integers in [0, 255]", "rgb(${1:0}, ${2:0}, ${3:0})"},
	{"hsl", "hsl(h, s, l) components in [0, 1]", "hsl(${1:0}, ${2:1}, ${3:0.5})"},
	{"hsv", "hsv(h, s, v) components in [0, 1]", "hsv(${1:0}, ${2:1}, ${3:1})"},
	{"lighten", "lighten(color, amount)", "lighten(${1:color}, ${2:0.1})"},
	{"darken", "darken(color, amount)", "darken(${1:color}, ${2:0.1})"},
	{"saturate", "saturate(color, amount)", "saturate(${1:color}, ${2:0.1})"},
	{"desaturate", "desaturate(color, amount)", "desaturate(${1:color}, ${2:0.1})"},
	{"rotate", "rotate(color, turns)", "rotate(${1:color}, ${2:0.5})"},
}

// complete produces completion items given an analysis result, document
// content and cursor position.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	ctx := determineBlockContext(lines, int(pos.Line))

	switch ctx {
	case contextPalette:
		if strings.HasPrefix(partialWord(textBeforeCursor), "palette.") {
			return paletteCompletions(result, int(pos.Line))
		}
		if isValuePosition(textBeforeCursor) {
			return valueCompletions()
		}
	case contextMeta:
		if !strings.Contains(textBeforeCursor, "=") {
			return metaCompletions(lines, int(pos.Line))
		}
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// partialWord returns the identifier characters immediately before the cursor.
func partialWord(textBeforeCursor string) string {
	start := len(textBeforeCursor)
	for start > 0 && isIdentChar(textBeforeCursor[start-1]) {
		start--
	}
	return textBeforeCursor[start:]
}

// paletteCompletions offers entries defined before cursorLine, since later
// entries are not yet visible to the one being edited.
func paletteCompletions(result *AnalysisResult, cursorLine int) []protocol.CompletionItem {
	if result == nil {
		return nil
	}

	kind := protocol.CompletionItemKindColor
	var items []protocol.CompletionItem
	for _, cl := range result.Colors {
		if int(cl.Range.Start.Line) >= cursorLine {
			continue
		}
		detail := rgbCall(cl.Color)
		items = append(items, protocol.CompletionItem{
			Label:  cl.Name,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// valueCompletions returns function snippets and a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	items := make([]protocol.CompletionItem, 0, len(paletteFunctions)+1)
	for _, fn := range paletteFunctions {
		items = append(items, protocol.CompletionItem{
			Label:            fn.name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fn.detail),
			InsertText:       strPtr(fn.snippet),
			InsertTextFormat: &snippetFormat,
		})
	}

	items = append(items, protocol.CompletionItem{
		Label:      "palette",
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("palette reference"),
		InsertText: strPtr("palette."),
	})
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if opens := strings.Count(line, "{"); opens > 0 {
			name := ""
			if parts := strings.Fields(line); len(parts) > 0 {
				name = parts[0]
			}
			for range opens {
				stack = append(stack, name)
			}
		}

		for range strings.Count(line, "}") {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	// Object literals open braces inside the palette block.
	switch stack[0] {
	case "meta":
		return contextMeta
	case "palette":
		return contextPalette
	default:
		return contextRoot
	}
}

// metaCompletions returns meta attribute names not yet defined in the block.
func metaCompletions(lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range metaAttributes {
		if !defined[name] {
			insert := name + " = "
			items = append(items, protocol.CompletionItem{
				Label:      name,
				Kind:       &kind,
				InsertText: &insert,
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i
			break
		}
	}

	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range blockTypes {
		snippet := name + " {\n  $0\n}"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return complete(doc.LastParsed, doc.Content, params.Position), nil
}
