package lsp

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Semantic token types, in legend order.
const (
	tokenKeyword   uint32 = iota // block names (meta, palette)
	tokenProperty                // attribute names
	tokenNamespace               // the palette namespace in references
	tokenVariable                // entry names in references
	tokenFunction                // rgb(), hsl(), lighten(), ...
	tokenNumber
	tokenString
)

var semanticTokenTypes = []string{
	"keyword",
	"property",
	"namespace",
	"variable",
	"function",
	"number",
	"string",
}

// modDeclaration marks an attribute name that defines a symbol.
const modDeclaration uint32 = 1

var semanticTokenModifiers = []string{"declaration"}

// SemanticToken represents a single token with its metadata
type SemanticToken struct {
	Line      uint32 // 0-based line number
	StartChar uint32 // 0-based character offset
	Length    uint32
	Type      uint32 // index into semanticTokenTypes
	Modifiers uint32 // bit flags
}

func newToken(rng hcl.Range, length int, typ, mods uint32) SemanticToken {
	start := hclPosToLSP(rng.Start)
	return SemanticToken{
		Line:      start.Line,
		StartChar: start.Character,
		Length:    uint32(length),
		Type:      typ,
		Modifiers: mods,
	}
}

// encodeTokens converts tokens to LSP format (5 integers per token)
// using delta encoding for line numbers and character positions.
func encodeTokens(tokens []SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevChar uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		}

		data = append(data, deltaLine, deltaStart, tok.Length, tok.Type, tok.Modifiers)

		prevLine = tok.Line
		prevChar = tok.StartChar
	}

	return data
}

// semanticTokensFull generates semantic tokens for the entire document.
// Unparseable content yields no tokens.
func semanticTokensFull(content string) []uint32 {
	file, diags := hclsyntax.ParseConfig([]byte(content), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return []uint32{}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return []uint32{}
	}

	return encodeTokens(bodyTokens(body, nil))
}

func bodyTokens(body *hclsyntax.Body, tokens []SemanticToken) []SemanticToken {
	for _, block := range body.Blocks {
		tokens = append(tokens, newToken(block.TypeRange, len(block.Type), tokenKeyword, 0))
		tokens = bodyTokens(block.Body, tokens)
	}

	for name, attr := range body.Attributes {
		tokens = append(tokens, newToken(attr.NameRange, len(name), tokenProperty, modDeclaration))
		tokens = exprTokens(attr.Expr, tokens)
	}

	return tokens
}

func exprTokens(expr hclsyntax.Expression, tokens []SemanticToken) []SemanticToken {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		if e.Val.Type().FriendlyName() == "number" && e.SrcRange.Start.Line == e.SrcRange.End.Line {
			tokens = append(tokens, newToken(e.SrcRange, e.SrcRange.End.Column-e.SrcRange.Start.Column, tokenNumber, 0))
		}
	case *hclsyntax.TemplateExpr:
		if e.SrcRange.Start.Line == e.SrcRange.End.Line {
			tokens = append(tokens, newToken(e.SrcRange, e.SrcRange.End.Column-e.SrcRange.Start.Column, tokenString, 0))
		}
	case *hclsyntax.UnaryOpExpr:
		tokens = exprTokens(e.Val, tokens)
	case *hclsyntax.ScopeTraversalExpr:
		tokens = traversalTokens(e.Traversal, tokens)
	case *hclsyntax.FunctionCallExpr:
		tokens = append(tokens, newToken(e.NameRange, len(e.Name), tokenFunction, 0))
		for _, arg := range e.Args {
			tokens = exprTokens(arg, tokens)
		}
	case *hclsyntax.ObjectConsExpr:
		for _, item := range e.Items {
			tokens = exprTokens(item.ValueExpr, tokens)
		}
	}
	return tokens
}

// traversalTokens marks palette.<name> references.
func traversalTokens(traversal hcl.Traversal, tokens []SemanticToken) []SemanticToken {
	if len(traversal) == 0 {
		return tokens
	}
	root, ok := traversal[0].(hcl.TraverseRoot)
	if !ok || root.Name != "palette" {
		return tokens
	}

	tokens = append(tokens, newToken(root.SrcRange, len(root.Name), tokenNamespace, 0))
	for _, step := range traversal[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			continue
		}
		// the step range may include the leading dot
		rng := attr.SrcRange
		rng.Start = hcl.Pos{Line: rng.End.Line, Column: rng.End.Column - len(attr.Name)}
		tokens = append(tokens, newToken(rng, len(attr.Name), tokenVariable, 0))
	}
	return tokens
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full requests.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokensFull(doc.Content)}, nil
}
