package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestNewServer_Handlers(t *testing.T) {
	s := NewServer("test", 0)
	h := &s.handler

	handlers := []struct {
		name string
		set  bool
	}{
		{"initialize", h.Initialize != nil},
		{"didOpen", h.TextDocumentDidOpen != nil},
		{"didChange", h.TextDocumentDidChange != nil},
		{"didClose", h.TextDocumentDidClose != nil},
		{"documentColor", h.TextDocumentColor != nil},
		{"colorPresentation", h.TextDocumentColorPresentation != nil},
		{"hover", h.TextDocumentHover != nil},
		{"definition", h.TextDocumentDefinition != nil},
		{"completion", h.TextDocumentCompletion != nil},
		{"formatting", h.TextDocumentFormatting != nil},
		{"semanticTokensFull", h.TextDocumentSemanticTokensFull != nil},
	}
	for _, tt := range handlers {
		if !tt.set {
			t.Errorf("%s handler not registered", tt.name)
		}
	}
}

func TestServer_InitializeCapabilities(t *testing.T) {
	s := NewServer("1.2.3", 0)

	res, err := s.initialize(nil, &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("initialize() error: %v", err)
	}
	result, ok := res.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("initialize() returned %T, want InitializeResult", res)
	}

	caps := result.Capabilities
	if caps.ColorProvider == nil {
		t.Error("ColorProvider not advertised")
	}
	if caps.HoverProvider == nil {
		t.Error("HoverProvider not advertised")
	}
	if caps.DefinitionProvider == nil {
		t.Error("DefinitionProvider not advertised")
	}
	if caps.DocumentFormattingProvider == nil {
		t.Error("DocumentFormattingProvider not advertised")
	}
	if caps.CompletionProvider == nil || len(caps.CompletionProvider.TriggerCharacters) != 1 {
		t.Errorf("CompletionProvider = %+v, want trigger on '.'", caps.CompletionProvider)
	}
	if caps.SemanticTokensProvider == nil {
		t.Error("SemanticTokensProvider not advertised")
	}

	if result.ServerInfo == nil || result.ServerInfo.Name != serverName {
		t.Fatalf("ServerInfo = %+v", result.ServerInfo)
	}
	if result.ServerInfo.Version == nil || *result.ServerInfo.Version != "1.2.3" {
		t.Errorf("ServerInfo.Version = %v, want 1.2.3", result.ServerInfo.Version)
	}
}

func TestServer_RequestHandlers(t *testing.T) {
	const uri = "file:///dusk.hcl"
	content := "palette {\n  teal = hsl(0.5, 1, 0.2)\n}\n"

	s := NewServer("test", 0)
	s.docs.Open(uri, 1, content)
	doc := protocol.TextDocumentIdentifier{URI: uri}

	colors, err := s.textDocumentDocumentColor(nil, &protocol.DocumentColorParams{TextDocument: doc})
	if err != nil {
		t.Fatalf("documentColor error: %v", err)
	}
	if len(colors) != 1 {
		t.Fatalf("documentColor returned %d colors, want 1", len(colors))
	}

	hov, err := s.textDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: doc,
			Position:     protocol.Position{Line: 1, Character: 12},
		},
	})
	if err != nil {
		t.Fatalf("hover error: %v", err)
	}
	if hov == nil {
		t.Error("hover returned nil inside a color value")
	}

	edits, err := s.textDocumentFormatting(nil, &protocol.DocumentFormattingParams{TextDocument: doc})
	if err != nil {
		t.Fatalf("formatting error: %v", err)
	}
	if len(edits) != 0 {
		t.Errorf("formatting returned %d edits for formatted content", len(edits))
	}

	// unknown documents yield empty results, not errors
	other := protocol.TextDocumentIdentifier{URI: "file:///missing.hcl"}
	colors, err = s.textDocumentDocumentColor(nil, &protocol.DocumentColorParams{TextDocument: other})
	if err != nil || len(colors) != 0 {
		t.Errorf("documentColor on unknown document = %v, %v", colors, err)
	}
}
