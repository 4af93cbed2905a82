package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/rgbconv"
	"github.com/jsvensson/rgbconv/internal/palette"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestColorToLSP(t *testing.T) {
	tests := []struct {
		name  string
		input rgbconv.RGB
		want  protocol.Color
	}{
		{"pure red", rgbconv.RGB{R: 255}, protocol.Color{Red: 1.0, Alpha: 1.0}},
		{"pure green", rgbconv.RGB{G: 255}, protocol.Color{Green: 1.0, Alpha: 1.0}},
		{"pure blue", rgbconv.RGB{B: 255}, protocol.Color{Blue: 1.0, Alpha: 1.0}},
		{"black", rgbconv.RGB{}, protocol.Color{Alpha: 1.0}},
		{
			"mid gray",
			rgbconv.RGB{R: 128, G: 128, B: 128},
			protocol.Color{Red: float32(128) / 255.0, Green: float32(128) / 255.0, Blue: float32(128) / 255.0, Alpha: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorToLSP(tt.input)
			if got != tt.want {
				t.Errorf("colorToLSP(%v) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorFromLSPRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := rgbconv.RGB{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)}
		if got := colorFromLSP(colorToLSP(c)); got != c {
			t.Fatalf("colorFromLSP(colorToLSP(%v)) = %v", c, got)
		}
	}
}

func TestDocumentColors(t *testing.T) {
	result := &AnalysisResult{
		Colors: []ColorLocation{
			{
				Name:  "red",
				Range: protocol.Range{Start: protocol.Position{Line: 1, Character: 10}, End: protocol.Position{Line: 1, Character: 24}},
				Color: rgbconv.RGB{R: 255},
				Model: palette.ModelRGB,
			},
			{
				Name:  "blue",
				Range: protocol.Range{Start: protocol.Position{Line: 2, Character: 10}, End: protocol.Position{Line: 2, Character: 22}},
				Color: rgbconv.RGB{B: 255},
				Model: palette.ModelDerived,
			},
		},
	}

	want := []protocol.ColorInformation{
		{Range: result.Colors[0].Range, Color: protocol.Color{Red: 1, Alpha: 1}},
		{Range: result.Colors[1].Range, Color: protocol.Color{Blue: 1, Alpha: 1}},
	}
	if diff := cmp.Diff(want, documentColors(result)); diff != "" {
		t.Errorf("documentColors mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentColors_NilResult(t *testing.T) {
	infos := documentColors(nil)
	if infos == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 items, got %d", len(infos))
	}
}

func TestColorPresentation_Constructor(t *testing.T) {
	content := "palette {\n  teal = hsl(0.5, 1, 0.2)\n}\n"
	params := &protocol.ColorPresentationParams{
		Color: protocol.Color{Red: 0, Green: 0.4, Blue: 0.4, Alpha: 1},
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 9},
			End:   protocol.Position{Line: 1, Character: 25},
		},
	}

	presentations := colorPresentation(content, params)

	var labels []string
	for _, p := range presentations {
		labels = append(labels, p.Label)
		if p.TextEdit == nil {
			t.Fatalf("presentation %q has no TextEdit", p.Label)
		}
		if p.TextEdit.Range != params.Range || p.TextEdit.NewText != p.Label {
			t.Errorf("presentation %q: TextEdit = %+v", p.Label, *p.TextEdit)
		}
	}

	want := []string{"rgb(0, 102, 102)", "hsl(0.5, 1, 0.2)", "hsv(0.5, 1, 0.4)"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestColorPresentation_NotConstructor(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   uint32
		end     uint32
	}{
		{"reference", "palette {\n  ink = palette.teal\n}\n", 8, 20},
		{"adjustment", "palette {\n  ink = lighten(palette.teal, 0.1)\n}\n", 8, 34},
		{"object literal", "palette {\n  ink = { r = 1, g = 2, b = 3 }\n}\n", 8, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &protocol.ColorPresentationParams{
				Color: protocol.Color{Red: 1, Alpha: 1},
				Range: protocol.Range{
					Start: protocol.Position{Line: 1, Character: tt.start},
					End:   protocol.Position{Line: 1, Character: tt.end},
				},
			}
			if got := colorPresentation(tt.content, params); len(got) != 0 {
				t.Errorf("expected 0 presentations, got %d", len(got))
			}
		})
	}
}

func TestColorPresentation_Integration(t *testing.T) {
	content := `palette {
  red  = rgb(255, 0, 0)
  teal = hsl(0.5, 1, 0.2)
  soft = lighten(palette.red, 0.1)
  ink  = palette.teal
}
`
	result := Analyze("test.hcl", content)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	infos := documentColors(result)
	if len(infos) != 4 {
		t.Fatalf("expected 4 colors, got %d", len(infos))
	}

	for i, cl := range result.Colors {
		params := &protocol.ColorPresentationParams{Color: infos[i].Color, Range: infos[i].Range}
		presentations := colorPresentation(content, params)

		wantN := 3
		if cl.Model == palette.ModelDerived {
			wantN = 0
		}
		if len(presentations) != wantN {
			t.Errorf("%s (%s): expected %d presentations, got %d", cl.Name, cl.Model, wantN, len(presentations))
		}
	}
}
