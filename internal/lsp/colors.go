package lsp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/rgbconv"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts an 8-bit RGB color to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c rgbconv.RGB) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: 1.0,
	}
}

// colorFromLSP converts a protocol.Color to 8-bit RGB. Alpha is dropped.
func colorFromLSP(c protocol.Color) rgbconv.RGB {
	return rgbconv.RGB{
		R: channel(c.Red),
		G: channel(c.Green),
		B: channel(c.Blue),
	}
}

func channel(v float32) uint8 {
	return uint8(math.Round(rgbconv.Clamp01(float64(v)) * 255))
}

// formatUnit prints a [0, 1] component with at most four decimals.
func formatUnit(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func rgbCall(c rgbconv.RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func hslCall(c rgbconv.RGB) string {
	hsl := c.HSL()
	return fmt.Sprintf("hsl(%s, %s, %s)", formatUnit(hsl.H), formatUnit(hsl.S), formatUnit(hsl.L))
}

func hsvCall(c rgbconv.RGB) string {
	hsv := c.HSV()
	return fmt.Sprintf("hsv(%s, %s, %s)", formatUnit(hsv.H), formatUnit(hsv.S), formatUnit(hsv.V))
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation offers rgb(), hsl() and hsv() rewrites of a constructor
// call, each as a TextEdit over the call. References, adjustments and
// object literals get no presentations so they are never replaced by a
// literal.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if !isConstructorCall(text) {
		return []protocol.ColorPresentation{}
	}

	c := colorFromLSP(params.Color)
	calls := []string{rgbCall(c), hslCall(c), hsvCall(c)}

	presentations := make([]protocol.ColorPresentation, 0, len(calls))
	for _, call := range calls {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: call,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: call,
			},
		})
	}
	return presentations
}

func isConstructorCall(text string) bool {
	for _, name := range []string{"rgb", "hsl", "hsv"} {
		if strings.HasPrefix(text, name+"(") {
			return true
		}
	}
	return false
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.getResult(string(params.TextDocument.URI))), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(doc.Content, params), nil
}
