package lsp

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/rgbconv"
	"github.com/jsvensson/rgbconv/internal/palette"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagSource = "rgbconv"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

// blockTypes are the top-level blocks a palette file may contain.
var blockTypes = []string{"meta", "palette"}

// AnalysisResult holds all information produced by analyzing a palette file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Entries     []palette.Entry           // resolved entries in source order
	Symbols     map[string]protocol.Range // "palette.coral" -> definition range
	Colors      []ColorLocation
	SyntaxError bool // content did not parse; only Diagnostics is set
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Name  string
	Range protocol.Range
	Color rgbconv.RGB
	Model palette.Model
}

// Entry returns the resolved entry with the given name.
func (r *AnalysisResult) Entry(name string) (palette.Entry, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return palette.Entry{}, false
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based. The zero hcl.Pos
// maps to the start of the document.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(max(pos.Column-1, 0)),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses palette content from memory and produces diagnostics, a
// symbol table and color locations. It reports every failing entry rather
// than stopping at the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		result.SyntaxError = true
		result.addDiags(diags, hcl.Range{})
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	for _, attr := range body.Attributes {
		result.addError(attr.NameRange, fmt.Sprintf("unexpected attribute %q outside a block", attr.Name))
	}

	var paletteBlock *hclsyntax.Block
	for _, block := range body.Blocks {
		switch block.Type {
		case "palette":
			if paletteBlock != nil {
				result.addError(block.DefRange(), "duplicate palette block")
				continue
			}
			paletteBlock = block
		case "meta":
			var meta palette.Meta
			result.addDiags(gohcl.DecodeBody(block.Body, nil, &meta), block.DefRange())
		default:
			result.addError(block.DefRange(), fmt.Sprintf("unknown block type %q (valid: meta, palette)", block.Type))
		}
	}

	if paletteBlock == nil {
		result.addError(hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: 1, Column: 1},
			End:      hcl.Pos{Line: 1, Column: 1},
		}, "missing required palette block")
		return result
	}

	result.analyzePaletteBody(paletteBlock.Body)
	return result
}

func (r *AnalysisResult) analyzePaletteBody(body *hclsyntax.Body) {
	for _, block := range body.Blocks {
		r.addError(block.DefRange(), fmt.Sprintf("palette.%s: nested blocks are not supported", block.Type))
	}

	palette.Walk(body, func(attr *hclsyntax.Attribute, entry palette.Entry, diags hcl.Diagnostics) bool {
		r.Symbols["palette."+attr.Name] = hclRangeToLSP(attr.SrcRange)

		if diags.HasErrors() {
			r.addDiags(diags, attr.SrcRange)
			return true
		}

		r.Entries = append(r.Entries, entry)
		r.Colors = append(r.Colors, ColorLocation{
			Name:  entry.Name,
			Range: hclRangeToLSP(attr.Expr.Range()),
			Color: entry.Color,
			Model: entry.Model,
		})
		return true
	})
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addDiags converts diags, placing any without a subject at fallback.
func (r *AnalysisResult) addDiags(diags hcl.Diagnostics, fallback hcl.Range) {
	for _, d := range diags {
		diag := hclDiagToLSP(d)
		if d.Subject == nil {
			diag.Range = hclRangeToLSP(fallback)
		}
		r.Diagnostics = append(r.Diagnostics, diag)
	}
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}
