// Package palette loads named colors from HCL palette files.
package palette

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/rgbconv"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rgbconv.palette")

// Model records which constructor produced a palette entry.
type Model string

const (
	ModelRGB     Model = "rgb"
	ModelHSL     Model = "hsl"
	ModelHSV     Model = "hsv"
	ModelDerived Model = "derived" // references, adjustments and object literals
)

// Meta holds palette metadata.
type Meta struct {
	Name   string `hcl:"name,optional"`
	Author string `hcl:"author,optional"`
	URL    string `hcl:"url,optional"`
}

// Entry is a single named color.
type Entry struct {
	Name  string
	Color rgbconv.RGB
	Model Model
}

// Palette is a fully-resolved palette file. Entries keep source order.
type Palette struct {
	Meta    Meta
	Entries []Entry
}

// Lookup returns the color of the named entry.
func (p *Palette) Lookup(name string) (rgbconv.RGB, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e.Color, true
		}
	}
	return rgbconv.RGB{}, false
}

// rawConfig is the top-level shape of a palette file.
type rawConfig struct {
	Meta    *Meta         `hcl:"meta,block"`
	Palette *paletteBlock `hcl:"palette,block"`
}

// paletteBlock wraps the palette block for gohcl decoding; its attributes
// are evaluated one at a time by Walk.
type paletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// Load reads and resolves a palette file.
func Load(path string) (*Palette, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return Parse(path, src)
}

// Parse resolves palette source. filename is used in error messages.
func Parse(filename string, src []byte) (*Palette, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw rawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette file: %s", diags.Error())
	}
	if raw.Palette == nil {
		return nil, fmt.Errorf("no palette block found")
	}

	body, ok := raw.Palette.Entries.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
	}
	if len(body.Blocks) > 0 {
		return nil, fmt.Errorf("palette.%s: nested blocks are not supported", body.Blocks[0].Type)
	}

	p := &Palette{}
	if raw.Meta != nil {
		p.Meta = *raw.Meta
	}

	var walkErr error
	Walk(body, func(attr *hclsyntax.Attribute, entry Entry, diags hcl.Diagnostics) bool {
		if diags.HasErrors() {
			walkErr = fmt.Errorf("evaluating palette.%s: %s", attr.Name, diags.Error())
			return false
		}
		p.Entries = append(p.Entries, entry)
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	log.Debugf("loaded %d colors from %s", len(p.Entries), filename)
	return p, nil
}

// Walk evaluates palette attributes in source order, so each entry can
// reference the ones before it. fn receives every attribute with either the
// resolved entry or the diagnostics explaining why it failed; failed entries
// are not visible to later references. Walk stops when fn returns false.
func Walk(body *hclsyntax.Body, fn func(attr *hclsyntax.Attribute, entry Entry, diags hcl.Diagnostics) bool) {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		a, b := attrs[i].SrcRange.Start, attrs[j].SrcRange.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	var resolved []Entry
	for _, attr := range attrs {
		entry, diags := evalEntry(attr, EvalContext(resolved))
		if !diags.HasErrors() {
			resolved = append(resolved, entry)
			log.Debugf("palette.%s = %v (%s)", entry.Name, entry.Color, entry.Model)
		}
		if !fn(attr, entry, diags) {
			return
		}
	}
}

func evalEntry(attr *hclsyntax.Attribute, ctx *hcl.EvalContext) (Entry, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		return Entry{}, diags
	}

	c, err := FromCty(val)
	if err != nil {
		rng := attr.Expr.Range()
		return Entry{}, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid color",
			Detail:   err.Error(),
			Subject:  &rng,
		})
	}

	return Entry{Name: attr.Name, Color: c, Model: ModelOf(attr.Expr)}, diags
}

// ModelOf reports which constructor an expression calls directly.
func ModelOf(expr hclsyntax.Expression) Model {
	call, ok := expr.(*hclsyntax.FunctionCallExpr)
	if !ok {
		return ModelDerived
	}
	switch call.Name {
	case "rgb":
		return ModelRGB
	case "hsl":
		return ModelHSL
	case "hsv":
		return ModelHSV
	default:
		return ModelDerived
	}
}
