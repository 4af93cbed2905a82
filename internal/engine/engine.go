// Package engine renders palettes through Go templates.
package engine

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/rgbconv"
	"github.com/jsvensson/rgbconv/internal/palette"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rgbconv.engine")

// Engine loads and executes Go templates against a resolved Palette.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given palette, and writes output files.
func (e *Engine) Run(p *palette.Palette) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(p)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
		log.Infof("rendered %s", filepath.Join(e.OutputDir, baseName))
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Meta    palette.Meta
	Entries []palette.Entry
	FuncMap template.FuncMap
}

func buildTemplateData(p *palette.Palette) templateData {
	return templateData{
		Meta:    p.Meta,
		Entries: p.Entries,
		FuncMap: funcMap(p),
	}
}

func funcMap(p *palette.Palette) template.FuncMap {
	return template.FuncMap{
		"rgb": func(c rgbconv.RGB) rgbconv.RGB { return c },
		"hsl": func(c rgbconv.RGB) rgbconv.HSL { return c.HSL() },
		"hsv": func(c rgbconv.RGB) rgbconv.HSV { return c.HSV() },
		"lookup": func(name string) (rgbconv.RGB, error) {
			c, ok := p.Lookup(name)
			if !ok {
				return rgbconv.RGB{}, fmt.Errorf("palette color not found: %s", name)
			}
			return c, nil
		},
		"deg":   func(turns float64) float64 { return turns * 360 },
		"pct":   func(v float64) float64 { return v * 100 },
		"round": round,
	}
}

// round rounds v to places decimals. The argument order lets templates
// write {{ .H | deg | round 1 }}.
func round(places int, v float64) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
