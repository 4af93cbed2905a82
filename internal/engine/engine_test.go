package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsvensson/rgbconv"
	"github.com/jsvensson/rgbconv/internal/palette"
)

func testPalette() *palette.Palette {
	return &palette.Palette{
		Meta: palette.Meta{
			Name:   "Dusk",
			Author: "Tester",
		},
		Entries: []palette.Entry{
			{Name: "coral", Color: rgbconv.RGB{R: 255, G: 127, B: 80}, Model: palette.ModelRGB},
			{Name: "teal", Color: rgbconv.RGB{R: 0, G: 102, B: 102}, Model: palette.ModelHSL},
		},
	}
}

func setupTemplateDir(t *testing.T, templates map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func render(t *testing.T, tmpl string) string {
	t.Helper()
	tmplDir := setupTemplateDir(t, map[string]string{"test.txt.tmpl": tmpl})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
	}
	if err := e.Run(testPalette()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "test.txt"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(content)
}

func TestRun(t *testing.T) {
	got := render(t, `name={{ .Meta.Name }}
{{ range .Entries }}{{ .Name }}={{ with .Color }}{{ .R }} {{ .G }} {{ .B }}{{ end }} ({{ .Model }})
{{ end }}`)

	wantLines := []string{
		"name=Dusk",
		"coral=255 127 80 (rgb)",
		"teal=0 102 102 (hsl)",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestRunAppFilter(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"app1.txt.tmpl": "app1={{ .Meta.Name }}",
		"app2.txt.tmpl": "app2={{ .Meta.Name }}",
	})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
		Apps:         []string{"app1.txt"},
	}

	if err := e.Run(testPalette()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "app1.txt")); err != nil {
		t.Error("app1.txt should exist")
	}
	if _, err := os.Stat(filepath.Join(outDir, "app2.txt")); err == nil {
		t.Error("app2.txt should not exist when filtered")
	}
}

func TestRunNoTemplates(t *testing.T) {
	e := &Engine{
		TemplatesDir: t.TempDir(),
		OutputDir:    filepath.Join(t.TempDir(), "output"),
	}

	if err := e.Run(testPalette()); err == nil {
		t.Error("expected error for empty templates dir")
	}
}

func TestRunBadTemplate(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"test.txt.tmpl": `{{ lookup "missing" }}`,
	})
	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    filepath.Join(t.TempDir(), "output"),
	}

	err := e.Run(testPalette())
	if err == nil || !strings.Contains(err.Error(), "palette color not found: missing") {
		t.Errorf("Run() error = %v, want lookup failure", err)
	}
}

func TestTemplateFunctions(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"rgb fields", `{{ with rgb (lookup "coral") }}{{ .R }},{{ .G }},{{ .B }}{{ end }}`, "255,127,80"},
		{
			"hsl css",
			`{{ with hsl (lookup "coral") }}hsl({{ .H | deg | round 1 }}, {{ .S | pct | round 1 }}%, {{ .L | pct | round 1 }}%){{ end }}`,
			"hsl(16.1, 100%, 65.7%)",
		},
		{
			"hsv",
			`{{ with hsv (lookup "teal") }}{{ .H | deg | round 0 }} {{ .S | pct | round 0 }} {{ .V | pct | round 0 }}{{ end }}`,
			"180 100 40",
		},
		{"round places", `{{ round 2 3.14159 }}`, "3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.template); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFuncMapHasNoHexNotation(t *testing.T) {
	fm := funcMap(testPalette())
	for _, name := range []string{"hex", "hexbare"} {
		if _, ok := fm[name]; ok {
			t.Errorf("funcMap defines %q", name)
		}
	}
}
