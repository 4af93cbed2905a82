package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rgbconv.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	got, err := Load(newViper(t))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Settings{Precision: 4, Templates: "templates", Output: "out"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestReadInConfigFile(t *testing.T) {
	path := writeConfig(t, `precision: 2
strict: true
verbose: 1
templates: themes
output: build
`)
	v := newViper(t)
	if err := ReadInConfig(v, path); err != nil {
		t.Fatalf("ReadInConfig() error: %v", err)
	}

	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Settings{Precision: 2, Strict: true, Verbose: 1, Templates: "themes", Output: "build"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestReadInConfigMissingExplicitFile(t *testing.T) {
	v := newViper(t)
	err := ReadInConfig(v, filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("ReadInConfig() error = %v, want reading error", err)
	}
}

func TestReadInConfigNoDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	v := newViper(t)
	if err := ReadInConfig(v, ""); err != nil {
		t.Errorf("ReadInConfig() without rgbconv.yaml: %v", err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "precision: 2\n")
	t.Setenv("RGBCONV_PRECISION", "6")
	t.Setenv("RGBCONV_STRICT", "true")

	v := newViper(t)
	if err := ReadInConfig(v, path); err != nil {
		t.Fatalf("ReadInConfig() error: %v", err)
	}
	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Precision != 6 || !got.Strict {
		t.Errorf("Settings = %+v, want precision 6 and strict", got)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   int
		wantErr string
	}{
		{"negative precision", KeyPrecision, -1, "precision -1 out of range"},
		{"precision too large", KeyPrecision, 18, "precision 18 out of range"},
		{"verbose too low", KeyVerbose, -5, "verbose -5 out of range"},
		{"verbose too high", KeyVerbose, 6, "verbose 6 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
