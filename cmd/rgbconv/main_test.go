package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version output = %q, want %q", out, version)
	}
}

func TestConvertCommand(t *testing.T) {
	out, err := execute(t, "convert", "rgb", "hsl", "255", "0", "0", "--precision", "2")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if strings.TrimSpace(out) != "0.00 1.00 0.50" {
		t.Errorf("convert output = %q", out)
	}
}

func TestVerifyCommand(t *testing.T) {
	out, err := execute(t, "verify", "--step", "51")
	if err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}
	if !strings.Contains(out, "216 samples") || !strings.Contains(out, "OK") {
		t.Errorf("verify output = %q", out)
	}
}

func TestFmtCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.hcl")
	if err := os.WriteFile(path, []byte("palette {\nred=rgb(255, 0, 0)\n}"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "fmt", path)
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("fmt output = %q, want the file name", out)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "palette {\n  red = rgb(255, 0, 0)\n}\n"
	if string(got) != want {
		t.Errorf("formatted file = %q, want %q", got, want)
	}
}
