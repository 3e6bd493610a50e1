package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/placeholder-assets/internal/raster"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--version"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "placeholder-assets dev") {
		t.Errorf("version output: %q", out.String())
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"help"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "generate") {
		t.Errorf("help output missing commands: %q", out.String())
	}
}

func TestRun_SubcommandHelp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")
	for _, args := range [][]string{
		{"generate", "-out", dir, "-h"},
		{"list", "-help"},
		{"serve", "-h"},
	} {
		var out bytes.Buffer
		if err := run(args, &out); err != nil {
			t.Errorf("run(%v) failed: %v", args, err)
		}
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("generate -h should not write %s", dir)
	}
}

func TestRun_Generate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")

	var out bytes.Buffer
	if err := run([]string{"generate", "-out", dir, "bird", "crash"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	r, err := raster.InspectFile(filepath.Join(dir, "sprites", "bird.png"))
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}
	if !r.Renderable {
		t.Errorf("bird.png not renderable: %s", r.DecodeError)
	}
	if _, err := os.Stat(filepath.Join(dir, "sounds", "crash.wav")); err != nil {
		t.Errorf("crash.wav: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sprites", "background.png")); !os.IsNotExist(err) {
		t.Error("background.png should not be generated")
	}
}

func TestRun_GeneratePlaceholder(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	if err := run([]string{"generate", "-out", dir, "-mode", "placeholder", "pipe-top"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	r, err := raster.InspectFile(filepath.Join(dir, "sprites", "pipe-top.png"))
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}
	if !r.Placeholder || r.Renderable {
		t.Errorf("pipe-top.png: placeholder=%v renderable=%v", r.Placeholder, r.Renderable)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"paint"}},
		{"bad mode", []string{"generate", "-out", dir, "-mode", "gif"}},
		{"unknown asset", []string{"generate", "-out", dir, "dragon"}},
		{"missing manifest", []string{"list", "-manifest", filepath.Join(dir, "none.json")}},
		{"unknown flag", []string{"generate", "-out", dir, "-size", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.args, &out); err == nil {
				t.Errorf("run(%v) should fail", tt.args)
			}
		})
	}
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"list"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"bird.png", "40x40", "correct.wav", "554Hz/150ms"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, out.String())
		}
	}
}
