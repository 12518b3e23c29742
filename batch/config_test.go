package batch

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/export"
	"github.com/gogpu/glyph3d/glyphset"
	"github.com/gogpu/glyph3d/kernel"
)

func parse(args ...string) (Config, error) {
	fs := flag.NewFlagSet("fontmodels", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return ParseConfig(fs, args)
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			args: []string{"-font", "f.ttf", "-out", "models"},
			want: Config{
				FontPath: "f.ttf", OutputDir: "models", Format: export.GLB,
				Glyph: kernel.TextParams{Size: 1, Extrude: 0.02, BevelResolution: 4}, LogLevel: "info",
			},
		},
		{
			name: "everything",
			args: []string{
				"-font", "fa.otf", "-out", "out", "-icons", "icons.js", "-style", "3",
				"-format", "FBX", "-size", "2", "-extrude", "0.1", "-bevel-depth", "0.01",
				"-bevel-resolution", "2", "-backend", "gotext", "-ledger", "l.db",
			},
			want: Config{
				FontPath: "fa.otf", OutputDir: "out", Source: glyphset.Source{IconsFile: "icons.js"},
				Style: 3, Format: export.FBX,
				Glyph:   kernel.TextParams{Size: 2, Extrude: 0.1, BevelDepth: 0.01, BevelResolution: 2},
				Backend: "gotext", LedgerPath: "l.db", LogLevel: "info",
			},
		},
		{
			name: "start only",
			args: []string{"-font", "f.ttf", "-out", "o", "-start", "48"},
			want: Config{
				FontPath: "f.ttf", OutputDir: "o", Source: glyphset.Source{Range: &glyphset.Range{Start: 48, End: 126}},
				Format: export.GLB, Glyph: kernel.TextParams{Size: 1, Extrude: 0.02, BevelResolution: 4}, LogLevel: "info",
			},
		},
		{
			name: "literal",
			args: []string{"-font", "f.ttf", "-out", "o", "-chars", "AB", "-format", "gltf"},
			want: Config{
				FontPath: "f.ttf", OutputDir: "o", Source: glyphset.Source{Literal: "AB"},
				Format: export.GLB, Glyph: kernel.TextParams{Size: 1, Extrude: 0.02, BevelResolution: 4}, LogLevel: "info",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("GLYPH3D_OUTLINE_BACKEND", "gotext")
	t.Setenv("GLYPH3D_LEDGER", "env.db")
	t.Setenv("GLYPH3D_LOG_LEVEL", "debug")

	got, err := parse("-font", "f.ttf", "-out", "o", "-backend", "ximage")
	if err != nil {
		t.Fatal(err)
	}
	if got.Backend != "ximage" {
		t.Errorf("flag did not override env: backend = %q", got.Backend)
	}
	if got.LedgerPath != "env.db" {
		t.Errorf("ledger = %q, want env value", got.LedgerPath)
	}
	if l, err := got.Level(); err != nil || l != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", l, err)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
	}{
		{"no font", "", []string{"-out", "o"}},
		{"no out", "", []string{"-font", "f.ttf"}},
		{"blank font", "", []string{"-font", " ", "-out", "o"}},
		{"bad format", "", []string{"-font", "f.ttf", "-out", "o", "-format", "obj"}},
		{"bad log level", "loud", []string{"-font", "f.ttf", "-out", "o"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("GLYPH3D_LOG_LEVEL", tt.env)
			}
			if _, err := parse(tt.args...); !errors.Is(err, glyph3d.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}

	if _, err := parse("-font", "f.ttf", "-out", "o", "-size", "big"); err == nil {
		t.Error("malformed flag value accepted")
	}
}
