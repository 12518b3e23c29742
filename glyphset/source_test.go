package glyphset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glyph3d"
)

func codepoints(specs []glyph3d.GlyphSpec) []rune {
	out := make([]rune, len(specs))
	for i, s := range specs {
		out[i] = s.Codepoint
	}
	return out
}

func TestFromLiteral(t *testing.T) {
	got := FromLiteral("Aé A\t")
	if diff := cmp.Diff([]rune{'A', 'é', ' ', 'A', '\t'}, codepoints(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	for _, s := range got {
		if s.Name != "" {
			t.Errorf("literal glyph has name %q", s.Name)
		}
	}
}

func TestFromCharset(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []rune
	}{
		{"whitespace dropped", "Hi!\n\tA", []rune{'H', 'i', '!', 'A'}},
		{"combining mark kept", "e\u0301", []rune{'e', '\u0301'}},
		{"compatibility ideograph kept", "\uf900", []rune{'\uf900'}},
		{"angstrom sign kept", "\u212b\u00c5", []rune{'\u212b', '\u00c5'}},
		{"utf-8 bom dropped", "\xef\xbb\xbfAB", []rune{'A', 'B'}},
		{"utf-16le bom", "\xff\xfeA\x00B\x00", []rune{'A', 'B'}},
		{"utf-16be bom", "\xfe\xff\x00A\x00B", []rune{'A', 'B'}},
		{"control dropped", "a\x00b\u200bc", []rune{'a', 'b', 'c'}},
		{"empty", "", []rune{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromCharset(strings.NewReader(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, codepoints(got)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := FromCharset(strings.NewReader("a\xffb")); err == nil {
		t.Error("invalid UTF-8 accepted")
	}
}

func TestFromRange(t *testing.T) {
	got, err := FromRange(65, 67)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]rune{'A', 'B', 'C'}, codepoints(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	across, err := FromRange(0xD7FF, 0xE000)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]rune{0xD7FF, 0xE000}, codepoints(across)); diff != "" {
		t.Errorf("surrogates not skipped (-want +got):\n%s", diff)
	}

	bad := []Range{{67, 65}, {-1, 10}, {0, 0x110000}, {0xD800, 0xD900}}
	for _, r := range bad {
		if _, err := FromRange(r.Start, r.End); !errors.Is(err, glyph3d.ErrInvalidInput) {
			t.Errorf("FromRange(%d, %d) error = %v, want ErrInvalidInput", r.Start, r.End, err)
		}
	}
}

func TestDefault(t *testing.T) {
	got := Default()
	if len(got) != 94 {
		t.Fatalf("len = %d, want 94", len(got))
	}
	if got[0].Codepoint != '!' || got[len(got)-1].Codepoint != '~' {
		t.Errorf("range = %q..%q", got[0].Codepoint, got[len(got)-1].Codepoint)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	charset := filepath.Join(dir, "chars.txt")
	if err := os.WriteFile(charset, []byte("abca\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	icons := filepath.Join(dir, "solid.js")
	if err := os.WriteFile(icons, []byte(iconTable), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  Source
		want []rune
	}{
		{"literal deduped", Source{Literal: "ABA"}, []rune{'A', 'B'}},
		{"charset deduped", Source{CharsetFile: charset}, []rune{'a', 'b', 'c'}},
		{"range", Source{Range: &Range{65, 67}}, []rune{'A', 'B', 'C'}},
		{"icons", Source{IconsFile: icons}, []rune{0xF015, 0xF002, 0xF007, '0'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, codepoints(got)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	def, err := Resolve(Source{})
	if err != nil {
		t.Fatal(err)
	}
	if len(def) != 94 {
		t.Errorf("default glyphs = %d, want 94", len(def))
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{"two sources", Source{Literal: "A", Range: &Range{65, 67}}},
		{"three sources", Source{Literal: "A", CharsetFile: "x", IconsFile: "y"}},
		{"bad range", Source{Range: &Range{70, 65}}},
		{"missing charset", Source{CharsetFile: filepath.Join(t.TempDir(), "missing.txt")}},
		{"missing icons", Source{IconsFile: filepath.Join(t.TempDir(), "missing.js")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.src); !errors.Is(err, glyph3d.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Source{}, "default"},
		{Source{Literal: "A"}, "literal"},
		{Source{Range: &Range{65, 67}}, "range U+0041..U+0043"},
		{Source{IconsFile: "solid.js"}, "icons solid.js"},
	}
	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
