package glyphset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gogpu/glyph3d"
)

// Default codepoint range: printable ASCII without space.
const (
	DefaultStart rune = 33
	DefaultEnd   rune = 126
)

// Range is an inclusive codepoint range.
type Range struct {
	Start, End rune
}

// Source selects where a glyph set comes from. At most one field may be
// set; an empty Source selects the default ASCII range.
type Source struct {
	Literal     string // characters taken verbatim
	CharsetFile string // UTF-8 file of characters
	Range       *Range
	IconsFile   string // icon metadata table
}

// count returns the number of sources set.
func (s Source) count() int {
	n := 0
	for _, set := range []bool{s.Literal != "", s.CharsetFile != "", s.Range != nil, s.IconsFile != ""} {
		if set {
			n++
		}
	}
	return n
}

// String describes the selected source for logs.
func (s Source) String() string {
	switch {
	case s.Literal != "":
		return "literal"
	case s.CharsetFile != "":
		return "charset " + s.CharsetFile
	case s.Range != nil:
		return fmt.Sprintf("range U+%04X..U+%04X", s.Range.Start, s.Range.End)
	case s.IconsFile != "":
		return "icons " + s.IconsFile
	default:
		return "default"
	}
}

// Validate checks that at most one source is set and that a range, if
// any, is well formed. It does not touch the file system.
func (s Source) Validate() error {
	if s.count() > 1 {
		return &glyph3d.InvalidInputError{What: "glyph source", Value: s.describeAll(),
			Err: errors.New("more than one glyph source given")}
	}
	if s.Range != nil {
		return s.Range.validate()
	}
	return nil
}

func (s Source) describeAll() string {
	var parts []string
	if s.Literal != "" {
		parts = append(parts, "chars")
	}
	if s.CharsetFile != "" {
		parts = append(parts, "charset")
	}
	if s.Range != nil {
		parts = append(parts, "range")
	}
	if s.IconsFile != "" {
		parts = append(parts, "icons")
	}
	return strings.Join(parts, ",")
}

// Resolve returns the glyph set of s with duplicate codepoints removed.
func Resolve(s Source) ([]glyph3d.GlyphSpec, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		specs []glyph3d.GlyphSpec
		err   error
	)
	switch {
	case s.Literal != "":
		specs = FromLiteral(s.Literal)
	case s.CharsetFile != "":
		specs, err = FromCharsetFile(s.CharsetFile)
	case s.Range != nil:
		specs, err = FromRange(s.Range.Start, s.Range.End)
	case s.IconsFile != "":
		specs, err = ExtractIconsFile(s.IconsFile)
	default:
		specs = Default()
	}
	if err != nil {
		return nil, err
	}

	out := glyph3d.Dedupe(specs)
	glyph3d.Logger().Debug("glyph set resolved", "source", s.String(),
		"glyphs", len(out), "duplicates", len(specs)-len(out))
	return out, nil
}

// FromLiteral returns one glyph per rune of chars, whitespace included.
func FromLiteral(chars string) []glyph3d.GlyphSpec {
	specs := make([]glyph3d.GlyphSpec, 0, utf8.RuneCountInString(chars))
	for _, r := range chars {
		specs = append(specs, glyph3d.GlyphSpec{Codepoint: r})
	}
	return specs
}

// FromCharset reads text from r and returns one glyph per printable
// non-whitespace rune, each codepoint as written. Input is UTF-8 unless it
// starts with a UTF-16 byte order mark; a UTF-8 byte order mark is dropped.
func FromCharset(r io.Reader) ([]glyph3d.GlyphSpec, error) {
	data, err := io.ReadAll(transform.NewReader(r, xunicode.BOMOverride(transform.Nop)))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, errors.New("charset is not valid UTF-8")
	}

	var specs []glyph3d.GlyphSpec
	for _, c := range string(data) {
		if unicode.IsSpace(c) || !unicode.IsPrint(c) {
			continue
		}
		specs = append(specs, glyph3d.GlyphSpec{Codepoint: c})
	}
	return specs, nil
}

// FromCharsetFile reads the charset file at path.
func FromCharsetFile(path string) ([]glyph3d.GlyphSpec, error) {
	// #nosec G304 -- Charset path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, &glyph3d.InvalidInputError{What: "charset file", Value: path, Err: err}
	}
	defer f.Close()

	specs, err := FromCharset(f)
	if err != nil {
		return nil, &glyph3d.InvalidInputError{What: "charset file", Value: path, Err: err}
	}
	return specs, nil
}

// FromRange returns the glyphs start..end inclusive. Surrogate codepoints
// inside the range are skipped.
func FromRange(start, end rune) ([]glyph3d.GlyphSpec, error) {
	rg := Range{Start: start, End: end}
	if err := rg.validate(); err != nil {
		return nil, err
	}
	specs := make([]glyph3d.GlyphSpec, 0, end-start+1)
	for c := start; c <= end; c++ {
		if !utf8.ValidRune(c) {
			continue
		}
		specs = append(specs, glyph3d.GlyphSpec{Codepoint: c})
	}
	return specs, nil
}

// Default returns the printable ASCII glyphs 33..126.
func Default() []glyph3d.GlyphSpec {
	specs, _ := FromRange(DefaultStart, DefaultEnd)
	return specs
}

func (r Range) validate() error {
	value := fmt.Sprintf("%d..%d", r.Start, r.End)
	switch {
	case !utf8.ValidRune(r.Start):
		return &glyph3d.InvalidInputError{What: "codepoint range", Value: value,
			Err: errors.New("start is not a Unicode scalar value")}
	case !utf8.ValidRune(r.End):
		return &glyph3d.InvalidInputError{What: "codepoint range", Value: value,
			Err: errors.New("end is not a Unicode scalar value")}
	case r.Start > r.End:
		return &glyph3d.InvalidInputError{What: "codepoint range", Value: value,
			Err: errors.New("start is after end")}
	}
	return nil
}
