package glyphset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/glyph3d"
)

// tableMarker starts the icon table.
const tableMarker = "var icons ="

// codepointIndex is the position of the hex codepoint in an entry array.
const codepointIndex = 3

// Entry value errors wrapped in MetadataParseError.
var (
	errShortEntry  = errors.New("entry has fewer than 4 elements")
	errNotString   = errors.New("codepoint element is not a string")
	errNotHex      = errors.New("codepoint is not hexadecimal")
	errNotScalar   = errors.New("codepoint is not a Unicode scalar value")
	errLineTooLong = errors.New("line too long")
	errBadName     = errors.New("icon name is not a plain file name")
)

// maxLineSize bounds a single table line. Icon entries carry SVG path
// data and can be long.
const maxLineSize = 4 * 1024 * 1024

// ExtractIcons reads an icon metadata table from r.
//
// Lines before the one starting with "var icons =" are ignored. After it,
// every line with a colon is an entry: the text before the first colon is
// the icon name, the text after it a JSON array whose fourth element is the
// hex codepoint. The first line without a colon ends the table.
//
// Input without the marker yields an empty result. A malformed entry
// returns a *glyph3d.MetadataParseError naming the line.
func ExtractIcons(r io.Reader) ([]glyph3d.GlyphSpec, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	specs := []glyph3d.GlyphSpec{}
	inTable := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !inTable {
			inTable = strings.HasPrefix(line, tableMarker)
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			break
		}
		spec, err := parseEntry(name, value)
		if err != nil {
			return nil, &glyph3d.MetadataParseError{Line: lineNo, Text: line, Err: err}
		}
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = errLineTooLong
		}
		return nil, &glyph3d.MetadataParseError{Line: lineNo + 1, Err: err}
	}

	glyph3d.Logger().Debug("icon table read", "icons", len(specs), "lines", lineNo)
	return specs, nil
}

// ExtractIconsFile reads the icon metadata table at path.
func ExtractIconsFile(path string) ([]glyph3d.GlyphSpec, error) {
	// #nosec G304 -- Icon table path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, &glyph3d.InvalidInputError{What: "icon table", Value: path, Err: err}
	}
	defer f.Close()
	return ExtractIcons(f)
}

func parseEntry(name, value string) (glyph3d.GlyphSpec, error) {
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	value = strings.TrimRight(strings.TrimSpace(value), ",")
	if !plainName(name) {
		return glyph3d.GlyphSpec{}, fmt.Errorf("icon %q: %w", name, errBadName)
	}

	var fields []any
	if err := json.Unmarshal([]byte(value), &fields); err != nil {
		return glyph3d.GlyphSpec{}, fmt.Errorf("icon %q: %w", name, err)
	}
	if len(fields) <= codepointIndex {
		return glyph3d.GlyphSpec{}, fmt.Errorf("icon %q: %w", name, errShortEntry)
	}
	hex, ok := fields[codepointIndex].(string)
	if !ok {
		return glyph3d.GlyphSpec{}, fmt.Errorf("icon %q: %w", name, errNotString)
	}
	hex = strings.TrimSpace(hex)
	if len(hex) > 2 && (hex[:2] == "0x" || hex[:2] == "0X") {
		hex = hex[2:]
	}
	cp, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return glyph3d.GlyphSpec{}, fmt.Errorf("icon %q: %w: %q", name, errNotHex, hex)
	}
	if !utf8.ValidRune(rune(cp)) {
		return glyph3d.GlyphSpec{}, fmt.Errorf("icon %q: %w: %q", name, errNotScalar, hex)
	}
	return glyph3d.GlyphSpec{Name: name, Codepoint: rune(cp)}, nil
}

// plainName reports whether name can be used as an output file stem: no
// path separators and no parent references. An empty name falls back to
// the codepoint identifier.
func plainName(name string) bool {
	return !strings.ContainsAny(name, `/\`+"\x00") && !strings.Contains(name, "..")
}
