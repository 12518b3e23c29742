package export

import (
	"fmt"
	"strings"

	"github.com/gogpu/glyph3d"
)

// Format is a model interchange format.
type Format uint8

const (
	// GLB is binary glTF 2.0.
	GLB Format = iota

	// FBX is binary FBX 7.4.
	FBX
)

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	switch f {
	case GLB:
		return "glb"
	case FBX:
		return "fbx"
	default:
		return "bin"
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case GLB:
		return "GLB"
	case FBX:
		return "FBX"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses a format name. "gltf" is accepted as an alias for
// GLB. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "glb", "gltf":
		return GLB, nil
	case "fbx":
		return FBX, nil
	default:
		return 0, &glyph3d.InvalidInputError{What: "export format", Value: s}
	}
}

// FileName returns the output file name for glyph: "{id}_s{style}.{ext}"
// for styled builds and "{id}.{ext}" when style is 0.
func FileName(glyph glyph3d.GlyphSpec, style int, f Format) string {
	if style > 0 {
		return fmt.Sprintf("%s_s%d.%s", glyph.Identifier(), style, f.Ext())
	}
	return glyph.Identifier() + "." + f.Ext()
}
