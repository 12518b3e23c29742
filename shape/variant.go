package shape

import (
	"fmt"

	"github.com/gogpu/glyph3d"
)

// Variant selects a presentation style.
type Variant int

const (
	// Plain is the glyph alone, left and baseline aligned at the origin.
	Plain Variant = iota

	// Plaque is the glyph standing in front of a rounded cube.
	Plaque

	// Badge is the glyph standing on a thin square plate.
	Badge

	// Carved is a sphere with the glyph cut through it.
	Carved
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case Plain:
		return "Plain"
	case Plaque:
		return "Plaque"
	case Badge:
		return "Badge"
	case Carved:
		return "Carved"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Style returns the numeric style used in file names.
func (v Variant) Style() int { return int(v) }

// Lookup returns the variant for a numeric style, or an
// *glyph3d.UnsupportedStyleError when no pipeline exists for it.
func Lookup(style int) (Variant, error) {
	v := Variant(style)
	if _, ok := handlers[v]; !ok {
		return 0, &glyph3d.UnsupportedStyleError{Style: style}
	}
	return v, nil
}

// Variants returns the supported variants in ascending order.
func Variants() []Variant {
	return []Variant{Plain, Plaque, Badge, Carved}
}
