package glyph3d

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below matches exactly one of these with
// errors.Is, so callers can branch on the kind without a type switch.
var (
	// ErrInvalidInput reports a bad font path, output directory or glyph source.
	ErrInvalidInput = errors.New("glyph3d: invalid input")

	// ErrMetadataParse reports a malformed icon metadata table entry.
	ErrMetadataParse = errors.New("glyph3d: metadata parse error")

	// ErrFontLoad reports that the kernel did not register a new font.
	ErrFontLoad = errors.New("glyph3d: font load failed")

	// ErrUnsupportedStyle reports a style value outside the supported set.
	ErrUnsupportedStyle = errors.New("glyph3d: unsupported style")

	// ErrExport reports a model serialization failure.
	ErrExport = errors.New("glyph3d: export failed")
)

// InvalidInputError is returned when a user supplied input fails validation.
type InvalidInputError struct {
	What  string // e.g. "font file", "output directory"
	Value string
	Err   error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("glyph3d: invalid %s %q: %v", e.What, e.Value, e.Err)
	}
	return fmt.Sprintf("glyph3d: invalid %s %q", e.What, e.Value)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// MetadataParseError is returned for a malformed icon table line.
// Line is 1-based.
type MetadataParseError struct {
	Line int
	Text string
	Err  error
}

func (e *MetadataParseError) Error() string {
	return fmt.Sprintf("glyph3d: malformed icon entry at line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *MetadataParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMetadataParse.
func (e *MetadataParseError) Is(target error) bool { return target == ErrMetadataParse }

// FontLoadError is returned when a font file could not be registered.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("glyph3d: failed to load font from %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("glyph3d: failed to load font from %s", e.Path)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFontLoad.
func (e *FontLoadError) Is(target error) bool { return target == ErrFontLoad }

// UnsupportedStyleError is returned for a style value without a pipeline.
type UnsupportedStyleError struct {
	Style int
}

func (e *UnsupportedStyleError) Error() string {
	return fmt.Sprintf("glyph3d: unsupported style %d", e.Style)
}

// Is reports whether target is ErrUnsupportedStyle.
func (e *UnsupportedStyleError) Is(target error) bool { return target == ErrUnsupportedStyle }

// ExportError is returned when a model could not be written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("glyph3d: failed to export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Is reports whether target is ErrExport.
func (e *ExportError) Is(target error) bool { return target == ErrExport }
