package text

import (
	"fmt"
	"os"
	"sync"

	"github.com/gogpu/glyph3d/internal/cache"
)

// FontSource represents a loaded font file.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	// Font data
	data   []byte
	parsed ParsedFont // Abstracted font interface (pluggable backend)

	// Metadata
	name string

	// mu guards data and parsed against Close.
	mu sync.RWMutex

	// outlines holds parsed outlines by glyph ID.
	outlines *cache.Cache[GlyphID, *GlyphOutline]

	config sourceConfig
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	// Apply options first to get parser name
	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser, err := getParser(config.parserName)
	if err != nil {
		return nil, err
	}
	parsed, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{
		data:   dataCopy,
		parsed:   parsed,
		config:   config,
		outlines: cache.New[GlyphID, *GlyphOutline](config.outlineCacheSize),
	}
	s.addr = s // Self-reference for copy detection

	s.name = extractFontName(parsed)

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data, opts...)
}

// Name returns the font name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// ParserName returns the name of the backend that parsed the font.
func (s *FontSource) ParserName() string {
	s.copyCheck()
	return s.config.parserName
}

// Parsed returns the parsed font for advanced operations.
// It returns nil after Close.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// UnitsPerEm returns the design units per em, or 0 after Close.
func (s *FontSource) UnitsPerEm() int {
	if p := s.Parsed(); p != nil {
		return p.UnitsPerEm()
	}
	return 0
}

// HasGlyph reports whether the font maps r to a glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	p := s.Parsed()
	if p == nil {
		return false
	}
	_, ok := p.GlyphIndex(r)
	return ok
}

// Outline returns the outline of the glyph mapped to r. Runes the font
// does not map resolve to the .notdef glyph, as a text engine would draw.
// Outlines are cached; the caller owns the returned copy.
func (s *FontSource) Outline(r rune) (*GlyphOutline, error) {
	p := s.Parsed()
	if p == nil {
		return nil, ErrSourceClosed
	}
	gid, _ := p.GlyphIndex(r)
	if o, ok := s.outlines.Get(gid); ok {
		return o.Clone(), nil
	}
	o, err := p.GlyphOutline(gid)
	if err != nil {
		return nil, err
	}
	s.outlines.Set(gid, o.Clone())
	return o, nil
}

// CacheStats returns the outline cache statistics.
func (s *FontSource) CacheStats() cache.Stats {
	return s.outlines.Stats()
}

// Close releases resources associated with the FontSource.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.parsed = nil
	s.outlines.Clear()

	return nil
}

// copyCheck panics if FontSource was copied by value.
// This is the Ebitengine pattern for preventing accidental copies.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}

	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}

	return "Unknown Font"
}
