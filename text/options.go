package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName       string
	outlineCacheSize int
}

// DefaultOutlineCacheSize is the number of glyph outlines a FontSource
// keeps by default.
const DefaultOutlineCacheSize = 256

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName:       defaultParserName,
		outlineCacheSize: DefaultOutlineCacheSize,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
// An empty name selects the default.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		if name != "" {
			c.parserName = name
		}
	}
}

// WithOutlineCache sets how many parsed glyph outlines the source keeps.
// Zero keeps every outline.
func WithOutlineCache(n int) SourceOption {
	return func(c *sourceConfig) {
		if n >= 0 {
			c.outlineCacheSize = n
		}
	}
}
