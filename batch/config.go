package batch

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/export"
	"github.com/gogpu/glyph3d/glyphset"
	"github.com/gogpu/glyph3d/internal/config"
	"github.com/gogpu/glyph3d/kernel"
	"github.com/gogpu/glyph3d/shape"
)

// Config is the input of one batch run.
type Config struct {
	FontPath  string
	OutputDir string
	Source    glyphset.Source
	Style     int
	Format    export.Format

	// Glyph holds the plain pipeline's glyph parameters. Only the
	// numeric fields are used.
	Glyph kernel.TextParams

	// Backend names the outline parser ("ximage" or "gotext").
	Backend string

	// LedgerPath is an optional SQLite file recording every artifact.
	LedgerPath string

	LogLevel string
}

// envConfig holds the settings that may come from the environment.
type envConfig struct {
	Backend    string `env:"GLYPH3D_OUTLINE_BACKEND"`
	LedgerPath string `env:"GLYPH3D_LEDGER"`
	LogLevel   string `env:"GLYPH3D_LOG_LEVEL" envDefault:"info"`
}

// DefaultConfig returns a Config with the plain pipeline's defaults and
// no font or output directory.
func DefaultConfig() Config {
	return Config{
		Format:   export.GLB,
		Glyph:    shape.DefaultPlainParams,
		LogLevel: "info",
	}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, &glyph3d.InvalidInputError{What: "log level", Value: c.LogLevel, Err: err}
	}
	return l, nil
}

var errMissingFlag = errors.New("required flag not set")

// ParseConfig reads the environment and then args into a Config. Flags
// override environment values. Only -font and -out are required here;
// Run checks the rest.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var ec envConfig
	if err := config.ParseEnv(&ec); err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	cfg.Backend, cfg.LedgerPath, cfg.LogLevel = ec.Backend, ec.LedgerPath, ec.LogLevel

	var (
		chars, charset, icons, format string
		start, end                    int
	)
	fs.StringVar(&cfg.FontPath, "font", "", "font file (TTF/OTF)")
	fs.StringVar(&cfg.OutputDir, "out", "", "existing output directory")
	fs.StringVar(&icons, "icons", "", "icon metadata table file")
	fs.StringVar(&chars, "chars", "", "literal characters to export")
	fs.StringVar(&charset, "charset", "", "UTF-8 file of characters to export")
	fs.IntVar(&start, "start", int(glyphset.DefaultStart), "first codepoint of a range")
	fs.IntVar(&end, "end", int(glyphset.DefaultEnd), "last codepoint of a range")
	fs.IntVar(&cfg.Style, "style", 0, "style variant: 0 none, 1 plaque, 2 badge, 3 carved")
	fs.StringVar(&format, "format", "glb", "output format: glb, gltf or fbx")
	fs.Float64Var(&cfg.Glyph.Size, "size", cfg.Glyph.Size, "glyph em size")
	fs.Float64Var(&cfg.Glyph.Extrude, "extrude", cfg.Glyph.Extrude, "glyph half thickness")
	fs.Float64Var(&cfg.Glyph.BevelDepth, "bevel-depth", cfg.Glyph.BevelDepth, "bevel depth")
	fs.IntVar(&cfg.Glyph.BevelResolution, "bevel-resolution", cfg.Glyph.BevelResolution, "bevel profile segments")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "outline backend: ximage or gotext")
	fs.StringVar(&cfg.LedgerPath, "ledger", cfg.LedgerPath, "SQLite artifact ledger (optional)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, name := range []string{"font", "out"} {
		if !set[name] || strings.TrimSpace(fs.Lookup(name).Value.String()) == "" {
			return Config{}, &glyph3d.InvalidInputError{What: "flag", Value: "-" + name, Err: errMissingFlag}
		}
	}

	cfg.Source = glyphset.Source{Literal: chars, CharsetFile: charset, IconsFile: icons}
	if set["start"] || set["end"] {
		cfg.Source.Range = &glyphset.Range{Start: rune(start), End: rune(end)}
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return Config{}, err
	}
	cfg.Format = f

	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validateGlyph checks the numeric glyph parameters.
func validateGlyph(p kernel.TextParams) error {
	switch {
	case !(p.Size > 0):
		return &glyph3d.InvalidInputError{What: "glyph size", Value: fmt.Sprint(p.Size)}
	case !(p.Extrude >= 0):
		return &glyph3d.InvalidInputError{What: "extrude", Value: fmt.Sprint(p.Extrude)}
	case !(p.BevelDepth >= 0):
		return &glyph3d.InvalidInputError{What: "bevel depth", Value: fmt.Sprint(p.BevelDepth)}
	case p.BevelResolution < 0:
		return &glyph3d.InvalidInputError{What: "bevel resolution", Value: fmt.Sprint(p.BevelResolution)}
	}
	return nil
}
