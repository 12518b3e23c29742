// Package glyphinfo implements the glyphinfo command.
package glyphinfo

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/text"
)

// Config holds the command's flags.
type Config struct {
	FontPath   string
	OutputPath string // empty writes to the command's output
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.FontPath, "font", "", "font file (TTF/OTF)")
	fs.StringVar(&cfg.OutputPath, "o", "", "output JSON file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.FontPath) == "" {
		return Config{}, &glyph3d.InvalidInputError{What: "flag", Value: "-font",
			Err: errors.New("required flag not set")}
	}
	return cfg, nil
}

// Run reads the font and writes its info as indented JSON to cfg.OutputPath,
// or to out when no path is set.
func Run(cfg Config, out io.Writer) error {
	info, err := text.ReadInfoFile(cfg.FontPath)
	if err != nil {
		return &glyph3d.FontLoadError{Path: cfg.FontPath, Err: err}
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("encode info: %w", err)
	}
	data = append(data, '\n')

	if cfg.OutputPath != "" {
		// #nosec G306 -- Output path is provided by the user
		if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.OutputPath, err)
		}
		glyph3d.Logger().Info("glyph info written", "path", cfg.OutputPath, "glyphs", len(info.Glyphs))
		return nil
	}
	if out == nil {
		return errors.New("output is required")
	}
	_, err = out.Write(data)
	return err
}
