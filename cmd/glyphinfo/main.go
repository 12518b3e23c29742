// Command glyphinfo prints the naming, metrics and per-glyph extents of a
// font file as JSON.
package main

import (
	"flag"
	"os"

	"github.com/gogpu/glyph3d/internal/config"
	"github.com/gogpu/glyph3d/internal/tools/glyphinfo"
)

func main() {
	cfg, err := glyphinfo.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := glyphinfo.Run(cfg, os.Stdout); err != nil {
		config.Exitf("glyph info: %v", err)
	}
}
