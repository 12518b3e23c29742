// Command fontmodels exports the glyphs of a font as 3D model files.
//
//	fontmodels -font Roboto.ttf -out models -start 65 -end 90 -format fbx
//	fontmodels -font fa-solid.otf -out icons -icons icons.js -style 1
//
// Environment: GLYPH3D_LOG_LEVEL, GLYPH3D_OUTLINE_BACKEND, GLYPH3D_LEDGER,
// GLYPH3D_OTEL_ENDPOINT and GLYPH3D_OTEL_ENABLED. Flags win over the
// environment.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/batch"
	"github.com/gogpu/glyph3d/internal/config"
	"github.com/gogpu/glyph3d/internal/otel"
)

func main() {
	cfg, err := batch.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	level, _ := cfg.Level()
	glyph3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var otelCfg otel.Config
	if err := config.ParseEnv(&otelCfg); err != nil {
		config.Exitf("parse env: %v", err)
	}
	ctx := context.Background()
	shutdown, err := otel.Setup(ctx, "fontmodels", otelCfg)
	if err != nil {
		config.Exitf("setup tracing: %v", err)
	}

	_, err = batch.Run(ctx, cfg, os.Stdout)
	if serr := shutdown(ctx); serr != nil {
		glyph3d.Logger().Warn("trace shutdown failed", "err", serr)
	}
	if err != nil {
		config.Exitf("export models: %v", err)
	}
}
