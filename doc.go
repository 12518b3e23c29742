// Package glyph3d turns font glyphs into exported 3D model assets.
//
// # Overview
//
// A batch takes a font file and a glyph set (an icon metadata table, a literal
// character list, a charset file or a codepoint range) and writes one binary
// model file per glyph. Each glyph is built by a style pipeline into an
// explicit kernel scene, receives cached named materials and is exported as
// GLB or FBX.
//
// # Architecture
//
// The module is organized into:
//   - glyph3d: shared GlyphSpec, error kinds and the package logger
//   - text: font sources, outline backends (x/image sfnt, go-text) and font info
//   - kernel: the geometry kernel (scene, objects, primitives, mesh operations)
//   - glyphset: icon metadata extraction and glyph set resolution
//   - fontload: font resource loading into the kernel font library
//   - shape: per-style glyph shape construction
//   - material: name-keyed material cache and assignment
//   - export: file naming and GLB/FBX encoding
//   - batch: the per-glyph orchestration loop and its flag/env configuration
//   - cmd/fontmodels, cmd/glyphinfo: the command line tools
//
// # Quick Start
//
//	cfg := batch.DefaultConfig()
//	cfg.FontPath = "fa-solid-900.ttf"
//	cfg.OutputDir = "out"
//	cfg.Source = glyphset.Source{IconsFile: "solid.js"}
//	cfg.Style = shape.Plaque.Style()
//	report, err := batch.Run(ctx, cfg, os.Stdout)
//
// # Logging
//
// glyph3d is silent by default. Use [SetLogger] to route diagnostics to a
// [log/slog] handler.
package glyph3d

// Version is the current version of the module.
const Version = "0.1.0"
