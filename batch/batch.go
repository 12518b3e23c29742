package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/export"
	"github.com/gogpu/glyph3d/fontload"
	"github.com/gogpu/glyph3d/glyphset"
	"github.com/gogpu/glyph3d/internal/ledger"
	"github.com/gogpu/glyph3d/kernel"
	"github.com/gogpu/glyph3d/material"
	"github.com/gogpu/glyph3d/shape"
	"github.com/gogpu/glyph3d/text"
)

const tracerName = "github.com/gogpu/glyph3d/batch"

var (
	errNotDirectory = errors.New("not a directory")
	errIsDirectory  = errors.New("is a directory")
	errNoBackend    = errors.New("unknown outline backend")
	errEscapesDir   = errors.New("file name leaves the output directory")
)

// Report lists the artifacts of a run in glyph set order.
type Report struct {
	Artifacts []export.Artifact
}

// Paths returns the artifact paths.
func (r *Report) Paths() []string {
	out := make([]string, len(r.Artifacts))
	for i, a := range r.Artifacts {
		out[i] = a.Path
	}
	return out
}

// run is the validated state of one batch.
type run struct {
	cfg      Config
	variant  shape.Variant
	glyphs   []glyph3d.GlyphSpec
	font     *kernel.Font
	scene    *kernel.Scene
	cache    *material.Cache
	builder  *shape.Builder
	exporter *export.Exporter
	ledger   *ledger.Store
	tracer   trace.Tracer
}

// Run exports every glyph of cfg.Source. Progress lines go to out, which
// may be nil. On error the returned report holds the artifacts written
// before the failure.
func Run(ctx context.Context, cfg Config, out io.Writer) (rep *Report, err error) {
	if out == nil {
		out = io.Discard
	}
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "batch.run", trace.WithAttributes(
		attribute.String("font", cfg.FontPath),
		attribute.String("source", cfg.Source.String()),
		attribute.Int("style", cfg.Style),
		attribute.String("format", cfg.Format.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	r, err := prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r.tracer = tracer
	if r.ledger != nil {
		defer func() {
			if cerr := r.ledger.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("batch: close ledger: %w", cerr)
			}
		}()
	}
	span.SetAttributes(attribute.Int("glyphs", len(r.glyphs)))

	rep = &Report{Artifacts: make([]export.Artifact, 0, len(r.glyphs))}
	for i, g := range r.glyphs {
		a, err := r.glyph(ctx, g)
		if err != nil {
			return rep, fmt.Errorf("batch: glyph %s: %w", g.Identifier(), err)
		}
		rep.Artifacts = append(rep.Artifacts, a)
		fmt.Fprintf(out, "[%d/%d] %s -> %s\n", i+1, len(r.glyphs), g, filepath.Base(a.Path))
	}
	fmt.Fprintf(out, "wrote %d models to %s\n", len(rep.Artifacts), cfg.OutputDir)
	glyph3d.Logger().Info("batch complete", "artifacts", len(rep.Artifacts), "dir", cfg.OutputDir)
	return rep, nil
}

// prepare validates cfg and loads everything the per-glyph loop needs.
// Nothing is written before it succeeds.
func prepare(ctx context.Context, cfg Config) (*run, error) {
	if err := checkFile("font file", cfg.FontPath); err != nil {
		return nil, err
	}
	if err := checkDir(cfg.OutputDir); err != nil {
		return nil, err
	}
	if err := cfg.Source.Validate(); err != nil {
		return nil, err
	}
	variant, err := shape.Lookup(cfg.Style)
	if err != nil {
		return nil, err
	}
	if cfg.Format != export.GLB && cfg.Format != export.FBX {
		return nil, &glyph3d.InvalidInputError{What: "export format", Value: cfg.Format.String()}
	}
	if !text.HasParser(cfg.Backend) {
		return nil, &glyph3d.InvalidInputError{What: "outline backend", Value: cfg.Backend, Err: errNoBackend}
	}
	if err := validateGlyph(cfg.Glyph); err != nil {
		return nil, err
	}

	glyphs, err := glyphset.Resolve(cfg.Source)
	if err != nil {
		return nil, err
	}
	font, err := fontload.Load(kernel.NewFontLibrary(cfg.Backend), cfg.FontPath)
	if err != nil {
		return nil, err
	}

	r := &run{
		cfg:      cfg,
		variant:  variant,
		glyphs:   glyphs,
		font:     font,
		scene:    kernel.NewScene(),
		cache:    material.NewCache(),
		builder:  shape.NewBuilder(shape.WithPlainParams(cfg.Glyph)),
		exporter: export.NewExporter(),
	}
	if cfg.LedgerPath != "" {
		if r.ledger, err = ledger.Open(ctx, cfg.LedgerPath); err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
	}
	glyph3d.Logger().Info("batch starting", "font", font.Name(), "glyphs", len(glyphs),
		"variant", variant.String(), "format", cfg.Format.String())
	return r, nil
}

// glyph builds and exports one glyph.
func (r *run) glyph(ctx context.Context, g glyph3d.GlyphSpec) (a export.Artifact, err error) {
	ctx, span := r.tracer.Start(ctx, "batch.glyph", trace.WithAttributes(
		attribute.String("glyph", g.Identifier()),
		attribute.Int("codepoint", int(g.Codepoint)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	name := export.FileName(g, r.cfg.Style, r.cfg.Format)
	if filepath.Base(name) != name || strings.Contains(name, "..") {
		return export.Artifact{}, &glyph3d.InvalidInputError{What: "output file name", Value: name, Err: errEscapesDir}
	}

	if n := r.scene.RemoveWhere(kernel.IsTransient); n > 0 {
		glyph3d.Logger().Debug("scene cleared", "removed", n)
	}

	res, err := r.builder.Build(r.scene, r.font, g, r.variant)
	if err != nil {
		return export.Artifact{}, err
	}
	for _, p := range res.Parts {
		if p.Material != "" {
			material.Assign(r.cache, p.Object, p.Material, p.Color)
		}
	}
	if err := r.scene.SetFinal(res.Final...); err != nil {
		return export.Artifact{}, err
	}

	path := filepath.Join(r.cfg.OutputDir, name)
	a, err = r.exporter.Export(res.Final, path, r.cfg.Format)
	if err != nil {
		return export.Artifact{}, err
	}
	a.Glyph, a.Style = g, r.cfg.Style
	span.SetAttributes(attribute.String("path", path), attribute.Int64("bytes", a.Size))

	if r.ledger != nil {
		if err := r.ledger.Record(ctx, a); err != nil {
			return export.Artifact{}, err
		}
	}
	return a, nil
}

func checkFile(what, path string) error {
	if path == "" {
		return &glyph3d.InvalidInputError{What: what, Value: path, Err: os.ErrNotExist}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &glyph3d.InvalidInputError{What: what, Value: path, Err: err}
	}
	if info.IsDir() {
		return &glyph3d.InvalidInputError{What: what, Value: path, Err: errIsDirectory}
	}
	return nil
}

func checkDir(path string) error {
	if path == "" {
		return &glyph3d.InvalidInputError{What: "output directory", Value: path, Err: os.ErrNotExist}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &glyph3d.InvalidInputError{What: "output directory", Value: path, Err: err}
	}
	if !info.IsDir() {
		return &glyph3d.InvalidInputError{What: "output directory", Value: path, Err: errNotDirectory}
	}
	return nil
}
