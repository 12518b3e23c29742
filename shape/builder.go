package shape

import (
	"fmt"
	"math"

	"github.com/unixpickle/model3d/model3d"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/kernel"
)

// Material names and colours of the styled variants.
const (
	IconTextMat   = "IconTextMat"
	IconCubeMat   = "IconCubeMat"
	BadgeGlyphMat = "BadgeGlyphMat"
	BadgePlateMat = "BadgePlateMat"
	CarvedMat     = "CarvedMat"
)

var (
	iconTextColor   = [4]float64{0, 0.318546, 1, 1}
	iconCubeColor   = [4]float64{0, 0, 0, 1}
	badgeGlyphColor = [4]float64{0.95, 0.95, 0.95, 1}
	badgePlateColor = [4]float64{0.05, 0.05, 0.05, 1}
	carvedColor     = [4]float64{0.8, 0.55, 0.2, 1}
)

// standUp rotates a glyph from the XY plane to face -Y.
var standUp = model3d.XYZ(math.Pi/2, 0, 0)

// DefaultPlainParams are the plain pipeline's glyph parameters.
var DefaultPlainParams = kernel.TextParams{
	Size:            1.0,
	Extrude:         0.02,
	BevelDepth:      0.0,
	BevelResolution: 4,
}

// Part is an object produced by a build with the material it should get.
// An empty Material means the object gets none.
type Part struct {
	Object   *kernel.Object
	Material string
	Color    [4]float64
}

// Result is the outcome of one glyph build.
type Result struct {
	// Parts lists every object the build created, in creation order.
	Parts []Part

	// Final lists the objects that make up the exported model.
	Final []*kernel.Object
}

// handler builds one variant into scene.
type handler func(b *Builder, scene *kernel.Scene, font *kernel.Font, glyph glyph3d.GlyphSpec) (*Result, error)

var handlers = map[Variant]handler{
	Plain:  (*Builder).buildPlain,
	Plaque: (*Builder).buildPlaque,
	Badge:  (*Builder).buildBadge,
	Carved: (*Builder).buildCarved,
}

// Builder builds glyph geometry into a kernel scene.
type Builder struct {
	plain           kernel.TextParams
	carveResolution float64
}

// Option configures a Builder.
type Option func(*Builder)

// WithPlainParams overrides the numeric glyph parameters of the plain
// pipeline. Location, Rotation and AlignCenter are ignored.
func WithPlainParams(p kernel.TextParams) Option {
	return func(b *Builder) {
		b.plain = kernel.TextParams{
			Size:            p.Size,
			Extrude:         p.Extrude,
			BevelDepth:      p.BevelDepth,
			BevelResolution: p.BevelResolution,
		}
	}
}

// WithCarveResolution sets the sampling step of the carved variant's
// boolean difference. Non-positive values keep the default.
func WithCarveResolution(delta float64) Option {
	return func(b *Builder) {
		if delta > 0 {
			b.carveResolution = delta
		}
	}
}

// NewBuilder returns a Builder with the given options applied.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		plain:           DefaultPlainParams,
		carveResolution: kernel.DefaultBooleanResolution,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PlainParams returns the plain pipeline's glyph parameters.
func (b *Builder) PlainParams() kernel.TextParams { return b.plain }

// Build creates the geometry of glyph in the given variant. Glyph outline
// objects left in scene by earlier builds are removed first. An unknown
// variant fails before the scene is touched.
func (b *Builder) Build(scene *kernel.Scene, font *kernel.Font, glyph glyph3d.GlyphSpec, v Variant) (*Result, error) {
	h, ok := handlers[v]
	if !ok {
		return nil, &glyph3d.UnsupportedStyleError{Style: int(v)}
	}
	if removed := scene.RemoveWhere(kernel.IsGlyphOutline); removed > 0 {
		glyph3d.Logger().Debug("stale glyph outlines removed", "count", removed)
	}

	res, err := h(b, scene, font, glyph)
	if err != nil {
		return nil, fmt.Errorf("shape: build %s as %s: %w", glyph, v, err)
	}
	glyph3d.Logger().Debug("glyph built", "glyph", glyph.String(), "variant", v.String(),
		"parts", len(res.Parts), "final", len(res.Final))
	return res, nil
}

func (b *Builder) buildPlain(scene *kernel.Scene, font *kernel.Font, glyph glyph3d.GlyphSpec) (*Result, error) {
	txt, err := scene.AddText(font, glyph.Codepoint, b.plain)
	if err != nil {
		return nil, err
	}
	return &Result{
		Parts: []Part{{Object: txt}},
		Final: []*kernel.Object{txt},
	}, nil
}

func (b *Builder) buildPlaque(scene *kernel.Scene, font *kernel.Font, glyph glyph3d.GlyphSpec) (*Result, error) {
	txt, err := scene.AddText(font, glyph.Codepoint, kernel.TextParams{
		Size:            1.0,
		Extrude:         0.05,
		BevelResolution: 4,
		AlignCenter:     true,
		Rotation:        standUp,
		Location:        model3d.XYZ(0, -0.8, 0),
	})
	if err != nil {
		return nil, err
	}

	cube := scene.AddCube(2, model3d.Coord3D{})
	cube.Scale = model3d.XYZ(0.8, 0.8, 0.8)
	if err := scene.ApplyScale(cube); err != nil {
		return nil, err
	}
	if err := scene.BevelEdges(cube, 0.3, 5); err != nil {
		return nil, err
	}
	if err := scene.SetParent(txt, cube); err != nil {
		return nil, err
	}

	return &Result{
		Parts: []Part{
			{Object: txt, Material: IconTextMat, Color: iconTextColor},
			{Object: cube, Material: IconCubeMat, Color: iconCubeColor},
		},
		Final: []*kernel.Object{txt, cube},
	}, nil
}

func (b *Builder) buildBadge(scene *kernel.Scene, font *kernel.Font, glyph glyph3d.GlyphSpec) (*Result, error) {
	txt, err := scene.AddText(font, glyph.Codepoint, kernel.TextParams{
		Size:        1.0,
		Extrude:     0.03,
		AlignCenter: true,
		Rotation:    standUp,
		Location:    model3d.XYZ(0, -0.08, 0),
	})
	if err != nil {
		return nil, err
	}

	plate := scene.AddCube(2, model3d.Coord3D{})
	plate.Scale = model3d.XYZ(0.9, 0.05, 0.9)
	if err := scene.ApplyScale(plate); err != nil {
		return nil, err
	}
	if err := scene.SetParent(txt, plate); err != nil {
		return nil, err
	}

	return &Result{
		Parts: []Part{
			{Object: txt, Material: BadgeGlyphMat, Color: badgeGlyphColor},
			{Object: plate, Material: BadgePlateMat, Color: badgePlateColor},
		},
		Final: []*kernel.Object{txt, plate},
	}, nil
}

func (b *Builder) buildCarved(scene *kernel.Scene, font *kernel.Font, glyph glyph3d.GlyphSpec) (*Result, error) {
	tool, err := scene.AddText(font, glyph.Codepoint, kernel.TextParams{
		Size:        1.0,
		Extrude:     1.2,
		AlignCenter: true,
		Rotation:    standUp,
	})
	if err != nil {
		return nil, err
	}
	if err := scene.ConvertToMesh(tool); err != nil {
		return nil, err
	}

	sphere := scene.AddUVSphere(0.8, 32, 16, model3d.Coord3D{})
	if err := scene.BooleanDifference(sphere, tool, b.carveResolution); err != nil {
		return nil, err
	}
	if err := scene.ApplyModifiers(sphere); err != nil {
		return nil, err
	}

	return &Result{
		Parts: []Part{
			{Object: tool},
			{Object: sphere, Material: CarvedMat, Color: carvedColor},
		},
		Final: []*kernel.Object{sphere},
	}, nil
}
