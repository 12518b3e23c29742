package kernel

import (
	"fmt"

	"github.com/unixpickle/model3d/model3d"
)

// Kind distinguishes curve (text) objects from mesh objects.
type Kind uint8

const (
	// KindText is a glyph outline object whose geometry is evaluated from
	// its font and text parameters.
	KindText Kind = iota

	// KindMesh is a triangle mesh object.
	KindMesh
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindMesh:
		return "Mesh"
	default:
		return "Unknown"
	}
}

// Object is an entry of a Scene: geometry in local coordinates plus a
// location, rotation and scale relative to its parent.
//
// Objects are created by Scene methods and stay valid until removed.
type Object struct {
	// Location, Rotation (XYZ Euler, radians) and Scale form the local
	// transform.
	Location model3d.Coord3D
	Rotation model3d.Coord3D
	Scale    model3d.Coord3D

	id     int
	name   string
	kind   Kind
	scene  *Scene
	parent *Object

	mesh   *model3d.Mesh
	glyph  *glyphData
	cuboid bool

	modifiers []modifier

	materials      []*Material
	activeMaterial int

	final      bool
	persistent bool
}

// ID returns the object's scene-unique id. Ids are never reused within a
// scene.
func (o *Object) ID() int { return o.id }

// Name returns the object's name, unique among live objects of its scene.
func (o *Object) Name() string { return o.name }

// Kind returns whether the object is text or a mesh.
func (o *Object) Kind() Kind { return o.kind }

// Parent returns the parent object, or nil for root objects.
func (o *Object) Parent() *Object { return o.parent }

// Final reports whether the object is part of the scene's final selection.
func (o *Object) Final() bool { return o.final }

// Persistent reports whether the object survives transient cleanup.
func (o *Object) Persistent() bool { return o.persistent }

// SetPersistent marks the object as kept across IsTransient cleanups.
func (o *Object) SetPersistent(v bool) { o.persistent = v }

// Glyph returns the rune an outline object was created for. The boolean
// is false for objects that did not come from AddText.
func (o *Object) Glyph() (rune, bool) {
	if o.glyph == nil {
		return 0, false
	}
	return o.glyph.r, true
}

// Mesh returns the object's geometry in local coordinates. For text
// objects this is the evaluated outline: extruded and bevelled.
// The returned mesh must not be modified.
func (o *Object) Mesh() *model3d.Mesh {
	return o.mesh
}

// Scene holds objects. The zero value is not usable; call NewScene.
type Scene struct {
	objects []*Object
	nextID  int
}

// NewScene creates a new empty scene.
func NewScene() *Scene {
	return &Scene{nextID: 1}
}

// Len returns the number of objects in the scene.
func (s *Scene) Len() int { return len(s.objects) }

// Objects returns the objects in creation order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Contains reports whether o is a live object of s.
func (s *Scene) Contains(o *Object) bool {
	return o != nil && o.scene == s
}

// add registers o under a unique name derived from base.
func (s *Scene) add(o *Object, base string) *Object {
	o.id = s.nextID
	s.nextID++
	o.scene = s
	o.name = s.uniqueName(base)
	if o.Scale == (model3d.Coord3D{}) {
		o.Scale = model3d.XYZ(1, 1, 1)
	}
	s.objects = append(s.objects, o)
	return o
}

// uniqueName returns base, or base.NNN with the smallest free suffix.
func (s *Scene) uniqueName(base string) string {
	taken := make(map[string]bool, len(s.objects))
	for _, o := range s.objects {
		taken[o.name] = true
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", base, i)
		if !taken[name] {
			return name
		}
	}
}

// RemoveWhere deletes every object for which pred returns true and
// returns how many were removed. Children of removed objects become root
// objects and boolean modifiers that used a removed object are dropped.
func (s *Scene) RemoveWhere(pred func(*Object) bool) int {
	kept := s.objects[:0]
	removed := 0
	for _, o := range s.objects {
		if pred(o) {
			o.scene = nil
			o.final = false
			removed++
			continue
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = kept

	if removed > 0 {
		for _, o := range s.objects {
			if o.parent != nil && o.parent.scene != s {
				o.parent = nil
			}
			mods := o.modifiers[:0]
			for _, m := range o.modifiers {
				if m.tool.scene == s {
					mods = append(mods, m)
				}
			}
			o.modifiers = mods
		}
	}
	return removed
}

// SetFinal makes objs the final selection, clearing any previous one.
func (s *Scene) SetFinal(objs ...*Object) error {
	for _, o := range objs {
		if !s.Contains(o) {
			return fmt.Errorf("set final %v: %w", objectName(o), ErrNotInScene)
		}
	}
	for _, o := range s.objects {
		o.final = false
	}
	for _, o := range objs {
		o.final = true
	}
	return nil
}

// Final returns the final selection in creation order.
func (s *Scene) Final() []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.final {
			out = append(out, o)
		}
	}
	return out
}

// IsGlyphOutline matches objects created by AddText, including ones
// converted to meshes since.
func IsGlyphOutline(o *Object) bool {
	return o.glyph != nil
}

// IsTransient matches every object not marked persistent.
func IsTransient(o *Object) bool {
	return !o.persistent
}

func objectName(o *Object) string {
	if o == nil {
		return "<nil>"
	}
	return o.name
}
