// Package material assigns named surface materials to kernel objects.
//
// Materials are shared by name through a Cache owned by the caller. The
// first Assign for a name creates the material with the given colour;
// later calls reuse it and ignore their colour argument.
package material

import (
	"sort"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/kernel"
)

// Cache maps material names to materials. The zero value is not usable;
// create one with NewCache. A Cache is not safe for concurrent use.
type Cache struct {
	byName map[string]*kernel.Material
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{byName: make(map[string]*kernel.Material)}
}

// Len returns the number of cached materials.
func (c *Cache) Len() int { return len(c.byName) }

// Get returns the material called name.
func (c *Cache) Get(name string) (*kernel.Material, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// Names returns the cached material names in sorted order.
func (c *Cache) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookup returns the cached material for name, creating it with rgba if
// it does not exist yet.
func (c *Cache) lookup(name string, rgba [4]float64) *kernel.Material {
	if m, ok := c.byName[name]; ok {
		if m.Color != rgba {
			glyph3d.Logger().Debug("material colour ignored, cached entry wins",
				"material", name, "cached", m.Color, "requested", rgba)
		}
		return m
	}
	m := &kernel.Material{Name: name, Color: rgba}
	c.byName[name] = m
	glyph3d.Logger().Debug("material created", "material", name, "color", rgba)
	return m
}

// Assign appends the material called name to obj's slots and makes it
// active. The material comes from cache, or is created with rgba and
// cached when the name is new.
func Assign(cache *Cache, obj *kernel.Object, name string, rgba [4]float64) *kernel.Material {
	m := cache.lookup(name, rgba)
	obj.AddMaterial(m)
	return m
}
