package kernel

// Material is a named surface colour. Color is linear RGBA in [0, 1].
type Material struct {
	Name  string
	Color [4]float64
}

// AddMaterial appends m to the object's material slots and makes it the
// active slot.
func (o *Object) AddMaterial(m *Material) {
	o.materials = append(o.materials, m)
	o.activeMaterial = len(o.materials) - 1
}

// Materials returns the object's material slots in order.
func (o *Object) Materials() []*Material {
	return o.materials
}

// ActiveMaterial returns the active material slot, or nil when the object
// has no materials.
func (o *Object) ActiveMaterial() *Material {
	if len(o.materials) == 0 {
		return nil
	}
	return o.materials[o.activeMaterial]
}
