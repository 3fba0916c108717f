package dom

import (
	"github.com/Carmen-Shannon/fbx-go/mesh"
	"github.com/Carmen-Shannon/fbx-go/property"
)

// Geometry is the typed handle for geometry data objects (class "Geometry").
// The interesting subclass is "Mesh"; other subclasses (NURBS, shapes) pass
// through as plain geometry without decoded content.
type Geometry struct {
	object Object
}

// Kind returns KindGeometry.
func (g Geometry) Kind() ObjectKind { return KindGeometry }

// AsObject returns the untyped handle.
func (g Geometry) AsObject() Object { return g.object }

// ID returns the geometry's object ID.
func (g Geometry) ID() ObjectID { return g.object.ID() }

// Name returns the geometry's display name.
func (g Geometry) Name() string { return g.object.Name() }

// Properties returns the geometry's property table.
func (g Geometry) Properties() property.Properties { return g.object.Properties() }

// IsMesh reports whether the geometry subclass is "Mesh".
func (g Geometry) IsMesh() bool { return g.object.Subclass() == "Mesh" }

// AsMesh narrows the geometry to decoded mesh content.
//
// Returns:
//   - *mesh.Mesh: the decoded mesh, nil when the subclass is not "Mesh".
//   - bool: whether the geometry is a mesh at all.
//   - error: a decoding failure for a geometry that is a mesh but carries
//     malformed vertex data.
func (g Geometry) AsMesh() (*mesh.Mesh, bool, error) {
	if !g.IsMesh() {
		return nil, false, nil
	}
	m, err := mesh.New(g.object.doc.tree, g.object.meta.node)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Models returns the models this geometry is attached to.
func (g Geometry) Models() []Model {
	var out []Model
	for _, obj := range g.object.Parents() {
		if m, ok := Classify(obj).(Model); ok {
			out = append(out, m)
		}
	}
	return out
}

// Deformers returns the deformers (skins, blend shapes) attached to this
// geometry.
func (g Geometry) Deformers() []Deformer {
	var out []Deformer
	for _, obj := range g.object.Children() {
		if d, ok := Classify(obj).(Deformer); ok {
			out = append(out, d)
		}
	}
	return out
}
