package dom

import (
	"github.com/Carmen-Shannon/fbx-go/common"
	"github.com/Carmen-Shannon/fbx-go/property"
)

// Model is the typed handle for scene-graph nodes (class "Model"). Models
// form the transform hierarchy; their unlabeled connections to other models
// express parent/child placement.
type Model struct {
	object Object
}

// Kind returns KindModel.
func (m Model) Kind() ObjectKind { return KindModel }

// AsObject returns the untyped handle.
func (m Model) AsObject() Object { return m.object }

// ID returns the model's object ID.
func (m Model) ID() ObjectID { return m.object.ID() }

// Name returns the model's display name.
func (m Model) Name() string { return m.object.Name() }

// Subclass returns the model subclass, e.g. "Mesh", "Null" or "LimbNode".
func (m Model) Subclass() string { return m.object.Subclass() }

// Properties returns the model's property table.
func (m Model) Properties() property.Properties { return m.object.Properties() }

// ParentModel returns the nearest ancestor model: unlabeled parent edges are
// followed, re-classifying each destination, until a model is found or the
// walk reaches the root. Cycles are tolerated.
//
// Returns:
//   - Model: the parent model, valid only when found.
//   - bool: whether a parent model exists.
func (m Model) ParentModel() (Model, bool) {
	visited := map[ObjectID]struct{}{m.ID(): {}}
	frontier := m.object.UnlabeledParents()
	for len(frontier) > 0 {
		var next []Object
		for _, obj := range frontier {
			if _, seen := visited[obj.ID()]; seen {
				continue
			}
			visited[obj.ID()] = struct{}{}
			if parent, ok := Classify(obj).(Model); ok {
				return parent, true
			}
			next = append(next, obj.UnlabeledParents()...)
		}
		frontier = next
	}
	return Model{}, false
}

// ChildModels returns the models connected into this one without a label, in
// connection declaration order.
func (m Model) ChildModels() []Model {
	var out []Model
	for _, obj := range m.object.UnlabeledChildren() {
		if child, ok := Classify(obj).(Model); ok {
			out = append(out, child)
		}
	}
	return out
}

// Geometries returns the geometry objects attached to this model.
func (m Model) Geometries() []Geometry {
	var out []Geometry
	for _, obj := range m.object.Children() {
		if g, ok := Classify(obj).(Geometry); ok {
			out = append(out, g)
		}
	}
	return out
}

// Materials returns the material objects attached to this model, in
// connection declaration order. The order matters: a mesh material layer
// addresses materials by this slot order.
func (m Model) Materials() []Material {
	var out []Material
	for _, obj := range m.object.Children() {
		if mat, ok := Classify(obj).(Material); ok {
			out = append(out, mat)
		}
	}
	return out
}

// LocalTranslation returns the model's "Lcl Translation" property.
//
// Returns:
//   - common.Vector3: the translation, valid only when present.
//   - bool: whether the property exists.
//   - error: a *property.LoadError when the property exists but is malformed.
func (m Model) LocalTranslation() (common.Vector3, bool, error) {
	return m.vec3Prop("Lcl Translation")
}

// LocalRotation returns the model's "Lcl Rotation" property, Euler degrees.
func (m Model) LocalRotation() (common.Vector3, bool, error) {
	return m.vec3Prop("Lcl Rotation")
}

// LocalScaling returns the model's "Lcl Scaling" property.
func (m Model) LocalScaling() (common.Vector3, bool, error) {
	return m.vec3Prop("Lcl Scaling")
}

// vec3Prop loads a three-component property by name.
func (m Model) vec3Prop(name string) (common.Vector3, bool, error) {
	h, ok := m.Properties().Get(name)
	if !ok {
		return common.Vector3{}, false, nil
	}
	var v common.Vector3
	if err := h.Load(&v); err != nil {
		return common.Vector3{}, true, err
	}
	return v, true, nil
}

// Visibility returns the model's "Visibility" property as a boolean. FBX
// stores it as a double; any nonzero value counts as visible.
func (m Model) Visibility() (bool, bool, error) {
	h, ok := m.Properties().Get("Visibility")
	if !ok {
		return false, false, nil
	}
	var v float64
	if err := h.Load(&v); err != nil {
		return false, true, err
	}
	return v != 0, true, nil
}
