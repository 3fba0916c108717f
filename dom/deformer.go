package dom

import (
	"github.com/Carmen-Shannon/fbx-go/property"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// Deformer is the typed handle for deformers (class "Deformer"): skins and
// blend shapes attached to a geometry.
type Deformer struct {
	object Object
}

// Kind returns KindDeformer.
func (d Deformer) Kind() ObjectKind { return KindDeformer }

// AsObject returns the untyped handle.
func (d Deformer) AsObject() Object { return d.object }

// ID returns the deformer's object ID.
func (d Deformer) ID() ObjectID { return d.object.ID() }

// Name returns the deformer's display name.
func (d Deformer) Name() string { return d.object.Name() }

// Subclass returns the deformer subclass, e.g. "Skin" or "BlendShape".
func (d Deformer) Subclass() string { return d.object.Subclass() }

// Properties returns the deformer's property table.
func (d Deformer) Properties() property.Properties { return d.object.Properties() }

// IsSkin reports whether the deformer is a skin.
func (d Deformer) IsSkin() bool { return d.object.Subclass() == "Skin" }

// Clusters returns the sub-deformers (clusters) attached to this deformer,
// in connection declaration order.
func (d Deformer) Clusters() []SubDeformer {
	var out []SubDeformer
	for _, obj := range d.object.Children() {
		if c, ok := Classify(obj).(SubDeformer); ok {
			out = append(out, c)
		}
	}
	return out
}

// SubDeformer is the typed handle for deformer components (class
// "SubDeformer"), most importantly skin clusters binding control points to a
// bone model.
type SubDeformer struct {
	object Object
}

// Kind returns KindSubDeformer.
func (s SubDeformer) Kind() ObjectKind { return KindSubDeformer }

// AsObject returns the untyped handle.
func (s SubDeformer) AsObject() Object { return s.object }

// ID returns the sub-deformer's object ID.
func (s SubDeformer) ID() ObjectID { return s.object.ID() }

// Name returns the sub-deformer's display name.
func (s SubDeformer) Name() string { return s.object.Name() }

// Subclass returns the sub-deformer subclass, e.g. "Cluster".
func (s SubDeformer) Subclass() string { return s.object.Subclass() }

// Properties returns the sub-deformer's property table.
func (s SubDeformer) Properties() property.Properties { return s.object.Properties() }

// TargetModel returns the model (bone) this cluster binds, when one is
// connected.
func (s SubDeformer) TargetModel() (Model, bool) {
	for _, obj := range s.object.Children() {
		if m, ok := Classify(obj).(Model); ok {
			return m, true
		}
	}
	return Model{}, false
}

// Indexes returns the cluster's control point indices from its "Indexes"
// child node.
//
// Returns:
//   - []int32: the index array, owned by the tree.
//   - bool: whether the node is present.
func (s SubDeformer) Indexes() ([]int32, bool) {
	attr, ok := s.childArrayAttr("Indexes")
	if !ok {
		return nil, false
	}
	return attr.Int32Slice()
}

// Weights returns the cluster's per-index weights from its "Weights" child
// node.
func (s SubDeformer) Weights() ([]float64, bool) {
	attr, ok := s.childArrayAttr("Weights")
	if !ok {
		return nil, false
	}
	return attr.Float64Slice()
}

// Transform returns the cluster's 4x4 "Transform" matrix in row-flattened
// form.
func (s SubDeformer) Transform() ([]float64, bool) {
	attr, ok := s.childArrayAttr("Transform")
	if !ok {
		return nil, false
	}
	m, ok := attr.Float64Slice()
	if !ok || len(m) != 16 {
		return nil, false
	}
	return m, true
}

// TransformLink returns the cluster's 4x4 "TransformLink" matrix in
// row-flattened form.
func (s SubDeformer) TransformLink() ([]float64, bool) {
	attr, ok := s.childArrayAttr("TransformLink")
	if !ok {
		return nil, false
	}
	m, ok := attr.Float64Slice()
	if !ok || len(m) != 16 {
		return nil, false
	}
	return m, true
}

// childArrayAttr returns the first attribute of a named child node.
func (s SubDeformer) childArrayAttr(name string) (tree.Attribute, bool) {
	node, ok := s.object.doc.tree.FirstChildByName(s.object.meta.node, name)
	if !ok {
		return tree.Attribute{}, false
	}
	return s.object.doc.tree.Attribute(node, 0)
}
