package dom

import (
	"github.com/Carmen-Shannon/fbx-go/property"
)

// NodeAttribute is the typed handle for per-model attachment data (class
// "NodeAttribute"): light parameters, camera parameters, limb sizes and the
// like, exposed through the generic property table.
type NodeAttribute struct {
	object Object
}

// Kind returns KindNodeAttribute.
func (n NodeAttribute) Kind() ObjectKind { return KindNodeAttribute }

// AsObject returns the untyped handle.
func (n NodeAttribute) AsObject() Object { return n.object }

// ID returns the node attribute's object ID.
func (n NodeAttribute) ID() ObjectID { return n.object.ID() }

// Name returns the node attribute's display name.
func (n NodeAttribute) Name() string { return n.object.Name() }

// Subclass returns the attachment subclass, e.g. "Light" or "Camera".
func (n NodeAttribute) Subclass() string { return n.object.Subclass() }

// Properties returns the node attribute's property table.
func (n NodeAttribute) Properties() property.Properties { return n.object.Properties() }

// Models returns the models this attribute is attached to.
func (n NodeAttribute) Models() []Model {
	var out []Model
	for _, obj := range n.object.Parents() {
		if m, ok := Classify(obj).(Model); ok {
			out = append(out, m)
		}
	}
	return out
}
