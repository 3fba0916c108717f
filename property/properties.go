// package property implements the FBX property table: the "Properties70"
// node holding "P" entries attached to objects and to document-wide settings,
// and the typed loaders that convert a raw, dynamically-typed property value
// into a requested Go value.
//
// A property table can be backed by two nodes: the object's own (direct)
// properties and the default property template from the document's
// Definitions section. Direct entries shadow defaults. Absence of a property
// is a normal outcome (Get reports ok=false); loading a present value may
// still fail with a LoadError, and the two conditions are never conflated.
package property

import "github.com/Carmen-Shannon/fbx-go/tree"

// Properties is a read-only view over an object's property table. The zero
// value is an empty table.
type Properties struct {
	tree     *tree.Tree
	direct   tree.NodeID
	defaults tree.NodeID
}

// New creates a property table view.
//
// Parameters:
//   - t: the owning tree
//   - direct: the object's own "Properties70" node, or tree.InvalidNode
//   - defaults: the property template "Properties70" node, or tree.InvalidNode
//
// Returns:
//   - Properties: the table view
func New(t *tree.Tree, direct, defaults tree.NodeID) Properties {
	return Properties{tree: t, direct: direct, defaults: defaults}
}

// Get returns the property with the given name, looking at direct properties
// first and falling back to the default template. Within one node, the first
// entry with the name wins (malformed documents can repeat names). The second
// return value reports whether the property exists at all.
func (p Properties) Get(name string) (Handle, bool) {
	if h, ok := p.getIn(p.direct, name); ok {
		return h, true
	}
	return p.getIn(p.defaults, name)
}

// getIn finds the first "P" child of the given properties node with the
// given property name.
func (p Properties) getIn(propsNode tree.NodeID, name string) (Handle, bool) {
	if p.tree == nil || propsNode == tree.InvalidNode {
		return Handle{}, false
	}
	for _, c := range p.tree.ChildrenByName(propsNode, "P") {
		h := Handle{tree: p.tree, node: c}
		if h.Name() == name {
			return h, true
		}
	}
	return Handle{}, false
}

// Handles returns all properties visible through this table: every direct
// entry, plus every default entry whose name is not shadowed by a direct one.
// Order is direct entries first, each group in declaration order.
func (p Properties) Handles() []Handle {
	if p.tree == nil {
		return nil
	}
	var out []Handle
	seen := map[string]bool{}
	for _, propsNode := range []tree.NodeID{p.direct, p.defaults} {
		if propsNode == tree.InvalidNode {
			continue
		}
		for _, c := range p.tree.ChildrenByName(propsNode, "P") {
			h := Handle{tree: p.tree, node: c}
			name := h.Name()
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, h)
		}
	}
	return out
}
