// package tree implements the low-level FBX node tree: a flat, immutable
// store of named nodes, each with ordered typed attributes and ordered
// children. Everything above this package (the DOM, property and mesh layers)
// is a read-only projection over a Tree; nothing here is mutated after
// construction, so a Tree may be shared freely between goroutines.
package tree

import "fmt"

// Version is the FBX format version a tree was tagged with at construction.
// Higher layers only rely on the tree-shaped abstraction, so new versions can
// be added without touching the graph, property or mesh algorithms.
type Version int

const (
	// Version7400 covers FBX 7.4 documents.
	Version7400 Version = 7400
	// Version7500 covers FBX 7.5 documents (64-bit node record offsets).
	Version7500 Version = 7500
)

// NodeID is an opaque, stable, copyable handle to a node within a Tree. It is
// valid for the lifetime of the owning tree and is not a pointer.
type NodeID int32

// InvalidNode is the NodeID returned by lookups that find nothing.
const InvalidNode NodeID = -1

// Node describes a node when building a Tree by hand: a name, raw attribute
// values and nested children. It is consumed by New and discarded; the built
// Tree stores nodes in its own flat form.
type Node struct {
	// Name is the node name, e.g. "Objects" or "C".
	Name string
	// Attrs are the raw attribute values, each a supported primitive or
	// primitive slice (see Attribute).
	Attrs []any
	// Children are the nested child nodes, in declaration order.
	Children []Node
}

// nodeData is the internal flat representation of a single node.
type nodeData struct {
	name     string
	attrs    []Attribute
	parent   NodeID
	children []NodeID
}

// Tree is an immutable FBX node tree. The root node is synthetic (empty name,
// no attributes); top-level document nodes such as "Objects" and
// "Connections" are its children.
type Tree struct {
	version Version
	nodes   []nodeData
}

// New builds a Tree from the given top-level nodes.
//
// Parameters:
//   - version: the format version tag for the tree
//   - nodes: the top-level document nodes, in declaration order
//
// Returns:
//   - *Tree: the built tree
//   - error: error if any attribute value has an unsupported type
func New(version Version, nodes []Node) (*Tree, error) {
	t := &Tree{
		version: version,
		nodes:   []nodeData{{name: "", parent: InvalidNode}},
	}
	for i := range nodes {
		if _, err := t.append(0, &nodes[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// append flattens one node spec (and its subtree) into the store.
func (t *Tree) append(parent NodeID, spec *Node) (NodeID, error) {
	attrs := make([]Attribute, 0, len(spec.Attrs))
	for _, raw := range spec.Attrs {
		a, err := newAttribute(raw)
		if err != nil {
			return InvalidNode, fmt.Errorf("node %q: %w", spec.Name, err)
		}
		attrs = append(attrs, a)
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, nodeData{name: spec.Name, attrs: attrs, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)

	for i := range spec.Children {
		if _, err := t.append(id, &spec.Children[i]); err != nil {
			return InvalidNode, err
		}
	}
	return id, nil
}

// Version returns the format version the tree was tagged with.
func (t *Tree) Version() Version { return t.version }

// Root returns the synthetic root node ID.
func (t *Tree) Root() NodeID { return 0 }

// valid reports whether id refers to a node in this tree.
func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Name returns the name of the given node, or "" for an invalid ID.
func (t *Tree) Name(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].name
}

// Parent returns the parent of the given node, or InvalidNode for the root
// or an invalid ID.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return InvalidNode
	}
	return t.nodes[id].parent
}

// Children returns the ordered child node IDs of the given node. The returned
// slice is owned by the tree and must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// ChildrenByName returns the ordered children of the given node whose name
// matches.
func (t *Tree) ChildrenByName(id NodeID, name string) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.nodes[c].name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildByName returns the first child of the given node whose name
// matches, or (InvalidNode, false) if there is none.
func (t *Tree) FirstChildByName(id NodeID, name string) (NodeID, bool) {
	for _, c := range t.Children(id) {
		if t.nodes[c].name == name {
			return c, true
		}
	}
	return InvalidNode, false
}

// Attributes returns the ordered attributes of the given node. The returned
// slice is owned by the tree and must not be modified.
func (t *Tree) Attributes(id NodeID) []Attribute {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].attrs
}

// Attribute returns the attribute at position i of the given node.
func (t *Tree) Attribute(id NodeID, i int) (Attribute, bool) {
	attrs := t.Attributes(id)
	if i < 0 || i >= len(attrs) {
		return Attribute{}, false
	}
	return attrs[i], true
}
