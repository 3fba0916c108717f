package dom

import (
	"github.com/Carmen-Shannon/fbx-go/property"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// Object is a lightweight handle to one object of the document. Handles are
// values; copying one is free and all copies read the same document.
type Object struct {
	doc  *Document
	meta *objectMeta
}

// ID returns the object's document-unique ID.
func (o Object) ID() ObjectID { return o.meta.id }

// Name returns the object's display name, possibly empty.
func (o Object) Name() string { return o.meta.name }

// Class returns the object's class string, e.g. "Model".
func (o Object) Class() string { return o.meta.class }

// Subclass returns the object's subclass string, e.g. "Mesh".
func (o Object) Subclass() string { return o.meta.subclass }

// Node returns the backing tree node.
func (o Object) Node() tree.NodeID { return o.meta.node }

// Document returns the owning document.
func (o Object) Document() *Document { return o.doc }

// Properties returns the object's property table: its own Properties70 node
// with the class property template from Definitions as defaults.
func (o Object) Properties() property.Properties {
	direct, ok := o.doc.tree.FirstChildByName(o.meta.node, "Properties70")
	if !ok {
		direct = tree.InvalidNode
	}
	defaults, ok := o.doc.definitions.template(o.meta.class)
	if !ok {
		defaults = tree.InvalidNode
	}
	return property.New(o.doc.tree, direct, defaults)
}

// OutgoingConnections returns the connections whose source is this object,
// in declaration order. Destinations of these edges are the object's parents.
func (o Object) OutgoingConnections() []Connection {
	return o.doc.connectionSlice(o.doc.connections.outgoing(o.meta.id))
}

// IncomingConnections returns the connections whose destination is this
// object, in declaration order. Sources of these edges are the object's
// children.
func (o Object) IncomingConnections() []Connection {
	return o.doc.connectionSlice(o.doc.connections.incoming(o.meta.id))
}

// connectionSlice materializes connection values for the given cache indices.
func (d *Document) connectionSlice(indices []int) []Connection {
	out := make([]Connection, 0, len(indices))
	for _, i := range indices {
		conn := d.connections.connections[i]
		conn.doc = d
		out = append(out, conn)
	}
	return out
}

// Children returns the objects connected into this one, in connection
// declaration order. Edges whose source ID resolves to no object are skipped.
func (o Object) Children() []Object {
	return o.resolve(o.doc.connections.incoming(o.meta.id), pickSource, nil)
}

// ChildrenByLabel returns the children connected with the given label.
func (o Object) ChildrenByLabel(label string) []Object {
	return o.resolve(o.doc.connections.incoming(o.meta.id), pickSource, &label)
}

// UnlabeledChildren returns the children connected without a label.
func (o Object) UnlabeledChildren() []Object {
	empty := ""
	out := o.resolve(o.doc.connections.incoming(o.meta.id), pickSource, &empty)
	return out
}

// Parents returns the objects this one is connected into, in connection
// declaration order. Edges whose destination ID resolves to no object are
// skipped.
func (o Object) Parents() []Object {
	return o.resolve(o.doc.connections.outgoing(o.meta.id), pickDestination, nil)
}

// ParentsByLabel returns the parents connected with the given label.
func (o Object) ParentsByLabel(label string) []Object {
	return o.resolve(o.doc.connections.outgoing(o.meta.id), pickDestination, &label)
}

// UnlabeledParents returns the parents connected without a label.
func (o Object) UnlabeledParents() []Object {
	empty := ""
	return o.resolve(o.doc.connections.outgoing(o.meta.id), pickDestination, &empty)
}

// endpointPicker selects one end of a connection.
type endpointPicker func(Connection) ObjectID

func pickSource(c Connection) ObjectID      { return c.SourceID }
func pickDestination(c Connection) ObjectID { return c.DestinationID }

// resolve walks the given connection indices and returns handles for the
// picked endpoint of each matching edge. With label == nil every edge
// matches; with a non-nil empty label only unlabeled edges match; otherwise
// only edges carrying exactly that label match. Dangling endpoints are
// silently skipped.
func (o Object) resolve(indices []int, pick endpointPicker, label *string) []Object {
	var out []Object
	for _, i := range indices {
		conn := o.doc.connections.connections[i]
		if label != nil {
			if *label == "" {
				if conn.hasLabel {
					continue
				}
			} else if !conn.hasLabel || conn.label != *label {
				continue
			}
		}
		obj, ok := o.doc.Object(pick(conn))
		if !ok {
			continue
		}
		out = append(out, obj)
	}
	return out
}
