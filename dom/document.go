// Package dom reconstructs the object graph of a parsed document: objects
// indexed by ID, directed labeled connections between them, property
// templates, and typed handles over well-known object classes.
package dom

import (
	"github.com/Carmen-Shannon/fbx-go/property"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// ObjectID is the document-unique 64-bit identity of an object.
type ObjectID int64

// Document is a read-only view over a parsed tree with the object and
// connection caches built. All object handles borrow from it.
type Document struct {
	tree        *tree.Tree
	objects     *objectsCache
	connections *connectionsCache
	definitions *definitionsCache
}

// FromTree builds a Document from a parsed tree.
//
// Parameters:
//   - t: the parsed low-level node tree.
//
// Returns:
//   - *Document: the constructed document.
//   - error: a StructuralError when the Objects or Connections sections are
//     malformed.
func FromTree(t *tree.Tree) (*Document, error) {
	objects, err := newObjectsCache(t)
	if err != nil {
		return nil, err
	}
	connections, err := newConnectionsCache(t)
	if err != nil {
		return nil, err
	}
	return &Document{
		tree:        t,
		objects:     objects,
		connections: connections,
		definitions: newDefinitionsCache(t),
	}, nil
}

// Tree returns the underlying node tree.
func (d *Document) Tree() *tree.Tree { return d.tree }

// Object looks up an object handle by ID.
//
// Parameters:
//   - id: the object ID to resolve.
//
// Returns:
//   - Object: the handle, valid only when found.
//   - bool: whether an object with that ID exists.
func (d *Document) Object(id ObjectID) (Object, bool) {
	node, ok := d.objects.byID[id]
	if !ok {
		return Object{}, false
	}
	return Object{doc: d, meta: d.objects.metaByNode[node]}, true
}

// Objects returns handles for every object in declaration order.
func (d *Document) Objects() []Object {
	out := make([]Object, 0, len(d.objects.order))
	for _, node := range d.objects.order {
		out = append(out, Object{doc: d, meta: d.objects.metaByNode[node]})
	}
	return out
}

// Connections returns every connection of the document in declaration order.
func (d *Document) Connections() []Connection {
	out := make([]Connection, len(d.connections.connections))
	copy(out, d.connections.connections)
	for i := range out {
		out[i].doc = d
	}
	return out
}

// RootModels returns the models sitting directly under the scene root, that
// is models whose unlabeled parent connection points at object ID 0.
func (d *Document) RootModels() []Model {
	var out []Model
	for _, idx := range d.connections.incoming(0) {
		conn := d.connections.connections[idx]
		if conn.hasLabel {
			continue
		}
		obj, ok := d.Object(conn.SourceID)
		if !ok {
			continue
		}
		if model, ok := Classify(obj).(Model); ok {
			out = append(out, model)
		}
	}
	return out
}

// GlobalSettings returns the document's global settings block.
//
// Returns:
//   - GlobalSettings: the settings handle, valid only when present.
//   - bool: whether the document carries a GlobalSettings node.
func (d *Document) GlobalSettings() (GlobalSettings, bool) {
	node, ok := d.tree.FirstChildByName(d.tree.Root(), "GlobalSettings")
	if !ok {
		return GlobalSettings{}, false
	}
	direct, ok := d.tree.FirstChildByName(node, "Properties70")
	if !ok {
		direct = tree.InvalidNode
	}
	defaults, ok := d.definitions.template("GlobalSettings")
	if !ok {
		defaults = tree.InvalidNode
	}
	return GlobalSettings{props: property.New(d.tree, direct, defaults)}, true
}
