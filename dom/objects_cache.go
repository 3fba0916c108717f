package dom

import (
	"strings"

	"github.com/Carmen-Shannon/fbx-go/tree"
)

// nameClassSeparator splits the combined "name\x00\x01class" attribute of an
// object node. A string without the separator carries no name and an empty
// class.
const nameClassSeparator = "\x00\x01"

// objectMeta is the decoded identity of one object node.
type objectMeta struct {
	// id is the object's document-unique ID.
	id ObjectID
	// name is the object's display name, possibly empty.
	name string
	// class is the object's class string, e.g. "Model" or "Geometry".
	class string
	// subclass is the object's subclass string, e.g. "Mesh".
	subclass string
	// node is the backing tree node.
	node tree.NodeID
}

// objectsCache indexes every object node of the document by ID.
type objectsCache struct {
	// byID maps an object ID to its tree node. When the input declares the
	// same ID twice the first declaration wins.
	byID map[ObjectID]tree.NodeID
	// metaByNode maps a tree node to its decoded identity.
	metaByNode map[tree.NodeID]*objectMeta
	// order lists the object nodes in declaration order, duplicates dropped.
	order []tree.NodeID
}

// newObjectsCache scans the toplevel "Objects" node and decodes every object
// entry. A document without an Objects section yields an empty cache.
func newObjectsCache(t *tree.Tree) (*objectsCache, error) {
	cache := &objectsCache{
		byID:       make(map[ObjectID]tree.NodeID),
		metaByNode: make(map[tree.NodeID]*objectMeta),
	}
	objectsNode, ok := t.FirstChildByName(t.Root(), "Objects")
	if !ok {
		return cache, nil
	}
	for _, child := range t.Children(objectsNode) {
		meta, err := parseObjectMeta(t, child)
		if err != nil {
			return nil, err
		}
		if _, dup := cache.byID[meta.id]; dup {
			continue
		}
		cache.byID[meta.id] = child
		cache.metaByNode[child] = meta
		cache.order = append(cache.order, child)
	}
	return cache, nil
}

// parseObjectMeta decodes the identity attributes of one object node: an i64
// ID, the combined name/class string and the subclass string.
func parseObjectMeta(t *tree.Tree, node tree.NodeID) (*objectMeta, error) {
	const op = "load objects"
	idAttr, ok := t.Attribute(node, 0)
	if !ok {
		return nil, structuralErrf(op, node, 0, "object node %q has no attributes", t.Name(node))
	}
	id, ok := idAttr.Int64()
	if !ok {
		return nil, structuralErrf(op, node, 0, "object ID is not an i64")
	}
	nameClassAttr, ok := t.Attribute(node, 1)
	if !ok {
		return nil, structuralErrf(op, node, ObjectID(id), "object node has no name/class attribute")
	}
	nameClass, ok := nameClassAttr.Text()
	if !ok {
		return nil, structuralErrf(op, node, ObjectID(id), "object name/class is not a string")
	}
	subclassAttr, ok := t.Attribute(node, 2)
	if !ok {
		return nil, structuralErrf(op, node, ObjectID(id), "object node has no subclass attribute")
	}
	subclass, ok := subclassAttr.Text()
	if !ok {
		return nil, structuralErrf(op, node, ObjectID(id), "object subclass is not a string")
	}
	meta := &objectMeta{id: ObjectID(id), subclass: subclass, node: node}
	if sep := strings.Index(nameClass, nameClassSeparator); sep >= 0 {
		meta.name = nameClass[:sep]
		meta.class = nameClass[sep+len(nameClassSeparator):]
	}
	return meta, nil
}
