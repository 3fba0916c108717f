package dom

import (
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// connectionKey identifies a connection for duplicate detection. Two edges
// with the same endpoints and the same (or equally absent) label are
// considered the same edge.
type connectionKey struct {
	src, dst ObjectID
	label    string
	hasLabel bool
}

// connectionsCache holds every connection of the document in declaration
// order, with per-endpoint indices for traversal in both directions.
type connectionsCache struct {
	// connections is the full edge list in declaration order.
	connections []Connection
	// bySource maps a source object ID to indices into connections.
	bySource map[ObjectID][]int
	// byDestination maps a destination object ID to indices into connections.
	byDestination map[ObjectID][]int
}

// newConnectionsCache scans the toplevel "Connections" node and builds the
// edge list. Duplicate edges (same source, destination and label) are
// silently dropped; the first declaration wins. A document without a
// Connections section yields an empty cache.
func newConnectionsCache(t *tree.Tree) (*connectionsCache, error) {
	cache := &connectionsCache{
		bySource:      make(map[ObjectID][]int),
		byDestination: make(map[ObjectID][]int),
	}
	connectionsNode, ok := t.FirstChildByName(t.Root(), "Connections")
	if !ok {
		return cache, nil
	}
	seen := make(map[connectionKey]struct{})
	for _, child := range t.Children(connectionsNode) {
		if t.Name(child) != "C" {
			continue
		}
		conn, err := parseConnection(t, child)
		if err != nil {
			return nil, err
		}
		label, hasLabel := conn.Label()
		key := connectionKey{src: conn.SourceID, dst: conn.DestinationID, label: label, hasLabel: hasLabel}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		conn.index = len(cache.connections)
		cache.connections = append(cache.connections, conn)
		cache.bySource[conn.SourceID] = append(cache.bySource[conn.SourceID], conn.index)
		cache.byDestination[conn.DestinationID] = append(cache.byDestination[conn.DestinationID], conn.index)
	}
	return cache, nil
}

// parseConnection decodes a single "C" node. The attribute layout is a type
// string, source ID, destination ID, and an optional label.
func parseConnection(t *tree.Tree, node tree.NodeID) (Connection, error) {
	const op = "load connections"
	typeAttr, ok := t.Attribute(node, 0)
	if !ok {
		return Connection{}, structuralErrf(op, node, 0, "connection node has no attributes")
	}
	types, ok := typeAttr.Text()
	if !ok {
		return Connection{}, structuralErrf(op, node, 0, "connection type is not a string")
	}
	var conn Connection
	// The first letter names the destination end, the second the source.
	switch types {
	case "OO":
		conn.SourceType, conn.DestinationType = NodeTypeObject, NodeTypeObject
	case "OP":
		conn.SourceType, conn.DestinationType = NodeTypeProperty, NodeTypeObject
	case "PO":
		conn.SourceType, conn.DestinationType = NodeTypeObject, NodeTypeProperty
	case "PP":
		conn.SourceType, conn.DestinationType = NodeTypeProperty, NodeTypeProperty
	default:
		return Connection{}, structuralErrf(op, node, 0, "unrecognized connection type %q", types)
	}
	srcAttr, ok := t.Attribute(node, 1)
	if !ok {
		return Connection{}, structuralErrf(op, node, 0, "connection has no source ID")
	}
	src, ok := srcAttr.Int64()
	if !ok {
		return Connection{}, structuralErrf(op, node, 0, "connection source ID is not an i64")
	}
	dstAttr, ok := t.Attribute(node, 2)
	if !ok {
		return Connection{}, structuralErrf(op, node, 0, "connection has no destination ID")
	}
	dst, ok := dstAttr.Int64()
	if !ok {
		return Connection{}, structuralErrf(op, node, 0, "connection destination ID is not an i64")
	}
	conn.SourceID = ObjectID(src)
	conn.DestinationID = ObjectID(dst)
	if labelAttr, ok := t.Attribute(node, 3); ok {
		label, ok := labelAttr.Text()
		if !ok {
			return Connection{}, structuralErrf(op, node, 0, "connection label is not a string")
		}
		conn.label = label
		conn.hasLabel = true
	}
	return conn, nil
}

// outgoing returns the indices of connections whose source is id, in
// declaration order.
func (c *connectionsCache) outgoing(id ObjectID) []int { return c.bySource[id] }

// incoming returns the indices of connections whose destination is id, in
// declaration order.
func (c *connectionsCache) incoming(id ObjectID) []int { return c.byDestination[id] }
