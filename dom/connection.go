package dom

// ConnectedNodeType tells whether a connection endpoint is an object or one
// of its properties. The wire encoding uses two-letter type strings: the
// first letter is the destination end, the second the source end, with "O"
// for object and "P" for property.
type ConnectedNodeType int

const (
	// NodeTypeObject is an object endpoint.
	NodeTypeObject ConnectedNodeType = iota
	// NodeTypeProperty is a property endpoint.
	NodeTypeProperty
)

// String returns the endpoint type name.
func (t ConnectedNodeType) String() string {
	if t == NodeTypeProperty {
		return "Property"
	}
	return "Object"
}

// Connection is a single directed edge of the object graph, read from one
// "C" node of the document's Connections section.
type Connection struct {
	// SourceID is the object ID of the source (child) end.
	SourceID ObjectID
	// DestinationID is the object ID of the destination (parent) end.
	DestinationID ObjectID
	// SourceType tells whether the source end is an object or a property.
	SourceType ConnectedNodeType
	// DestinationType tells whether the destination end is an object or a
	// property.
	DestinationType ConnectedNodeType
	// label is the optional connection label, e.g. a material channel name.
	label string
	// hasLabel distinguishes an absent label from an empty one.
	hasLabel bool
	// index is the declaration order of this connection within the document.
	index int
	// doc is set when the connection is handed out by a Document, enabling
	// endpoint resolution. The zero value resolves nothing.
	doc *Document
}

// Label returns the connection label and whether one is present.
func (c Connection) Label() (string, bool) {
	return c.label, c.hasLabel
}

// HasLabel reports whether the connection carries a label.
func (c Connection) HasLabel() bool { return c.hasLabel }

// Index returns the zero-based declaration order of this connection.
func (c Connection) Index() int { return c.index }

// Source resolves the source endpoint to an object handle.
//
// Returns:
//   - Object: the source object, valid only when found.
//   - bool: whether the source ID resolves to an object. A dangling endpoint
//     is absent, never an error.
func (c Connection) Source() (Object, bool) {
	if c.doc == nil {
		return Object{}, false
	}
	return c.doc.Object(c.SourceID)
}

// Destination resolves the destination endpoint to an object handle.
func (c Connection) Destination() (Object, bool) {
	if c.doc == nil {
		return Object{}, false
	}
	return c.doc.Object(c.DestinationID)
}
