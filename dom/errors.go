package dom

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/tree"
)

// StructuralError is a fatal document-construction failure: a malformed
// connection record, an object node missing required attributes, or similar.
// It carries enough context to locate the offending input.
type StructuralError struct {
	// Op names the construction step that failed, e.g. "load connections".
	Op string
	// Node is the offending tree node, or tree.InvalidNode.
	Node tree.NodeID
	// ObjectID is the offending object, or 0 when not applicable.
	ObjectID ObjectID
	// Msg describes the failure.
	Msg string
}

func (e *StructuralError) Error() string {
	s := fmt.Sprintf("%s: %s", e.Op, e.Msg)
	if e.Node != tree.InvalidNode {
		s += fmt.Sprintf(" (node %d)", e.Node)
	}
	if e.ObjectID != 0 {
		s += fmt.Sprintf(" (object %d)", e.ObjectID)
	}
	return s
}

// structuralErrf builds a StructuralError with formatted detail.
func structuralErrf(op string, node tree.NodeID, id ObjectID, format string, args ...any) error {
	return &StructuralError{Op: op, Node: node, ObjectID: id, Msg: fmt.Sprintf(format, args...)}
}
