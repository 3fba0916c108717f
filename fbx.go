// Package fbx loads binary FBX documents into a navigable object graph.
//
// The subpackages split the work into layers: tree parses the raw node
// structure, dom rebuilds the object and connection graph on top of it,
// property decodes the dynamically-typed property tables, and mesh decodes
// polygon geometry and its layered attributes. This package ties the layers
// together for the common whole-file case.
package fbx

import (
	"io"

	"github.com/Carmen-Shannon/fbx-go/dom"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// Load reads and parses the binary FBX file at path and builds its document
// graph.
//
// Parameters:
//   - path: filesystem path of the .fbx file.
//
// Returns:
//   - *dom.Document: the loaded document.
//   - error: a parse error from the tree layer or a *dom.StructuralError
//     from graph construction.
func Load(path string) (*dom.Document, error) {
	t, err := tree.Load(path)
	if err != nil {
		return nil, err
	}
	return dom.FromTree(t)
}

// Parse reads a binary FBX document from r and builds its document graph.
func Parse(r io.Reader) (*dom.Document, error) {
	t, err := tree.Parse(r)
	if err != nil {
		return nil, err
	}
	return dom.FromTree(t)
}

// ParseBytes parses an in-memory binary FBX document and builds its document
// graph.
func ParseBytes(data []byte) (*dom.Document, error) {
	t, err := tree.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return dom.FromTree(t)
}
