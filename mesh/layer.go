package mesh

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/fbx-go/property"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// MappingMode selects which index is used to look up a layer element's data
// for a given polygon corner.
type MappingMode int

const (
	// MappingNone is the zero value for an undetermined mapping mode.
	MappingNone MappingMode = iota
	// MappingByControlPoint maps one value per control point.
	MappingByControlPoint
	// MappingByPolygonVertex maps one value per polygon corner.
	MappingByPolygonVertex
	// MappingByPolygon maps one value per polygon.
	MappingByPolygon
	// MappingByEdge maps one value per edge.
	MappingByEdge
	// MappingAllSame maps a single value for the whole mesh.
	MappingAllSame
)

// String returns the canonical format token for the mapping mode.
func (m MappingMode) String() string {
	switch m {
	case MappingByControlPoint:
		return "ByControlPoint"
	case MappingByPolygonVertex:
		return "ByPolygonVertex"
	case MappingByPolygon:
		return "ByPolygon"
	case MappingByEdge:
		return "ByEdge"
	case MappingAllSame:
		return "AllSame"
	default:
		return "None"
	}
}

// ParseMappingMode parses a MappingInformationType token. The table is fixed
// and total; an unrecognized token is a load error, never a silent default.
// "ByVertex" and "ByVertice" are historical spellings of "ByControlPoint".
func ParseMappingMode(s string) (MappingMode, error) {
	switch s {
	case "ByControlPoint", "ByVertex", "ByVertice":
		return MappingByControlPoint, nil
	case "ByPolygonVertex":
		return MappingByPolygonVertex, nil
	case "ByPolygon":
		return MappingByPolygon, nil
	case "ByEdge":
		return MappingByEdge, nil
	case "AllSame":
		return MappingAllSame, nil
	default:
		return MappingNone, property.NewLoadError(property.UnrecognizedVariant,
			"MappingMode", fmt.Sprintf("got %q", s))
	}
}

// ReferenceMode selects whether layer data is indexed directly by the
// mapping-mode-selected index, or through an extra indirection array.
type ReferenceMode int

const (
	// ReferenceDirect stores values directly at the selected index.
	ReferenceDirect ReferenceMode = iota
	// ReferenceIndexToDirect routes the selected index through an index
	// array before reaching the value array.
	ReferenceIndexToDirect
)

// String returns the canonical format token for the reference mode.
func (r ReferenceMode) String() string {
	if r == ReferenceIndexToDirect {
		return "IndexToDirect"
	}
	return "Direct"
}

// ParseReferenceMode parses a ReferenceInformationType token.
func ParseReferenceMode(s string) (ReferenceMode, error) {
	switch s {
	case "Direct":
		return ReferenceDirect, nil
	case "IndexToDirect":
		return ReferenceIndexToDirect, nil
	default:
		return ReferenceDirect, property.NewLoadError(property.UnrecognizedVariant,
			"ReferenceMode", fmt.Sprintf("got %q", s))
	}
}

// LayerElement is the generic handle over one "LayerElement*" node under a
// geometry node. Typed views (Normals, UV, Materials, Colors) are layered on
// top of it.
type LayerElement struct {
	mesh *Mesh
	node tree.NodeID
}

// LayerElements returns all layer element nodes of the geometry (every child
// whose name starts with "LayerElement"), in declaration order.
func (m *Mesh) LayerElements() []LayerElement {
	var out []LayerElement
	for _, c := range m.tree.Children(m.node) {
		if strings.HasPrefix(m.tree.Name(c), "LayerElement") {
			out = append(out, LayerElement{mesh: m, node: c})
		}
	}
	return out
}

// Node returns the underlying tree node.
func (e LayerElement) Node() tree.NodeID { return e.node }

// TypeName returns the layer element node name, e.g. "LayerElementNormal".
func (e LayerElement) TypeName() string { return e.mesh.tree.Name(e.node) }

// TypedIndex returns the element's index among elements of the same type
// (the node's first attribute).
func (e LayerElement) TypedIndex() (int32, error) {
	a, ok := e.mesh.tree.Attribute(e.node, 0)
	if !ok {
		return 0, fmt.Errorf("%s: no typed index attribute", e.TypeName())
	}
	v, ok := a.Int32()
	if !ok {
		return 0, fmt.Errorf("%s: expected int32 typed index but got %s", e.TypeName(), a.Type())
	}
	if v < 0 {
		return 0, fmt.Errorf("%s: negative typed index %d", e.TypeName(), v)
	}
	return v, nil
}

// childString returns the single string attribute of the named child node.
func (e LayerElement) childString(name string) (string, error) {
	c, ok := e.mesh.tree.FirstChildByName(e.node, name)
	if !ok {
		return "", fmt.Errorf("%s: child node %q not found", e.TypeName(), name)
	}
	a, ok := e.mesh.tree.Attribute(c, 0)
	if !ok {
		return "", fmt.Errorf("%s: child node %q has no attributes", e.TypeName(), name)
	}
	s, ok := a.Text()
	if !ok {
		return "", fmt.Errorf("%s: child node %q: expected string but got %s", e.TypeName(), name, a.Type())
	}
	return s, nil
}

// Name returns the layer element's name (the "Name" child), which may be
// empty.
func (e LayerElement) Name() string {
	s, _ := e.childString("Name")
	return s
}

// MappingMode returns the element's parsed mapping mode.
func (e LayerElement) MappingMode() (MappingMode, error) {
	s, err := e.childString("MappingInformationType")
	if err != nil {
		return MappingNone, err
	}
	return ParseMappingMode(s)
}

// ReferenceMode returns the element's parsed reference mode.
func (e LayerElement) ReferenceMode() (ReferenceMode, error) {
	s, err := e.childString("ReferenceInformationType")
	if err != nil {
		return ReferenceDirect, err
	}
	return ParseReferenceMode(s)
}

// float64Array returns the []float64 attribute of the named child node, or
// (nil, false, nil) when the child is absent.
func (e LayerElement) float64Array(name string) ([]float64, bool, error) {
	c, ok := e.mesh.tree.FirstChildByName(e.node, name)
	if !ok {
		return nil, false, nil
	}
	a, ok := e.mesh.tree.Attribute(c, 0)
	if !ok {
		return nil, false, fmt.Errorf("%s: child node %q has no attributes", e.TypeName(), name)
	}
	arr, ok := a.Float64Slice()
	if !ok {
		return nil, false, fmt.Errorf("%s: child node %q: expected []float64 but got %s", e.TypeName(), name, a.Type())
	}
	return arr, true, nil
}

// int32Array returns the []int32 attribute of the named child node, or
// (nil, false, nil) when the child is absent.
func (e LayerElement) int32Array(name string) ([]int32, bool, error) {
	c, ok := e.mesh.tree.FirstChildByName(e.node, name)
	if !ok {
		return nil, false, nil
	}
	a, ok := e.mesh.tree.Attribute(c, 0)
	if !ok {
		return nil, false, fmt.Errorf("%s: child node %q has no attributes", e.TypeName(), name)
	}
	arr, ok := a.Int32Slice()
	if !ok {
		return nil, false, fmt.Errorf("%s: child node %q: expected []int32 but got %s", e.TypeName(), name, a.Type())
	}
	return arr, true, nil
}

// boolArray returns the []bool attribute of the named child node, or
// (nil, false, nil) when the child is absent.
func (e LayerElement) boolArray(name string) ([]bool, bool, error) {
	c, ok := e.mesh.tree.FirstChildByName(e.node, name)
	if !ok {
		return nil, false, nil
	}
	a, ok := e.mesh.tree.Attribute(c, 0)
	if !ok {
		return nil, false, fmt.Errorf("%s: child node %q has no attributes", e.TypeName(), name)
	}
	arr, ok := a.BoolSlice()
	if !ok {
		return nil, false, fmt.Errorf("%s: child node %q: expected []bool but got %s", e.TypeName(), name, a.Type())
	}
	return arr, true, nil
}

// resolveContentIndex turns a triangle vertex into an index of the layer's
// value array.
//
// Step 1 selects the raw index k by mapping mode: the polygon-vertex position
// itself for ByPolygonVertex, the owning polygon for ByPolygon, the control
// point for ByControlPoint, the owning edge for ByEdge, and 0 for AllSame.
// Step 2 applies the reference mode: Direct uses k as-is, IndexToDirect
// routes k through the index array, bounds-checking both the index array
// access and the resolved value index. Out-of-range indices are recoverable
// IndexErrors.
func resolveContentIndex(
	mapping MappingMode,
	indexArray []int32, // nil for ReferenceDirect
	valueCount int,
	tris *Triangles,
	tvi int,
) (int, error) {
	pvi, ok := tris.PolygonVertexIndex(tvi)
	if !ok {
		return 0, indexErr("triangle vertex", tvi, tris.VertexCount())
	}

	var k int
	switch mapping {
	case MappingByControlPoint:
		cpi, err := tris.ControlPointIndex(tvi)
		if err != nil {
			return 0, err
		}
		k = int(cpi)
	case MappingByPolygonVertex:
		k = pvi
	case MappingByPolygon:
		poly, ok := tris.PolygonIndex(tvi / 3)
		if !ok {
			return 0, indexErr("triangle", tvi/3, tris.TriangleCount())
		}
		k = poly
	case MappingByEdge:
		edge, err := tris.Mesh().edgeIndexForPVI(pvi)
		if err != nil {
			return 0, err
		}
		k = edge
	case MappingAllSame:
		k = 0
	default:
		return 0, fmt.Errorf("cannot resolve layer data for mapping mode %s", mapping)
	}

	if indexArray != nil {
		if k < 0 || k >= len(indexArray) {
			return 0, indexErr("layer index array", k, len(indexArray))
		}
		k = int(indexArray[k])
	}
	if k < 0 || k >= valueCount {
		return 0, indexErr("layer value", k, valueCount)
	}
	return k, nil
}
