// package mesh decodes polygonal mesh data stored under a "Geometry" node:
// control points, polygon-vertex indices with sign-encoded polygon
// terminators, triangulation, and layer elements (normals, UVs, material
// indices, colors) resolved through the format's mapping-mode /
// reference-mode indirection scheme.
//
// All types here are read-only views over the owning tree. Buffers are the
// tree's own attribute arrays except where triangulation flattens its output.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/common"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// Common errors returned by the mesh decoder.
var (
	errControlPointsRagged = errors.New("control point array length is not a multiple of 3")
	errIncompletePolygon   = errors.New("polygon vertex indices end without a polygon terminator")
	errNoEdges             = errors.New("geometry has no Edges array")
)

// PolygonVertex is one entry of the polygon-vertex index buffer. Its
// magnitude indexes the control-point array; a negative value additionally
// terminates the current polygon, and the real index is recovered by bitwise
// NOT.
type PolygonVertex int32

// IsEnd reports whether this entry terminates its polygon.
func (pv PolygonVertex) IsEnd() bool { return pv < 0 }

// ControlPointIndex returns the control-point index this entry refers to,
// undoing the terminator encoding when present.
func (pv PolygonVertex) ControlPointIndex() int32 {
	if pv < 0 {
		return int32(^pv)
	}
	return int32(pv)
}

// Mesh is a read-only view of the polygonal mesh data under one geometry
// node.
type Mesh struct {
	tree *tree.Tree
	node tree.NodeID

	// controlPoints is the raw xyz-triplet array from the Vertices node.
	controlPoints []float64
	// polygonVertexIndices is the raw index buffer from PolygonVertexIndex.
	polygonVertexIndices []int32

	// edgeForPVI maps a polygon-vertex position to its edge index, built once
	// in New from the optional Edges array for ByEdge layer resolution. Nil
	// when the geometry carries no Edges node.
	edgeForPVI map[int]int
}

// New creates a mesh view over the given geometry node.
//
// Parameters:
//   - t: the owning tree
//   - geometryNode: the "Geometry" object node holding the mesh data
//
// Returns:
//   - *Mesh: the mesh view
//   - error: error if the vertex data present on the node is malformed
func New(t *tree.Tree, geometryNode tree.NodeID) (*Mesh, error) {
	m := &Mesh{tree: t, node: geometryNode}

	if vtx, ok := t.FirstChildByName(geometryNode, "Vertices"); ok {
		if a, ok := t.Attribute(vtx, 0); ok {
			arr, ok := a.Float64Slice()
			if !ok {
				return nil, fmt.Errorf("Vertices attribute: expected []float64 but got %s", a.Type())
			}
			if len(arr)%3 != 0 {
				return nil, fmt.Errorf("%w (length %d)", errControlPointsRagged, len(arr))
			}
			m.controlPoints = arr
		}
	}

	if pvi, ok := t.FirstChildByName(geometryNode, "PolygonVertexIndex"); ok {
		if a, ok := t.Attribute(pvi, 0); ok {
			arr, ok := a.Int32Slice()
			if !ok {
				return nil, fmt.Errorf("PolygonVertexIndex attribute: expected []int32 but got %s", a.Type())
			}
			m.polygonVertexIndices = arr
		}
	}

	if edges, ok := t.FirstChildByName(geometryNode, "Edges"); ok {
		if a, ok := t.Attribute(edges, 0); ok {
			arr, ok := a.Int32Slice()
			if !ok {
				return nil, fmt.Errorf("Edges attribute: expected []int32 but got %s", a.Type())
			}
			m.edgeForPVI = make(map[int]int, len(arr))
			for edgeIndex, pv := range arr {
				m.edgeForPVI[int(pv)] = edgeIndex
			}
		}
	}

	return m, nil
}

// Node returns the geometry node this mesh was created from.
func (m *Mesh) Node() tree.NodeID { return m.node }

// Tree returns the owning tree.
func (m *Mesh) Tree() *tree.Tree { return m.tree }

// ControlPointCount returns the number of control points.
func (m *Mesh) ControlPointCount() int { return len(m.controlPoints) / 3 }

// ControlPoint returns the control point at index i.
func (m *Mesh) ControlPoint(i int) (common.Vector3, error) {
	if i < 0 || i >= m.ControlPointCount() {
		return common.Vector3{}, indexErr("control point", i, m.ControlPointCount())
	}
	return common.Vector3{
		X: m.controlPoints[i*3],
		Y: m.controlPoints[i*3+1],
		Z: m.controlPoints[i*3+2],
	}, nil
}

// ControlPoints returns all control points as a freshly allocated slice.
func (m *Mesh) ControlPoints() []common.Vector3 {
	out := make([]common.Vector3, m.ControlPointCount())
	for i := range out {
		out[i], _ = m.ControlPoint(i)
	}
	return out
}

// PolygonVertexIndices returns the raw polygon-vertex index buffer, including
// the sign-encoded terminators. The slice is owned by the tree.
func (m *Mesh) PolygonVertexIndices() []int32 { return m.polygonVertexIndices }

// PolygonVertexAt returns the polygon-vertex entry at buffer position pvi.
func (m *Mesh) PolygonVertexAt(pvi int) (PolygonVertex, bool) {
	if pvi < 0 || pvi >= len(m.polygonVertexIndices) {
		return 0, false
	}
	return PolygonVertex(m.polygonVertexIndices[pvi]), true
}

// ControlPointAt returns the control point referenced from buffer position
// pvi.
func (m *Mesh) ControlPointAt(pvi int) (common.Vector3, error) {
	pv, ok := m.PolygonVertexAt(pvi)
	if !ok {
		return common.Vector3{}, indexErr("polygon vertex", pvi, len(m.polygonVertexIndices))
	}
	return m.ControlPoint(int(pv.ControlPointIndex()))
}

// Polygon is one reconstructed polygon: a contiguous run of the
// polygon-vertex index buffer ending at a terminator entry.
type Polygon struct {
	// Index is the polygon's ordinal position in the mesh.
	Index int
	// Offset is the buffer position of the polygon's first vertex.
	Offset int
	// ControlPointIndices are the polygon's control-point indices in order,
	// terminator encoding already undone.
	ControlPointIndices []int32
}

// VertexCount returns the number of polygon corners.
func (p Polygon) VertexCount() int { return len(p.ControlPointIndices) }

// Degenerate reports whether the polygon has fewer than 3 vertices. Such
// polygons are representable and flagged rather than dropped; triangulating
// one yields zero triangles.
func (p Polygon) Degenerate() bool { return len(p.ControlPointIndices) < 3 }

// PolygonVertexIndexAt returns the buffer position of the polygon's i-th
// corner.
func (p Polygon) PolygonVertexIndexAt(i int) int { return p.Offset + i }

// Polygons reconstructs the polygon list by scanning the index buffer left to
// right. Each non-terminator entry contributes a control-point index to the
// current polygon; a terminator contributes its recovered index and closes
// the polygon. Trailing entries without a terminator are a decode error.
func (m *Mesh) Polygons() ([]Polygon, error) {
	var out []Polygon
	start := 0
	for i, raw := range m.polygonVertexIndices {
		pv := PolygonVertex(raw)
		if !pv.IsEnd() {
			continue
		}
		poly := Polygon{
			Index:               len(out),
			Offset:              start,
			ControlPointIndices: make([]int32, 0, i-start+1),
		}
		for _, v := range m.polygonVertexIndices[start : i+1] {
			poly.ControlPointIndices = append(poly.ControlPointIndices, PolygonVertex(v).ControlPointIndex())
		}
		out = append(out, poly)
		start = i + 1
	}
	if start != len(m.polygonVertexIndices) {
		return nil, fmt.Errorf("%w (trailing entries at position %d)", errIncompletePolygon, start)
	}
	return out, nil
}

// edgeIndexForPVI returns the edge index owning the given polygon-vertex
// position, resolving through the geometry's optional Edges array.
func (m *Mesh) edgeIndexForPVI(pvi int) (int, error) {
	if m.edgeForPVI == nil {
		return 0, errNoEdges
	}
	edge, ok := m.edgeForPVI[pvi]
	if !ok {
		return 0, indexErr("edge for polygon vertex", pvi, len(m.edgeForPVI))
	}
	return edge, nil
}
