package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/common"
)

// Triangulator turns one reconstructed polygon into triangles. Each output
// triangle is a triple of positions into the mesh's polygon-vertex index
// buffer (not control-point indices), so per-polygon-vertex layer data stays
// attachable to the triangulated output.
//
// The strategy is pluggable: the format does not prescribe how non-convex
// polygons are split, so callers can supply their own implementation.
// Returning no triangles for a degenerate polygon is expected, not an error.
type Triangulator func(m *Mesh, poly Polygon) ([][3]int, error)

// FanTriangulate is the default Triangulator. It splits a polygon into a
// triangle fan anchored at its first corner, which is exact for convex
// polygons. Polygons with fewer than 3 vertices yield zero triangles.
func FanTriangulate(_ *Mesh, poly Polygon) ([][3]int, error) {
	n := poly.VertexCount()
	if n < 3 {
		return nil, nil
	}
	out := make([][3]int, 0, n-2)
	for i := 1; i+1 < n; i++ {
		out = append(out, [3]int{
			poly.PolygonVertexIndexAt(0),
			poly.PolygonVertexIndexAt(i),
			poly.PolygonVertexIndexAt(i + 1),
		})
	}
	return out, nil
}

// Triangles is the flattened result of triangulating a mesh. It maps every
// triangle vertex back to its polygon-vertex position and every triangle back
// to its source polygon, so layer elements under any mapping mode remain
// resolvable. Access is positional and restartable; no cursor state is held.
type Triangles struct {
	mesh *Mesh
	// pvIndices holds, per triangle vertex, the polygon-vertex position it
	// came from. Length is 3 * TriangleCount.
	pvIndices []int
	// polyIndices holds, per triangle, the source polygon index.
	polyIndices []int
}

// TriangulateEach reconstructs the mesh's polygons and triangulates each with
// the given strategy (FanTriangulate when nil).
//
// Parameters:
//   - triangulator: the per-polygon splitting strategy, or nil for the default
//
// Returns:
//   - *Triangles: the flattened triangle list with back-mappings
//   - error: error if polygon reconstruction fails or the strategy reports one
func (m *Mesh) TriangulateEach(triangulator Triangulator) (*Triangles, error) {
	if triangulator == nil {
		triangulator = FanTriangulate
	}
	polys, err := m.Polygons()
	if err != nil {
		return nil, err
	}

	tris := &Triangles{mesh: m}
	for _, poly := range polys {
		split, err := triangulator(m, poly)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", poly.Index, err)
		}
		for _, tri := range split {
			tris.pvIndices = append(tris.pvIndices, tri[0], tri[1], tri[2])
			tris.polyIndices = append(tris.polyIndices, poly.Index)
		}
	}
	return tris, nil
}

// Mesh returns the source mesh.
func (t *Triangles) Mesh() *Mesh { return t.mesh }

// TriangleCount returns the number of triangles.
func (t *Triangles) TriangleCount() int { return len(t.polyIndices) }

// VertexCount returns the number of triangle vertices (3 per triangle).
func (t *Triangles) VertexCount() int { return len(t.pvIndices) }

// PolygonVertexIndex returns the polygon-vertex position behind triangle
// vertex tvi.
func (t *Triangles) PolygonVertexIndex(tvi int) (int, bool) {
	if tvi < 0 || tvi >= len(t.pvIndices) {
		return 0, false
	}
	return t.pvIndices[tvi], true
}

// ControlPointIndex returns the control-point index behind triangle vertex
// tvi.
func (t *Triangles) ControlPointIndex(tvi int) (int32, error) {
	pvi, ok := t.PolygonVertexIndex(tvi)
	if !ok {
		return 0, indexErr("triangle vertex", tvi, len(t.pvIndices))
	}
	pv, ok := t.mesh.PolygonVertexAt(pvi)
	if !ok {
		return 0, indexErr("polygon vertex", pvi, len(t.mesh.polygonVertexIndices))
	}
	cpi := pv.ControlPointIndex()
	if int(cpi) >= t.mesh.ControlPointCount() {
		return 0, indexErr("control point", int(cpi), t.mesh.ControlPointCount())
	}
	return cpi, nil
}

// ControlPoint returns the control point behind triangle vertex tvi.
func (t *Triangles) ControlPoint(tvi int) (common.Vector3, error) {
	cpi, err := t.ControlPointIndex(tvi)
	if err != nil {
		return common.Vector3{}, err
	}
	return t.mesh.ControlPoint(int(cpi))
}

// PolygonIndex returns the source polygon of triangle tri.
func (t *Triangles) PolygonIndex(tri int) (int, bool) {
	if tri < 0 || tri >= len(t.polyIndices) {
		return 0, false
	}
	return t.polyIndices[tri], true
}
