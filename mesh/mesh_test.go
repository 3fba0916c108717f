package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/fbx-go/common"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// buildMesh builds a tree holding one Geometry node with the given children
// and returns a mesh view over it.
func buildMesh(t *testing.T, children ...tree.Node) *Mesh {
	t.Helper()
	m, err := tryBuildMesh(children...)
	require.NoError(t, err)
	return m
}

func tryBuildMesh(children ...tree.Node) (*Mesh, error) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Geometry", Attrs: []any{int64(1), "Cube\x00\x01Geometry", "Mesh"}, Children: children},
	})
	if err != nil {
		return nil, err
	}
	return New(tr, tr.Children(tr.Root())[0])
}

// quadGeometry is a unit quad in the XY plane stored as a single 4-gon.
func quadGeometry() []tree.Node {
	return []tree.Node{
		{Name: "Vertices", Attrs: []any{[]float64{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		}}},
		{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, 1, 2, -4}}},
	}
}

func TestPolygonVertexEncoding(t *testing.T) {
	assert.False(t, PolygonVertex(5).IsEnd())
	assert.Equal(t, int32(5), PolygonVertex(5).ControlPointIndex())

	// A terminator stores the bitwise NOT of the real index.
	assert.True(t, PolygonVertex(-3).IsEnd())
	assert.Equal(t, int32(2), PolygonVertex(-3).ControlPointIndex())
	assert.True(t, PolygonVertex(-1).IsEnd())
	assert.Equal(t, int32(0), PolygonVertex(-1).ControlPointIndex())
}

func TestControlPoints(t *testing.T) {
	m := buildMesh(t, quadGeometry()...)

	assert.Equal(t, 4, m.ControlPointCount())
	cp, err := m.ControlPoint(2)
	require.NoError(t, err)
	assert.Equal(t, common.Vector3{X: 1, Y: 1, Z: 0}, cp)

	_, err = m.ControlPoint(4)
	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 4, ie.Index)
	assert.Equal(t, 4, ie.Len)

	pts := m.ControlPoints()
	require.Len(t, pts, 4)
	assert.Equal(t, common.Vector3{X: 0, Y: 1, Z: 0}, pts[3])
}

func TestRaggedControlPointsRejected(t *testing.T) {
	_, err := tryBuildMesh(tree.Node{Name: "Vertices", Attrs: []any{[]float64{0, 0}}})
	assert.ErrorIs(t, err, errControlPointsRagged)
}

func TestPolygonsReconstruction(t *testing.T) {
	// A triangle followed by a quad.
	m := buildMesh(t,
		tree.Node{Name: "Vertices", Attrs: []any{make([]float64, 7*3)}},
		tree.Node{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, 1, -3, 3, 4, 5, -7}}},
	)

	polys, err := m.Polygons()
	require.NoError(t, err)
	require.Len(t, polys, 2)

	assert.Equal(t, 0, polys[0].Index)
	assert.Equal(t, 0, polys[0].Offset)
	assert.Equal(t, []int32{0, 1, 2}, polys[0].ControlPointIndices)
	assert.False(t, polys[0].Degenerate())

	assert.Equal(t, 1, polys[1].Index)
	assert.Equal(t, 3, polys[1].Offset)
	assert.Equal(t, []int32{3, 4, 5, 6}, polys[1].ControlPointIndices)
	assert.Equal(t, 4, polys[1].PolygonVertexIndexAt(1))
}

func TestPolygonsDegenerateFlaggedNotDropped(t *testing.T) {
	m := buildMesh(t,
		tree.Node{Name: "Vertices", Attrs: []any{make([]float64, 3*3)}},
		tree.Node{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, -2, 0, 1, -3}}},
	)

	polys, err := m.Polygons()
	require.NoError(t, err)
	require.Len(t, polys, 2)
	assert.True(t, polys[0].Degenerate())
	assert.Equal(t, 2, polys[0].VertexCount())
	assert.False(t, polys[1].Degenerate())
}

func TestPolygonsTrailingEntriesRejected(t *testing.T) {
	m := buildMesh(t,
		tree.Node{Name: "Vertices", Attrs: []any{make([]float64, 3*3)}},
		tree.Node{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, 1, -3, 1, 2}}},
	)

	_, err := m.Polygons()
	assert.ErrorIs(t, err, errIncompletePolygon)
}

func TestFanTriangulateQuad(t *testing.T) {
	m := buildMesh(t, quadGeometry()...)

	tris, err := m.TriangulateEach(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, tris.TriangleCount())
	assert.Equal(t, 6, tris.VertexCount())

	// Fan from corner 0: (0,1,2) and (0,2,3) in control-point terms.
	wantCPI := []int32{0, 1, 2, 0, 2, 3}
	for tvi, want := range wantCPI {
		got, err := tris.ControlPointIndex(tvi)
		require.NoError(t, err)
		assert.Equal(t, want, got, "tvi %d", tvi)
	}

	// Both triangles map back to the single source polygon.
	for tri := 0; tri < tris.TriangleCount(); tri++ {
		poly, ok := tris.PolygonIndex(tri)
		require.True(t, ok)
		assert.Equal(t, 0, poly)
	}

	// Triangle vertices preserve their polygon-vertex positions.
	pvi, ok := tris.PolygonVertexIndex(5)
	require.True(t, ok)
	assert.Equal(t, 3, pvi)

	cp, err := tris.ControlPoint(5)
	require.NoError(t, err)
	assert.Equal(t, common.Vector3{X: 0, Y: 1, Z: 0}, cp)
}

func TestTriangulateSkipsDegeneratePolygons(t *testing.T) {
	m := buildMesh(t,
		tree.Node{Name: "Vertices", Attrs: []any{make([]float64, 3*3)}},
		tree.Node{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, -2, 0, 1, -3}}},
	)

	tris, err := m.TriangulateEach(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, tris.TriangleCount())
	poly, ok := tris.PolygonIndex(0)
	require.True(t, ok)
	assert.Equal(t, 1, poly)
}

func TestTriangulateCustomStrategy(t *testing.T) {
	m := buildMesh(t, quadGeometry()...)

	// A strategy anchoring the fan at the last corner instead of the first.
	lastCornerFan := func(_ *Mesh, poly Polygon) ([][3]int, error) {
		n := poly.VertexCount()
		if n < 3 {
			return nil, nil
		}
		var out [][3]int
		for i := 0; i+2 < n; i++ {
			out = append(out, [3]int{
				poly.PolygonVertexIndexAt(n - 1),
				poly.PolygonVertexIndexAt(i),
				poly.PolygonVertexIndexAt(i + 1),
			})
		}
		return out, nil
	}

	tris, err := m.TriangulateEach(lastCornerFan)
	require.NoError(t, err)
	assert.Equal(t, 2, tris.TriangleCount())
	got, err := tris.ControlPointIndex(0)
	require.NoError(t, err)
	assert.Equal(t, int32(3), got)
}

func TestTrianglesOutOfRangeQueries(t *testing.T) {
	m := buildMesh(t, quadGeometry()...)
	tris, err := m.TriangulateEach(nil)
	require.NoError(t, err)

	_, ok := tris.PolygonVertexIndex(6)
	assert.False(t, ok)
	_, ok = tris.PolygonIndex(2)
	assert.False(t, ok)
	_, err = tris.ControlPointIndex(-1)
	var ie *IndexError
	assert.ErrorAs(t, err, &ie)
}

func TestControlPointIndexBeyondControlPoints(t *testing.T) {
	// Index buffer references control point 5 but only 3 exist.
	m := buildMesh(t,
		tree.Node{Name: "Vertices", Attrs: []any{make([]float64, 3*3)}},
		tree.Node{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, 5, -2}}},
	)

	tris, err := m.TriangulateEach(nil)
	require.NoError(t, err)
	_, err = tris.ControlPointIndex(1)
	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 5, ie.Index)
}
