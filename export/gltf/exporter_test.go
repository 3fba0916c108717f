package gltf

import (
	"testing"

	qgltf "github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/fbx-go/dom"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// buildSceneDocument builds a document with one root model carrying a quad
// mesh split across two material slots.
func buildSceneDocument(t *testing.T) *dom.Document {
	t.Helper()
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			{Name: "Model", Attrs: []any{int64(1), "Quad\x00\x01Model", "Mesh"}, Children: []tree.Node{
				{Name: "Properties70", Children: []tree.Node{
					{Name: "P", Attrs: []any{"Lcl Translation", "Lcl Translation", "", "A", 1.0, 0.0, 0.0}},
				}},
			}},
			{Name: "Geometry", Attrs: []any{int64(2), "QuadGeom\x00\x01Geometry", "Mesh"}, Children: []tree.Node{
				{Name: "Vertices", Attrs: []any{[]float64{
					0, 0, 0,
					1, 0, 0,
					1, 1, 0,
					0, 1, 0,
				}}},
				// Two triangles as separate polygons so they can carry
				// different material slots.
				{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, 1, -3, 0, 2, -4}}},
				{Name: "LayerElementMaterial", Attrs: []any{int32(0)}, Children: []tree.Node{
					{Name: "MappingInformationType", Attrs: []any{"ByPolygon"}},
					{Name: "ReferenceInformationType", Attrs: []any{"IndexToDirect"}},
					{Name: "Materials", Attrs: []any{[]int32{0, 1}}},
				}},
			}},
			{Name: "Material", Attrs: []any{int64(3), "Red\x00\x01Material", ""}, Children: []tree.Node{
				{Name: "Properties70", Children: []tree.Node{
					{Name: "P", Attrs: []any{"DiffuseColor", "Color", "", "A", 1.0, 0.0, 0.0}},
				}},
			}},
			{Name: "Material", Attrs: []any{int64(4), "Green\x00\x01Material", ""}, Children: []tree.Node{
				{Name: "Properties70", Children: []tree.Node{
					{Name: "P", Attrs: []any{"DiffuseColor", "Color", "", "A", 0.0, 1.0, 0.0}},
				}},
			}},
		}},
		{Name: "Connections", Children: []tree.Node{
			{Name: "C", Attrs: []any{"OO", int64(1), int64(0)}},
			{Name: "C", Attrs: []any{"OO", int64(2), int64(1)}},
			{Name: "C", Attrs: []any{"OO", int64(3), int64(1)}},
			{Name: "C", Attrs: []any{"OO", int64(4), int64(1)}},
		}},
	})
	require.NoError(t, err)
	doc, err := dom.FromTree(tr)
	require.NoError(t, err)
	return doc
}

func TestExportDocument(t *testing.T) {
	doc := buildSceneDocument(t)

	out, err := NewExporter(WithWorkers(2)).ExportDocument(doc)
	require.NoError(t, err)

	require.Len(t, out.Meshes, 1)
	mesh := out.Meshes[0]
	assert.Equal(t, "QuadGeom", mesh.Name)

	// One primitive per material slot.
	require.Len(t, mesh.Primitives, 2)
	for _, prim := range mesh.Primitives {
		_, hasPos := prim.Attributes[qgltf.POSITION]
		assert.True(t, hasPos)
		_, hasNormal := prim.Attributes[qgltf.NORMAL]
		assert.True(t, hasNormal)
		require.NotNil(t, prim.Material)
	}
	assert.NotEqual(t, *mesh.Primitives[0].Material, *mesh.Primitives[1].Material)

	require.Len(t, out.Materials, 2)
	assert.Equal(t, "Red", out.Materials[0].Name)
	require.NotNil(t, out.Materials[0].PBRMetallicRoughness.BaseColorFactor)
	assert.Equal(t, [4]float64{1, 0, 0, 1}, *out.Materials[0].PBRMetallicRoughness.BaseColorFactor)

	// The model becomes a root scene node with its translation.
	require.Len(t, out.Nodes, 1)
	node := out.Nodes[0]
	assert.Equal(t, "Quad", node.Name)
	assert.Equal(t, [3]float64{1, 0, 0}, node.Translation)
	require.NotNil(t, node.Mesh)
	assert.Equal(t, 0, *node.Mesh)
	assert.Equal(t, []int{0}, out.Scenes[0].Nodes)
}

func TestExportDocumentWithoutMaterials(t *testing.T) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			{Name: "Geometry", Attrs: []any{int64(1), "Tri\x00\x01Geometry", "Mesh"}, Children: []tree.Node{
				{Name: "Vertices", Attrs: []any{[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}}},
				{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, 1, -3}}},
			}},
		}},
		{Name: "Connections"},
	})
	require.NoError(t, err)
	doc, err := dom.FromTree(tr)
	require.NoError(t, err)

	out, err := NewExporter().ExportDocument(doc)
	require.NoError(t, err)
	require.Len(t, out.Meshes, 1)
	require.Len(t, out.Meshes[0].Primitives, 1)
	assert.Nil(t, out.Meshes[0].Primitives[0].Material)
	assert.Empty(t, out.Materials)
}

func TestFlatNormals(t *testing.T) {
	// A CCW triangle in the XY plane faces +Z.
	normals := flatNormals([][3]float32{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	})
	require.Len(t, normals, 3)
	for _, n := range normals {
		assert.InDelta(t, 0, n[0], 1e-6)
		assert.InDelta(t, 0, n[1], 1e-6)
		assert.InDelta(t, 1, n[2], 1e-6)
	}
}

func TestSniffImageMIME(t *testing.T) {
	mime, ok := sniffImageMIME([]byte("\x89PNG\r\n\x1a\nrest"))
	require.True(t, ok)
	assert.Equal(t, "image/png", mime)

	mime, ok = sniffImageMIME([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", mime)

	_, ok = sniffImageMIME([]byte("plain text"))
	assert.False(t, ok)
}

func TestDecimateKeepsValidTopology(t *testing.T) {
	// Two coplanar triangles collapse into fewer or equal triangles.
	md := &meshData{
		positions: [][3]float32{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0},
			{0, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
		prims: []primitiveData{{slot: -1, indices: []uint32{0, 1, 2, 3, 4, 5}}},
	}
	md.decimate(0.5)

	assert.Equal(t, 0, len(md.positions)%3)
	require.Len(t, md.prims, 1)
	assert.Len(t, md.prims[0].indices, len(md.positions))
	assert.Len(t, md.normals, len(md.positions))
	assert.Nil(t, md.uvs)
}
