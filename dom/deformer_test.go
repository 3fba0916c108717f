package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/fbx-go/tree"
)

func buildSkinnedDocument(t *testing.T) *Document {
	t.Helper()
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			objectNode("Geometry", 1, "SkinnedGeom", "Geometry", "Mesh"),
			objectNode("Deformer", 2, "Skin", "Deformer", "Skin"),
			objectNode("SubDeformer", 3, "Cluster", "SubDeformer", "Cluster",
				tree.Node{Name: "Indexes", Attrs: []any{[]int32{0, 1, 2}}},
				tree.Node{Name: "Weights", Attrs: []any{[]float64{1, 0.5, 0.25}}},
				tree.Node{Name: "Transform", Attrs: []any{identityMatrix()}},
			),
			objectNode("Model", 4, "Bone", "Model", "LimbNode"),
		}},
		{Name: "Connections", Children: []tree.Node{
			connNode("OO", 2, 1),
			connNode("OO", 3, 2),
			connNode("OO", 4, 3),
		}},
	})
	require.NoError(t, err)
	doc, err := FromTree(tr)
	require.NoError(t, err)
	return doc
}

func identityMatrix() []float64 {
	m := make([]float64, 16)
	for i := 0; i < 4; i++ {
		m[i*4+i] = 1
	}
	return m
}

func TestDeformerClusters(t *testing.T) {
	doc := buildSkinnedDocument(t)

	obj, _ := doc.Object(1)
	g := Classify(obj).(Geometry)
	deformers := g.Deformers()
	require.Len(t, deformers, 1)
	assert.True(t, deformers[0].IsSkin())
	assert.Equal(t, "Skin", deformers[0].Subclass())

	clusters := deformers[0].Clusters()
	require.Len(t, clusters, 1)
	cluster := clusters[0]
	assert.Equal(t, "Cluster", cluster.Subclass())

	indexes, ok := cluster.Indexes()
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 2}, indexes)

	weights, ok := cluster.Weights()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 0.5, 0.25}, weights)

	m, ok := cluster.Transform()
	require.True(t, ok)
	assert.Equal(t, 1.0, m[0])

	_, ok = cluster.TransformLink()
	assert.False(t, ok)

	bone, ok := cluster.TargetModel()
	require.True(t, ok)
	assert.Equal(t, ObjectID(4), bone.ID())
	assert.Equal(t, "LimbNode", bone.Subclass())
}
