package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/fbx-go/common"
	"github.com/Carmen-Shannon/fbx-go/property"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// objectNode builds an object node spec with the standard identity attrs.
func objectNode(nodeName string, id int64, name, class, subclass string, children ...tree.Node) tree.Node {
	return tree.Node{
		Name:     nodeName,
		Attrs:    []any{id, name + "\x00\x01" + class, subclass},
		Children: children,
	}
}

// connNode builds a "C" node spec.
func connNode(types string, src, dst int64, label ...string) tree.Node {
	attrs := []any{types, src, dst}
	for _, l := range label {
		attrs = append(attrs, l)
	}
	return tree.Node{Name: "C", Attrs: attrs}
}

// buildDocument builds a small but complete scene: a root model with a child
// model, a mesh geometry, a material with a diffuse texture backed by a
// video, and global settings.
func buildDocument(t *testing.T) *Document {
	t.Helper()
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "GlobalSettings", Children: []tree.Node{
			{Name: "Properties70", Children: []tree.Node{
				{Name: "P", Attrs: []any{"UpAxis", "int", "Integer", "", int32(1)}},
				{Name: "P", Attrs: []any{"UpAxisSign", "int", "Integer", "", int32(1)}},
				{Name: "P", Attrs: []any{"FrontAxis", "int", "Integer", "", int32(2)}},
				{Name: "P", Attrs: []any{"FrontAxisSign", "int", "Integer", "", int32(-1)}},
				{Name: "P", Attrs: []any{"CoordAxis", "int", "Integer", "", int32(0)}},
				{Name: "P", Attrs: []any{"CoordAxisSign", "int", "Integer", "", int32(1)}},
				{Name: "P", Attrs: []any{"UnitScaleFactor", "double", "Number", "", 2.54}},
			}},
		}},
		{Name: "Definitions", Children: []tree.Node{
			objectTypeTemplate("Model", "FbxNode", []tree.Node{
				{Name: "P", Attrs: []any{"Lcl Scaling", "Lcl Scaling", "", "A", 1.0, 1.0, 1.0}},
				{Name: "P", Attrs: []any{"Visibility", "Visibility", "", "A", 1.0}},
			}),
			objectTypeTemplate("Material", "FbxSurfacePhong", []tree.Node{
				{Name: "P", Attrs: []any{"ShadingModel", "KString", "", "", "Phong"}},
			}),
		}},
		{Name: "Objects", Children: []tree.Node{
			objectNode("Model", 1, "Root", "Model", "Null"),
			objectNode("Model", 2, "Cube", "Model", "Mesh", tree.Node{
				Name: "Properties70",
				Children: []tree.Node{
					{Name: "P", Attrs: []any{"Lcl Translation", "Lcl Translation", "", "A", 1.0, 2.0, 3.0}},
				},
			}),
			objectNode("Geometry", 3, "CubeGeom", "Geometry", "Mesh",
				tree.Node{Name: "Vertices", Attrs: []any{[]float64{0, 0, 0, 1, 0, 0, 1, 1, 0}}},
				tree.Node{Name: "PolygonVertexIndex", Attrs: []any{[]int32{0, 1, -3}}},
			),
			objectNode("Material", 4, "Red", "Material", "", tree.Node{
				Name: "Properties70",
				Children: []tree.Node{
					{Name: "P", Attrs: []any{"DiffuseColor", "Color", "", "A", 1.0, 0.0, 0.0}},
				},
			}),
			objectNode("Texture", 5, "RedTex", "Texture", "",
				tree.Node{Name: "FileName", Attrs: []any{"/tmp/red.png"}},
				tree.Node{Name: "RelativeFilename", Attrs: []any{"red.png"}},
			),
			objectNode("Video", 6, "RedClip", "Video", "Clip",
				tree.Node{Name: "Content", Attrs: []any{[]byte{1, 2, 3}}},
			),
			objectNode("CollectionExclusive", 7, "Stuff", "DisplayLayer", ""),
		}},
		{Name: "Connections", Children: []tree.Node{
			connNode("OO", 1, 0),
			connNode("OO", 2, 1),
			connNode("OO", 3, 2),
			connNode("OO", 4, 2),
			connNode("OO", 5, 4, "DiffuseColor"),
			connNode("OO", 6, 5),
			// Duplicate edge, silently dropped.
			connNode("OO", 2, 1),
			// Dangling endpoint, kept as an edge but skipped in traversal.
			connNode("OO", 99, 2),
		}},
	})
	require.NoError(t, err)

	doc, err := FromTree(tr)
	require.NoError(t, err)
	return doc
}

func objectTypeTemplate(class, nativeType string, props []tree.Node) tree.Node {
	return tree.Node{
		Name:  "ObjectType",
		Attrs: []any{class},
		Children: []tree.Node{
			{
				Name:  "PropertyTemplate",
				Attrs: []any{nativeType},
				Children: []tree.Node{
					{Name: "Properties70", Children: props},
				},
			},
		},
	}
}

func TestObjectLookup(t *testing.T) {
	doc := buildDocument(t)

	obj, ok := doc.Object(2)
	require.True(t, ok)
	assert.Equal(t, ObjectID(2), obj.ID())
	assert.Equal(t, "Cube", obj.Name())
	assert.Equal(t, "Model", obj.Class())
	assert.Equal(t, "Mesh", obj.Subclass())

	_, ok = doc.Object(42)
	assert.False(t, ok)

	objects := doc.Objects()
	require.Len(t, objects, 7)
	assert.Equal(t, ObjectID(1), objects[0].ID())
}

func TestNameClassDecomposition(t *testing.T) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			{Name: "Model", Attrs: []any{int64(1), "NoSeparator", ""}},
			{Name: "Model", Attrs: []any{int64(2), "\x00\x01Model", ""}},
		}},
		{Name: "Connections"},
	})
	require.NoError(t, err)
	doc, err := FromTree(tr)
	require.NoError(t, err)

	// Without the separator there is no name and no class.
	obj, ok := doc.Object(1)
	require.True(t, ok)
	assert.Equal(t, "", obj.Name())
	assert.Equal(t, "", obj.Class())

	obj, ok = doc.Object(2)
	require.True(t, ok)
	assert.Equal(t, "", obj.Name())
	assert.Equal(t, "Model", obj.Class())
}

func TestDuplicateObjectIDKeepsFirst(t *testing.T) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			objectNode("Model", 1, "First", "Model", "Null"),
			objectNode("Model", 1, "Second", "Model", "Null"),
		}},
	})
	require.NoError(t, err)
	doc, err := FromTree(tr)
	require.NoError(t, err)

	obj, ok := doc.Object(1)
	require.True(t, ok)
	assert.Equal(t, "First", obj.Name())
	assert.Len(t, doc.Objects(), 1)
}

func TestMalformedObjectNodeRejected(t *testing.T) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			{Name: "Model", Attrs: []any{"not an id"}},
		}},
	})
	require.NoError(t, err)

	_, err = FromTree(tr)
	var se *StructuralError
	require.ErrorAs(t, err, &se)
}

func TestConnectionDeduplication(t *testing.T) {
	doc := buildDocument(t)

	// 8 declared, 1 duplicate dropped.
	conns := doc.Connections()
	assert.Len(t, conns, 7)

	// The same endpoints with a label are a distinct edge, so both survive
	// when one is labeled and one is not.
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			objectNode("Model", 1, "A", "Model", ""),
			objectNode("Model", 2, "B", "Model", ""),
		}},
		{Name: "Connections", Children: []tree.Node{
			connNode("OO", 1, 2),
			connNode("OP", 1, 2, "Look"),
			connNode("OP", 1, 2, "Look"),
		}},
	})
	require.NoError(t, err)
	d2, err := FromTree(tr)
	require.NoError(t, err)
	assert.Len(t, d2.Connections(), 2)
}

func TestConnectionTypesAndLabels(t *testing.T) {
	doc := buildDocument(t)

	mat, ok := doc.Object(4)
	require.True(t, ok)
	incoming := mat.IncomingConnections()
	require.Len(t, incoming, 1)
	label, hasLabel := incoming[0].Label()
	assert.True(t, hasLabel)
	assert.Equal(t, "DiffuseColor", label)
	assert.Equal(t, NodeTypeObject, incoming[0].SourceType)
	assert.Equal(t, NodeTypeObject, incoming[0].DestinationType)
}

func TestConnectionEndpointTypes(t *testing.T) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			objectNode("Model", 1, "A", "Model", ""),
			objectNode("Model", 2, "B", "Model", ""),
		}},
		{Name: "Connections", Children: []tree.Node{
			connNode("OP", 1, 2, "Look"),
			connNode("PO", 2, 1),
			connNode("PP", 1, 2),
		}},
	})
	require.NoError(t, err)
	doc, err := FromTree(tr)
	require.NoError(t, err)

	conns := doc.Connections()
	require.Len(t, conns, 3)

	// "OP" spells the destination end first: the source is the property.
	assert.Equal(t, NodeTypeProperty, conns[0].SourceType)
	assert.Equal(t, NodeTypeObject, conns[0].DestinationType)

	assert.Equal(t, NodeTypeObject, conns[1].SourceType)
	assert.Equal(t, NodeTypeProperty, conns[1].DestinationType)

	assert.Equal(t, NodeTypeProperty, conns[2].SourceType)
	assert.Equal(t, NodeTypeProperty, conns[2].DestinationType)
}

func TestConnectionEndpointResolution(t *testing.T) {
	doc := buildDocument(t)

	model, _ := doc.Object(2)
	incoming := model.IncomingConnections()
	require.Len(t, incoming, 3)

	src, ok := incoming[0].Source()
	require.True(t, ok)
	assert.Equal(t, ObjectID(3), src.ID())
	dst, ok := incoming[0].Destination()
	require.True(t, ok)
	assert.Equal(t, ObjectID(2), dst.ID())

	// The dangling 99 -> 2 edge stays enumerable but its source is absent.
	dangling := incoming[2]
	assert.Equal(t, ObjectID(99), dangling.SourceID)
	_, ok = dangling.Source()
	assert.False(t, ok)
	_, ok = dangling.Destination()
	assert.True(t, ok)
}

func TestMalformedConnectionRejected(t *testing.T) {
	for _, attrs := range [][]any{
		{"XX", int64(1), int64(2)},
		{"OO", "one", int64(2)},
		{"OO", int64(1)},
		{int64(1), int64(2), int64(3)},
	} {
		tr, err := tree.New(tree.Version7400, []tree.Node{
			{Name: "Connections", Children: []tree.Node{{Name: "C", Attrs: attrs}}},
		})
		require.NoError(t, err)
		_, err = FromTree(tr)
		var se *StructuralError
		assert.ErrorAs(t, err, &se)
	}
}

func TestTraversalSymmetry(t *testing.T) {
	doc := buildDocument(t)

	model, _ := doc.Object(2)
	parent, _ := doc.Object(1)

	children := parent.Children()
	require.Len(t, children, 1)
	assert.Equal(t, ObjectID(2), children[0].ID())

	parents := model.Parents()
	require.Len(t, parents, 1)
	assert.Equal(t, ObjectID(1), parents[0].ID())

	// The dangling 99 -> 2 edge is skipped, leaving geometry and material.
	kids := model.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, ObjectID(3), kids[0].ID())
	assert.Equal(t, ObjectID(4), kids[1].ID())
}

func TestChildrenByLabel(t *testing.T) {
	doc := buildDocument(t)

	mat, _ := doc.Object(4)
	byLabel := mat.ChildrenByLabel("DiffuseColor")
	require.Len(t, byLabel, 1)
	assert.Equal(t, ObjectID(5), byLabel[0].ID())

	assert.Empty(t, mat.ChildrenByLabel("NormalMap"))
	assert.Empty(t, mat.UnlabeledChildren())
}

func TestClassifyTotality(t *testing.T) {
	doc := buildDocument(t)

	wantKinds := map[ObjectID]ObjectKind{
		1: KindModel,
		2: KindModel,
		3: KindGeometry,
		4: KindMaterial,
		5: KindTexture,
		6: KindVideo,
		7: KindUnknown,
	}
	for id, want := range wantKinds {
		obj, ok := doc.Object(id)
		require.True(t, ok)
		typed := Classify(obj)
		assert.Equal(t, want, typed.Kind(), "object %d", id)
		assert.Equal(t, id, typed.AsObject().ID())
	}
}

func TestModelHierarchy(t *testing.T) {
	doc := buildDocument(t)

	roots := doc.RootModels()
	require.Len(t, roots, 1)
	assert.Equal(t, ObjectID(1), roots[0].ID())

	kids := roots[0].ChildModels()
	require.Len(t, kids, 1)
	assert.Equal(t, "Cube", kids[0].Name())

	parent, ok := kids[0].ParentModel()
	require.True(t, ok)
	assert.Equal(t, ObjectID(1), parent.ID())

	_, ok = roots[0].ParentModel()
	assert.False(t, ok)
}

func TestModelTransformProperties(t *testing.T) {
	doc := buildDocument(t)

	obj, _ := doc.Object(2)
	m := Classify(obj).(Model)

	lt, ok, err := m.LocalTranslation()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, common.Vector3{X: 1, Y: 2, Z: 3}, lt)

	// Scaling comes from the class template, not the object itself.
	ls, ok, err := m.LocalScaling()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, common.Vector3{X: 1, Y: 1, Z: 1}, ls)

	_, ok, err = m.LocalRotation()
	require.NoError(t, err)
	assert.False(t, ok)

	visible, ok, err := m.Visibility()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, visible)
}

func TestGeometryAsMesh(t *testing.T) {
	doc := buildDocument(t)

	obj, _ := doc.Object(3)
	g := Classify(obj).(Geometry)
	require.True(t, g.IsMesh())

	m, isMesh, err := g.AsMesh()
	require.NoError(t, err)
	require.True(t, isMesh)
	assert.Equal(t, 3, m.ControlPointCount())

	models := g.Models()
	require.Len(t, models, 1)
	assert.Equal(t, ObjectID(2), models[0].ID())
}

func TestGeometryNonMeshSubclass(t *testing.T) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			objectNode("Geometry", 1, "Curve", "Geometry", "NurbsCurve"),
		}},
	})
	require.NoError(t, err)
	doc, err := FromTree(tr)
	require.NoError(t, err)

	obj, _ := doc.Object(1)
	g := Classify(obj).(Geometry)
	assert.False(t, g.IsMesh())

	m, isMesh, err := g.AsMesh()
	require.NoError(t, err)
	assert.False(t, isMesh)
	assert.Nil(t, m)
}

func TestMaterialChannels(t *testing.T) {
	doc := buildDocument(t)

	obj, _ := doc.Object(4)
	mat := Classify(obj).(Material)

	c, ok, err := mat.DiffuseColor()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, common.ColorRGB{R: 1, G: 0, B: 0}, c)

	// ShadingModel resolves through the Definitions template.
	sm, ok, err := mat.ShadingModel()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ShadingPhong, sm)

	tex, ok := mat.DiffuseTexture()
	require.True(t, ok)
	assert.Equal(t, ObjectID(5), tex.ID())

	_, ok = mat.NormalMapTexture()
	assert.False(t, ok)
	_, ok = mat.SpecularTexture()
	assert.False(t, ok)
}

func TestTextureAndVideo(t *testing.T) {
	doc := buildDocument(t)

	obj, _ := doc.Object(5)
	tex := Classify(obj).(Texture)

	fn, ok := tex.FileName()
	require.True(t, ok)
	assert.Equal(t, "/tmp/red.png", fn)

	rel, ok := tex.RelativeFileName()
	require.True(t, ok)
	assert.Equal(t, "red.png", rel)

	video, ok := tex.Video()
	require.True(t, ok)
	assert.Equal(t, ObjectID(6), video.ID())

	content, ok := video.Content()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, content)

	// Garbage bytes are not a decodable image.
	_, err := video.Image()
	assert.Error(t, err)
}

func TestShadingModelParsing(t *testing.T) {
	cases := map[string]ShadingModel{
		"Unknown": ShadingUnknown,
		"Lambert": ShadingLambert,
		"Phong":   ShadingPhong,
	}
	for token, want := range cases {
		got, err := ParseShadingModel(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}

	// The table is case-sensitive and total; anything else is a load error.
	for _, token := range []string{"phong", "lambert", "toon", ""} {
		_, err := ParseShadingModel(token)
		var le *property.LoadError
		require.ErrorAs(t, err, &le, token)
		assert.Equal(t, property.UnrecognizedVariant, le.Kind, token)
	}
}

func TestShadingModelUnrecognizedIsLoadError(t *testing.T) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "Objects", Children: []tree.Node{
			objectNode("Material", 1, "Weird", "Material", "", tree.Node{
				Name: "Properties70",
				Children: []tree.Node{
					{Name: "P", Attrs: []any{"ShadingModel", "KString", "", "", "toon"}},
				},
			}),
		}},
	})
	require.NoError(t, err)
	doc, err := FromTree(tr)
	require.NoError(t, err)

	obj, _ := doc.Object(1)
	mat := Classify(obj).(Material)

	// The property exists but its value is garbage; callers see the load
	// error and pick their own fallback.
	_, ok, err := mat.ShadingModel()
	assert.True(t, ok)
	var le *property.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, property.UnrecognizedVariant, le.Kind)
}

func TestWrapAndBlendModes(t *testing.T) {
	m, err := ParseWrapMode(0)
	require.NoError(t, err)
	assert.Equal(t, WrapRepeat, m)
	m, err = ParseWrapMode(1)
	require.NoError(t, err)
	assert.Equal(t, WrapClamp, m)
	_, err = ParseWrapMode(2)
	assert.Error(t, err)

	b, err := ParseBlendMode(4)
	require.NoError(t, err)
	assert.Equal(t, BlendOver, b)
	_, err = ParseBlendMode(5)
	assert.Error(t, err)
	_, err = ParseBlendMode(-1)
	assert.Error(t, err)
}

func TestGlobalSettings(t *testing.T) {
	doc := buildDocument(t)

	gs, ok := doc.GlobalSettings()
	require.True(t, ok)

	up, err := gs.UpAxis()
	require.NoError(t, err)
	assert.Equal(t, AxisPosY, up)

	front, err := gs.FrontAxis()
	require.NoError(t, err)
	assert.Equal(t, AxisNegZ, front)

	coord, err := gs.CoordAxis()
	require.NoError(t, err)
	assert.Equal(t, AxisPosX, coord)

	scale, err := gs.UnitScaleFactor()
	require.NoError(t, err)
	assert.Equal(t, 2.54, scale)
}

func TestGlobalSettingsOutOfRangeAxis(t *testing.T) {
	tr, err := tree.New(tree.Version7400, []tree.Node{
		{Name: "GlobalSettings", Children: []tree.Node{
			{Name: "Properties70", Children: []tree.Node{
				{Name: "P", Attrs: []any{"UpAxis", "int", "Integer", "", int32(3)}},
				{Name: "P", Attrs: []any{"UpAxisSign", "int", "Integer", "", int32(1)}},
			}},
		}},
	})
	require.NoError(t, err)
	doc, err := FromTree(tr)
	require.NoError(t, err)

	gs, ok := doc.GlobalSettings()
	require.True(t, ok)
	_, err = gs.UpAxis()
	assert.Error(t, err)

	// Absent scale falls back to the format default.
	scale, err := gs.UnitScaleFactor()
	require.NoError(t, err)
	assert.Equal(t, 1.0, scale)
}

func TestDocumentWithoutSections(t *testing.T) {
	tr, err := tree.New(tree.Version7400, nil)
	require.NoError(t, err)

	doc, err := FromTree(tr)
	require.NoError(t, err)
	assert.Empty(t, doc.Objects())
	assert.Empty(t, doc.Connections())
	_, ok := doc.GlobalSettings()
	assert.False(t, ok)
}
