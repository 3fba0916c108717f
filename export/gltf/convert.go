package gltf

import (
	"errors"
	"sort"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/fbx-go/dom"
	"github.com/Carmen-Shannon/fbx-go/mesh"
)

// primitiveData is one output primitive: the triangle corner indices that
// share a material slot.
type primitiveData struct {
	// slot is the material slot, -1 when the mesh has no material layer.
	slot int32
	// indices are triangle-vertex indices into the shared vertex arrays.
	indices []uint32
}

// meshData is the CPU-side result of converting one geometry: flat
// per-triangle-vertex arrays ready for accessor writing.
type meshData struct {
	name      string
	positions [][3]float32
	// normals is nil when neither a normal layer nor computed normals exist.
	normals [][3]float32
	// uvs is nil when the mesh has no UV layer.
	uvs   [][2]float32
	prims []primitiveData
}

// convertGeometry decodes and triangulates one mesh geometry into flat
// vertex arrays. Vertices are expanded per triangle corner; no deduplication
// happens here.
func (e *exporter) convertGeometry(g dom.Geometry) (*meshData, error) {
	m, ok, err := g.AsMesh()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	tris, err := m.TriangulateEach(e.triangulator)
	if err != nil {
		return nil, err
	}

	md := &meshData{name: g.Name()}
	vertexCount := tris.VertexCount()
	md.positions = make([][3]float32, vertexCount)
	for tvi := 0; tvi < vertexCount; tvi++ {
		cp, err := tris.ControlPoint(tvi)
		if err != nil {
			return nil, err
		}
		md.positions[tvi] = [3]float32{float32(cp.X), float32(cp.Y), float32(cp.Z)}
	}

	if err := md.loadNormals(m, tris); err != nil {
		return nil, err
	}
	if err := md.loadUVs(m, tris); err != nil {
		return nil, err
	}
	if err := md.splitByMaterial(m, tris); err != nil {
		return nil, err
	}

	if e.simplifyRatio > 0 && e.simplifyRatio < 1 {
		md.decimate(e.simplifyRatio)
	}
	return md, nil
}

// loadNormals fills the normal array from the mesh's normal layer, falling
// back to computed flat normals when no layer is present.
func (md *meshData) loadNormals(m *mesh.Mesh, tris *mesh.Triangles) error {
	elem, ok := firstLayerElement(m, "LayerElementNormal")
	if !ok {
		md.normals = flatNormals(md.positions)
		return nil
	}
	layer, err := elem.AsNormals()
	if err != nil {
		return err
	}
	md.normals = make([][3]float32, tris.VertexCount())
	for tvi := range md.normals {
		v, err := layer.Value(tris, tvi)
		if err != nil {
			var ie *mesh.IndexError
			if errors.As(err, &ie) {
				// A hole in the layer data degrades to computed normals
				// rather than failing the whole mesh.
				md.normals = flatNormals(md.positions)
				return nil
			}
			return err
		}
		md.normals[tvi] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	return nil
}

// loadUVs fills the UV array from the mesh's first UV layer, if any. The V
// coordinate flips because glTF's origin is the top-left corner.
func (md *meshData) loadUVs(m *mesh.Mesh, tris *mesh.Triangles) error {
	elem, ok := firstLayerElement(m, "LayerElementUV")
	if !ok {
		return nil
	}
	layer, err := elem.AsUV()
	if err != nil {
		return err
	}
	md.uvs = make([][2]float32, tris.VertexCount())
	for tvi := range md.uvs {
		v, err := layer.Value(tris, tvi)
		if err != nil {
			var ie *mesh.IndexError
			if errors.As(err, &ie) {
				md.uvs = nil
				return nil
			}
			return err
		}
		md.uvs[tvi] = [2]float32{float32(v.X), float32(1 - v.Y)}
	}
	return nil
}

// splitByMaterial groups the triangles by material slot into primitives.
// Without a material layer the whole mesh becomes one primitive with slot -1.
func (md *meshData) splitByMaterial(m *mesh.Mesh, tris *mesh.Triangles) error {
	elem, ok := firstLayerElement(m, "LayerElementMaterial")
	if !ok {
		indices := make([]uint32, tris.VertexCount())
		for i := range indices {
			indices[i] = uint32(i)
		}
		md.prims = []primitiveData{{slot: -1, indices: indices}}
		return nil
	}
	layer, err := elem.AsMaterials()
	if err != nil {
		return err
	}
	bySlot := make(map[int32][]uint32)
	for tri := 0; tri < tris.TriangleCount(); tri++ {
		slot, err := layer.Value(tris, tri*3)
		if err != nil {
			return err
		}
		tvi := uint32(tri * 3)
		bySlot[slot] = append(bySlot[slot], tvi, tvi+1, tvi+2)
	}
	slots := make([]int32, 0, len(bySlot))
	for slot := range bySlot {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	for _, slot := range slots {
		md.prims = append(md.prims, primitiveData{slot: slot, indices: bySlot[slot]})
	}
	return nil
}

// firstLayerElement returns the geometry's first layer element of the given
// type.
func firstLayerElement(m *mesh.Mesh, typeName string) (mesh.LayerElement, bool) {
	for _, elem := range m.LayerElements() {
		if elem.TypeName() == typeName {
			return elem, true
		}
	}
	return mesh.LayerElement{}, false
}

// flatNormals computes one face normal per triangle, repeated for each of
// its three corners. Degenerate triangles get a zero normal.
func flatNormals(positions [][3]float32) [][3]float32 {
	normals := make([][3]float32, len(positions))
	for tri := 0; tri+2 < len(positions); tri += 3 {
		a, b, c := positions[tri], positions[tri+1], positions[tri+2]
		ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
		vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
		nx := uy*vz - uz*vy
		ny := uz*vx - ux*vz
		nz := ux*vy - uy*vx
		length := math32.Sqrt(nx*nx + ny*ny + nz*nz)
		if length > 0 {
			nx, ny, nz = nx/length, ny/length, nz/length
		}
		normals[tri] = [3]float32{nx, ny, nz}
		normals[tri+1] = normals[tri]
		normals[tri+2] = normals[tri]
	}
	return normals
}
