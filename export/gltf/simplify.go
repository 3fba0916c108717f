package gltf

import (
	"github.com/fogleman/simplify"
)

// decimate runs quadric edge-collapse decimation, keeping roughly ratio of
// the triangles. Topology changes under decimation, so the result collapses
// to a single unmaterialed primitive with recomputed flat normals and no
// texture coordinates.
func (md *meshData) decimate(ratio float64) {
	triangles := make([]*simplify.Triangle, 0, len(md.positions)/3)
	for i := 0; i+2 < len(md.positions); i += 3 {
		triangles = append(triangles, simplify.NewTriangle(
			toVector(md.positions[i]),
			toVector(md.positions[i+1]),
			toVector(md.positions[i+2]),
		))
	}
	if len(triangles) == 0 {
		return
	}
	simplified := simplify.NewMesh(triangles).Simplify(ratio)

	md.positions = md.positions[:0]
	for _, t := range simplified.Triangles {
		md.positions = append(md.positions,
			fromVector(t.V1), fromVector(t.V2), fromVector(t.V3))
	}
	md.normals = flatNormals(md.positions)
	md.uvs = nil
	indices := make([]uint32, len(md.positions))
	for i := range indices {
		indices[i] = uint32(i)
	}
	md.prims = []primitiveData{{slot: -1, indices: indices}}
}

func toVector(p [3]float32) simplify.Vector {
	return simplify.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

func fromVector(v simplify.Vector) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
