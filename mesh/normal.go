package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/common"
)

// Vec3Layer is a decoded three-component layer: normals, binormals or
// tangents. The optional W array (per-value norms) is carried when present;
// its absence is normal and values degrade to the three stored components.
type Vec3Layer struct {
	elem    LayerElement
	mapping MappingMode
	// data is the raw xyz-triplet value array.
	data []float64
	// w is the optional per-value W array, nil when absent.
	w []float64
	// index is the indirection array for IndexToDirect, nil for Direct.
	index []int32
}

// AsNormals decodes a "LayerElementNormal" element.
func (e LayerElement) AsNormals() (*Vec3Layer, error) {
	return e.vec3Layer("LayerElementNormal", "Normals", "NormalsW", "NormalsIndex")
}

// AsBinormals decodes a "LayerElementBinormal" element.
func (e LayerElement) AsBinormals() (*Vec3Layer, error) {
	return e.vec3Layer("LayerElementBinormal", "Binormals", "BinormalsW", "BinormalsIndex")
}

// AsTangents decodes a "LayerElementTangent" element.
func (e LayerElement) AsTangents() (*Vec3Layer, error) {
	return e.vec3Layer("LayerElementTangent", "Tangents", "TangentsW", "TangentsIndex")
}

// vec3Layer decodes a three-component layer element with the given node and
// array names.
func (e LayerElement) vec3Layer(typeName, dataName, wName, indexName string) (*Vec3Layer, error) {
	if e.TypeName() != typeName {
		return nil, fmt.Errorf("not a %s element: got %s", typeName, e.TypeName())
	}
	data, ok, err := e.float64Array(dataName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: child node %q not found", typeName, dataName)
	}
	if len(data)%3 != 0 {
		return nil, fmt.Errorf("%s: %q length %d is not a multiple of 3", typeName, dataName, len(data))
	}
	// W is auxiliary; absence is not an error.
	w, _, err := e.float64Array(wName)
	if err != nil {
		return nil, err
	}
	mapping, err := e.MappingMode()
	if err != nil {
		return nil, err
	}
	reference, err := e.ReferenceMode()
	if err != nil {
		return nil, err
	}
	layer := &Vec3Layer{elem: e, mapping: mapping, data: data, w: w}
	if reference == ReferenceIndexToDirect {
		index, ok, err := e.int32Array(indexName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s: reference mode IndexToDirect but no %q array", typeName, indexName)
		}
		layer.index = index
	}
	return layer, nil
}

// Element returns the generic layer element handle.
func (l *Vec3Layer) Element() LayerElement { return l.elem }

// MappingMode returns the layer's mapping mode.
func (l *Vec3Layer) MappingMode() MappingMode { return l.mapping }

// Count returns the number of stored values.
func (l *Vec3Layer) Count() int { return len(l.data) / 3 }

// HasW reports whether the optional W array is present.
func (l *Vec3Layer) HasW() bool { return l.w != nil }

// Value resolves the layer value for triangle vertex tvi.
func (l *Vec3Layer) Value(tris *Triangles, tvi int) (common.Vector3, error) {
	i, err := resolveContentIndex(l.mapping, l.index, l.Count(), tris, tvi)
	if err != nil {
		return common.Vector3{}, err
	}
	return common.Vector3{X: l.data[i*3], Y: l.data[i*3+1], Z: l.data[i*3+2]}, nil
}

// W resolves the optional W component for triangle vertex tvi. The second
// return value reports whether a W array is present at all.
func (l *Vec3Layer) W(tris *Triangles, tvi int) (float64, bool, error) {
	if l.w == nil {
		return 0, false, nil
	}
	i, err := resolveContentIndex(l.mapping, l.index, len(l.w), tris, tvi)
	if err != nil {
		return 0, true, err
	}
	return l.w[i], true, nil
}
