package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/common"
)

// UVLayer is a decoded "LayerElementUV" element: texture coordinates stored
// as f64 pairs, with an optional "UVIndex" indirection array.
type UVLayer struct {
	elem    LayerElement
	mapping MappingMode
	data    []float64
	index   []int32
}

// AsUV decodes a "LayerElementUV" element.
func (e LayerElement) AsUV() (*UVLayer, error) {
	if e.TypeName() != "LayerElementUV" {
		return nil, fmt.Errorf("not a LayerElementUV element: got %s", e.TypeName())
	}
	data, ok, err := e.float64Array("UV")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("LayerElementUV: child node %q not found", "UV")
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("LayerElementUV: UV length %d is not a multiple of 2", len(data))
	}
	mapping, err := e.MappingMode()
	if err != nil {
		return nil, err
	}
	reference, err := e.ReferenceMode()
	if err != nil {
		return nil, err
	}
	layer := &UVLayer{elem: e, mapping: mapping, data: data}
	if reference == ReferenceIndexToDirect {
		index, ok, err := e.int32Array("UVIndex")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("LayerElementUV: reference mode IndexToDirect but no UVIndex array")
		}
		layer.index = index
	}
	return layer, nil
}

// Element returns the generic layer element handle.
func (l *UVLayer) Element() LayerElement { return l.elem }

// MappingMode returns the layer's mapping mode.
func (l *UVLayer) MappingMode() MappingMode { return l.mapping }

// Count returns the number of stored UV pairs.
func (l *UVLayer) Count() int { return len(l.data) / 2 }

// Value resolves the UV pair for triangle vertex tvi.
func (l *UVLayer) Value(tris *Triangles, tvi int) (common.Vector2, error) {
	i, err := resolveContentIndex(l.mapping, l.index, l.Count(), tris, tvi)
	if err != nil {
		return common.Vector2{}, err
	}
	return common.Vector2{X: l.data[i*2], Y: l.data[i*2+1]}, nil
}
