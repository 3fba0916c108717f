package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/common"
)

// ColorLayer is a decoded "LayerElementColor" element: vertex colors stored
// as RGBA f64 quadruplets with an optional "ColorIndex" indirection array.
type ColorLayer struct {
	elem    LayerElement
	mapping MappingMode
	data    []float64
	index   []int32
}

// AsColors decodes a "LayerElementColor" element.
func (e LayerElement) AsColors() (*ColorLayer, error) {
	if e.TypeName() != "LayerElementColor" {
		return nil, fmt.Errorf("not a LayerElementColor element: got %s", e.TypeName())
	}
	data, ok, err := e.float64Array("Colors")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("LayerElementColor: child node %q not found", "Colors")
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("LayerElementColor: Colors length %d is not a multiple of 4", len(data))
	}
	mapping, err := e.MappingMode()
	if err != nil {
		return nil, err
	}
	reference, err := e.ReferenceMode()
	if err != nil {
		return nil, err
	}
	layer := &ColorLayer{elem: e, mapping: mapping, data: data}
	if reference == ReferenceIndexToDirect {
		index, ok, err := e.int32Array("ColorIndex")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("LayerElementColor: reference mode IndexToDirect but no ColorIndex array")
		}
		layer.index = index
	}
	return layer, nil
}

// Element returns the generic layer element handle.
func (l *ColorLayer) Element() LayerElement { return l.elem }

// MappingMode returns the layer's mapping mode.
func (l *ColorLayer) MappingMode() MappingMode { return l.mapping }

// Count returns the number of stored colors.
func (l *ColorLayer) Count() int { return len(l.data) / 4 }

// Value resolves the vertex color for triangle vertex tvi.
func (l *ColorLayer) Value(tris *Triangles, tvi int) (common.ColorRGBA, error) {
	i, err := resolveContentIndex(l.mapping, l.index, l.Count(), tris, tvi)
	if err != nil {
		return common.ColorRGBA{}, err
	}
	return common.ColorRGBA{
		R: l.data[i*4],
		G: l.data[i*4+1],
		B: l.data[i*4+2],
		A: l.data[i*4+3],
	}, nil
}
