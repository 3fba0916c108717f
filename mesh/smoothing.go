package mesh

import "fmt"

// SmoothingLayer is a decoded "LayerElementSmoothing" element. Per-edge and
// per-polygon layers store boolean smoothing flags; per-polygon-vertex layers
// store smoothing group bitmasks. Both spell their entries as int32.
type SmoothingLayer struct {
	elem    LayerElement
	mapping MappingMode
	values  []int32
}

// AsSmoothing decodes a "LayerElementSmoothing" element.
func (e LayerElement) AsSmoothing() (*SmoothingLayer, error) {
	if e.TypeName() != "LayerElementSmoothing" {
		return nil, fmt.Errorf("not a LayerElementSmoothing element: got %s", e.TypeName())
	}
	values, ok, err := e.int32Array("Smoothing")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("LayerElementSmoothing: child node %q not found", "Smoothing")
	}
	mapping, err := e.MappingMode()
	if err != nil {
		return nil, err
	}
	if _, err := e.ReferenceMode(); err != nil {
		return nil, err
	}
	return &SmoothingLayer{elem: e, mapping: mapping, values: values}, nil
}

// Element returns the generic layer element handle.
func (l *SmoothingLayer) Element() LayerElement { return l.elem }

// MappingMode returns the layer's mapping mode.
func (l *SmoothingLayer) MappingMode() MappingMode { return l.mapping }

// Count returns the number of stored smoothing entries.
func (l *SmoothingLayer) Count() int { return len(l.values) }

// Value resolves the raw smoothing entry for triangle vertex tvi.
func (l *SmoothingLayer) Value(tris *Triangles, tvi int) (int32, error) {
	i, err := resolveContentIndex(l.mapping, nil, len(l.values), tris, tvi)
	if err != nil {
		return 0, err
	}
	return l.values[i], nil
}

// Smoothed reports whether the entry for triangle vertex tvi is nonzero.
func (l *SmoothingLayer) Smoothed(tris *Triangles, tvi int) (bool, error) {
	v, err := l.Value(tris, tvi)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
