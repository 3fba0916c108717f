package mesh

import "fmt"

// MaterialLayer is a decoded "LayerElementMaterial" element. Its "Materials"
// array holds material slot indices directly; by format convention the
// reference mode reads IndexToDirect because the material objects themselves
// are the direct data, living outside the geometry node.
type MaterialLayer struct {
	elem    LayerElement
	mapping MappingMode
	indices []int32
}

// AsMaterials decodes a "LayerElementMaterial" element.
func (e LayerElement) AsMaterials() (*MaterialLayer, error) {
	if e.TypeName() != "LayerElementMaterial" {
		return nil, fmt.Errorf("not a LayerElementMaterial element: got %s", e.TypeName())
	}
	indices, ok, err := e.int32Array("Materials")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("LayerElementMaterial: child node %q not found", "Materials")
	}
	mapping, err := e.MappingMode()
	if err != nil {
		return nil, err
	}
	if _, err := e.ReferenceMode(); err != nil {
		return nil, err
	}
	return &MaterialLayer{elem: e, mapping: mapping, indices: indices}, nil
}

// Element returns the generic layer element handle.
func (l *MaterialLayer) Element() LayerElement { return l.elem }

// MappingMode returns the layer's mapping mode.
func (l *MaterialLayer) MappingMode() MappingMode { return l.mapping }

// Count returns the number of stored material indices.
func (l *MaterialLayer) Count() int { return len(l.indices) }

// Value resolves the material slot index for triangle vertex tvi. Negative
// stored entries are reported as IndexErrors.
func (l *MaterialLayer) Value(tris *Triangles, tvi int) (int32, error) {
	i, err := resolveContentIndex(l.mapping, nil, len(l.indices), tris, tvi)
	if err != nil {
		return 0, err
	}
	v := l.indices[i]
	if v < 0 {
		return 0, indexErr("material slot", int(v), l.Count())
	}
	return v, nil
}
