package mesh

import "fmt"

// VisibilityLayer is a decoded "LayerElementVisibility" element holding one
// boolean per mapped entry, usually per edge.
type VisibilityLayer struct {
	elem    LayerElement
	mapping MappingMode
	values  []bool
}

// AsVisibility decodes a "LayerElementVisibility" element.
func (e LayerElement) AsVisibility() (*VisibilityLayer, error) {
	if e.TypeName() != "LayerElementVisibility" {
		return nil, fmt.Errorf("not a LayerElementVisibility element: got %s", e.TypeName())
	}
	values, ok, err := e.boolArray("Visibility")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("LayerElementVisibility: child node %q not found", "Visibility")
	}
	mapping, err := e.MappingMode()
	if err != nil {
		return nil, err
	}
	if _, err := e.ReferenceMode(); err != nil {
		return nil, err
	}
	return &VisibilityLayer{elem: e, mapping: mapping, values: values}, nil
}

// Element returns the generic layer element handle.
func (l *VisibilityLayer) Element() LayerElement { return l.elem }

// MappingMode returns the layer's mapping mode.
func (l *VisibilityLayer) MappingMode() MappingMode { return l.mapping }

// Count returns the number of stored visibility entries.
func (l *VisibilityLayer) Count() int { return len(l.values) }

// Value resolves the visibility flag for triangle vertex tvi.
func (l *VisibilityLayer) Value(tris *Triangles, tvi int) (bool, error) {
	i, err := resolveContentIndex(l.mapping, nil, len(l.values), tris, tvi)
	if err != nil {
		return false, err
	}
	return l.values[i], nil
}
