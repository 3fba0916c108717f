package dom

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/property"
)

// WrapMode is a texture coordinate wrap mode.
type WrapMode int

const (
	// WrapRepeat tiles the texture (wire value 0).
	WrapRepeat WrapMode = iota
	// WrapClamp clamps coordinates to the edge (wire value 1).
	WrapClamp
)

// String returns the wrap mode name.
func (w WrapMode) String() string {
	if w == WrapClamp {
		return "Clamp"
	}
	return "Repeat"
}

// ParseWrapMode maps a wire value to a WrapMode.
func ParseWrapMode(v int32) (WrapMode, error) {
	switch v {
	case 0:
		return WrapRepeat, nil
	case 1:
		return WrapClamp, nil
	default:
		return 0, property.NewLoadError(property.OutOfRange, "WrapMode",
			fmt.Sprintf("value %d", v))
	}
}

// BlendMode is a texture blend mode.
type BlendMode int

const (
	// BlendTranslucent is wire value 0.
	BlendTranslucent BlendMode = iota
	// BlendAdditive is wire value 1.
	BlendAdditive
	// BlendModulate is wire value 2.
	BlendModulate
	// BlendModulate2 is wire value 3.
	BlendModulate2
	// BlendOver is wire value 4.
	BlendOver
)

// String returns the blend mode name.
func (b BlendMode) String() string {
	switch b {
	case BlendAdditive:
		return "Additive"
	case BlendModulate:
		return "Modulate"
	case BlendModulate2:
		return "Modulate2"
	case BlendOver:
		return "Over"
	default:
		return "Translucent"
	}
}

// ParseBlendMode maps a wire value to a BlendMode.
func ParseBlendMode(v int32) (BlendMode, error) {
	if v < 0 || v > 4 {
		return 0, property.NewLoadError(property.OutOfRange, "BlendMode",
			fmt.Sprintf("value %d", v))
	}
	return BlendMode(v), nil
}

// Texture is the typed handle for texture references (class "Texture").
type Texture struct {
	object Object
}

// Kind returns KindTexture.
func (t Texture) Kind() ObjectKind { return KindTexture }

// AsObject returns the untyped handle.
func (t Texture) AsObject() Object { return t.object }

// ID returns the texture's object ID.
func (t Texture) ID() ObjectID { return t.object.ID() }

// Name returns the texture's display name.
func (t Texture) Name() string { return t.object.Name() }

// Properties returns the texture's property table.
func (t Texture) Properties() property.Properties { return t.object.Properties() }

// FileName returns the texture's absolute file name from its "FileName"
// child node.
func (t Texture) FileName() (string, bool) {
	return t.childString("FileName")
}

// RelativeFileName returns the texture's relative file name from its
// "RelativeFilename" child node.
func (t Texture) RelativeFileName() (string, bool) {
	return t.childString("RelativeFilename")
}

// childString reads the first string attribute of a named child node.
func (t Texture) childString(name string) (string, bool) {
	node, ok := t.object.doc.tree.FirstChildByName(t.object.meta.node, name)
	if !ok {
		return "", false
	}
	attr, ok := t.object.doc.tree.Attribute(node, 0)
	if !ok {
		return "", false
	}
	return attr.Text()
}

// UVSet returns the "UVSet" property naming the UV layer this texture reads.
func (t Texture) UVSet() (string, bool, error) {
	h, ok := t.Properties().Get("UVSet")
	if !ok {
		return "", false, nil
	}
	var s string
	if err := h.Load(&s); err != nil {
		return "", true, err
	}
	return s, true, nil
}

// WrapModeU returns the texture's horizontal wrap mode.
//
// Returns:
//   - WrapMode: the parsed mode, valid only when present and well-formed.
//   - bool: whether the "WrapModeU" property exists.
//   - error: a *property.LoadError for a malformed or out-of-range value.
func (t Texture) WrapModeU() (WrapMode, bool, error) {
	return t.wrapModeProp("WrapModeU")
}

// WrapModeV returns the texture's vertical wrap mode.
func (t Texture) WrapModeV() (WrapMode, bool, error) {
	return t.wrapModeProp("WrapModeV")
}

func (t Texture) wrapModeProp(name string) (WrapMode, bool, error) {
	h, ok := t.Properties().Get(name)
	if !ok {
		return 0, false, nil
	}
	var v int32
	if err := h.Load(&v); err != nil {
		return 0, true, err
	}
	mode, err := ParseWrapMode(v)
	return mode, true, err
}

// BlendMode returns the texture's "CurrentTextureBlendMode" property.
func (t Texture) BlendMode() (BlendMode, bool, error) {
	h, ok := t.Properties().Get("CurrentTextureBlendMode")
	if !ok {
		return 0, false, nil
	}
	var v int32
	if err := h.Load(&v); err != nil {
		return 0, true, err
	}
	mode, err := ParseBlendMode(v)
	return mode, true, err
}

// PremultiplyAlpha returns the texture's "PremultiplyAlpha" property.
func (t Texture) PremultiplyAlpha() (bool, bool, error) {
	h, ok := t.Properties().Get("PremultiplyAlpha")
	if !ok {
		return false, false, nil
	}
	var v bool
	if err := h.Load(&v); err != nil {
		return false, true, err
	}
	return v, true, nil
}

// Video returns the video object holding this texture's pixel data, when one
// is connected.
func (t Texture) Video() (Video, bool) {
	for _, obj := range t.object.Children() {
		if v, ok := Classify(obj).(Video); ok {
			return v, true
		}
	}
	return Video{}, false
}
