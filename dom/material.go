package dom

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/common"
	"github.com/Carmen-Shannon/fbx-go/property"
)

// ShadingModel is a material's shading model.
type ShadingModel int

const (
	// ShadingUnknown is any unrecognized shading model string.
	ShadingUnknown ShadingModel = iota
	// ShadingLambert is the "Lambert" shading model.
	ShadingLambert
	// ShadingPhong is the "Phong" shading model.
	ShadingPhong
)

// String returns the shading model name.
func (s ShadingModel) String() string {
	switch s {
	case ShadingLambert:
		return "Lambert"
	case ShadingPhong:
		return "Phong"
	default:
		return "Unknown"
	}
}

// ParseShadingModel maps a shading model string to its enum value. The table
// is fixed; an unrecognized string is a load error, never a silent default,
// and callers decide fallback policy. The literal "Unknown" is the only
// spelling of ShadingUnknown.
func ParseShadingModel(s string) (ShadingModel, error) {
	switch s {
	case "Unknown":
		return ShadingUnknown, nil
	case "Lambert":
		return ShadingLambert, nil
	case "Phong":
		return ShadingPhong, nil
	default:
		return ShadingUnknown, property.NewLoadError(property.UnrecognizedVariant,
			"ShadingModel", fmt.Sprintf("got %q", s))
	}
}

// Material texture channel labels. A texture serves a material through a
// labeled connection carrying one of these.
const (
	ChannelDiffuseColor     = "DiffuseColor"
	ChannelNormalMap        = "NormalMap"
	ChannelSpecularColor    = "SpecularColor"
	ChannelEmissiveColor    = "EmissiveColor"
	ChannelTransparentColor = "TransparentColor"
)

// Material is the typed handle for surface materials (class "Material").
type Material struct {
	object Object
}

// Kind returns KindMaterial.
func (m Material) Kind() ObjectKind { return KindMaterial }

// AsObject returns the untyped handle.
func (m Material) AsObject() Object { return m.object }

// ID returns the material's object ID.
func (m Material) ID() ObjectID { return m.object.ID() }

// Name returns the material's display name.
func (m Material) Name() string { return m.object.Name() }

// Properties returns the material's property table.
func (m Material) Properties() property.Properties { return m.object.Properties() }

// ShadingModel returns the material's shading model.
//
// Returns:
//   - ShadingModel: the parsed model, valid only on a nil error.
//   - bool: whether the "ShadingModel" property exists.
//   - error: a *property.LoadError when the property exists but is not a
//     string, or holds an unrecognized model string.
func (m Material) ShadingModel() (ShadingModel, bool, error) {
	h, ok := m.Properties().Get("ShadingModel")
	if !ok {
		return ShadingUnknown, false, nil
	}
	var s string
	if err := h.Load(&s); err != nil {
		return ShadingUnknown, true, err
	}
	sm, err := ParseShadingModel(s)
	if err != nil {
		return ShadingUnknown, true, err
	}
	return sm, true, nil
}

// DiffuseColor returns the material's "DiffuseColor" property.
func (m Material) DiffuseColor() (common.ColorRGB, bool, error) {
	return m.colorProp("DiffuseColor")
}

// SpecularColor returns the material's "SpecularColor" property.
func (m Material) SpecularColor() (common.ColorRGB, bool, error) {
	return m.colorProp("SpecularColor")
}

// EmissiveColor returns the material's "EmissiveColor" property.
func (m Material) EmissiveColor() (common.ColorRGB, bool, error) {
	return m.colorProp("EmissiveColor")
}

// AmbientColor returns the material's "AmbientColor" property.
func (m Material) AmbientColor() (common.ColorRGB, bool, error) {
	return m.colorProp("AmbientColor")
}

// colorProp loads an RGB color property by name.
func (m Material) colorProp(name string) (common.ColorRGB, bool, error) {
	h, ok := m.Properties().Get(name)
	if !ok {
		return common.ColorRGB{}, false, nil
	}
	var c common.ColorRGB
	if err := h.Load(&c); err != nil {
		return common.ColorRGB{}, true, err
	}
	return c, true, nil
}

// DiffuseTexture returns the texture connected on the diffuse color channel.
//
// Returns:
//   - Texture: the texture handle, valid only when found.
//   - bool: whether such a texture is connected.
func (m Material) DiffuseTexture() (Texture, bool) {
	return m.textureByChannel(ChannelDiffuseColor)
}

// NormalMapTexture returns the texture connected on the normal map channel.
func (m Material) NormalMapTexture() (Texture, bool) {
	return m.textureByChannel(ChannelNormalMap)
}

// SpecularTexture returns the texture connected on the specular color
// channel.
func (m Material) SpecularTexture() (Texture, bool) {
	return m.textureByChannel(ChannelSpecularColor)
}

// EmissiveTexture returns the texture connected on the emissive color
// channel.
func (m Material) EmissiveTexture() (Texture, bool) {
	return m.textureByChannel(ChannelEmissiveColor)
}

// TransparentTexture returns the texture connected on the transparent color
// channel.
func (m Material) TransparentTexture() (Texture, bool) {
	return m.textureByChannel(ChannelTransparentColor)
}

// TextureByChannel returns the first texture connected into this material
// with the given channel label.
func (m Material) TextureByChannel(channel string) (Texture, bool) {
	return m.textureByChannel(channel)
}

func (m Material) textureByChannel(channel string) (Texture, bool) {
	for _, obj := range m.object.ChildrenByLabel(channel) {
		if t, ok := Classify(obj).(Texture); ok {
			return t, true
		}
	}
	return Texture{}, false
}
