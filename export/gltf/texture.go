package gltf

import (
	"bytes"

	qgltf "github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Carmen-Shannon/fbx-go/dom"
)

// writeMaterial writes one material into the output document, reusing
// already-written materials by object ID. Failures on the texture path
// degrade to an untextured material; only the base color is required.
func (e *exporter) writeMaterial(out *qgltf.Document, mat dom.Material, cache map[dom.ObjectID]int) (int, error) {
	if idx, ok := cache[mat.ID()]; ok {
		return idx, nil
	}

	gm := &qgltf.Material{
		Name: mat.Name(),
		PBRMetallicRoughness: &qgltf.PBRMetallicRoughness{
			MetallicFactor:  qgltf.Float(0),
			RoughnessFactor: qgltf.Float(1),
		},
	}
	if c, ok, err := mat.DiffuseColor(); ok && err == nil {
		gm.PBRMetallicRoughness.BaseColorFactor = &[4]float64{c.R, c.G, c.B, 1}
	}

	if e.embedTextures {
		if texIndex, ok := e.writeDiffuseTexture(out, mat); ok {
			gm.PBRMetallicRoughness.BaseColorTexture = &qgltf.TextureInfo{Index: texIndex}
		}
	}

	out.Materials = append(out.Materials, gm)
	idx := len(out.Materials) - 1
	cache[mat.ID()] = idx
	return idx, nil
}

// writeDiffuseTexture embeds the material's diffuse texture content, when a
// texture with an embedded video clip is connected and its bytes are a
// recognizable image format.
func (e *exporter) writeDiffuseTexture(out *qgltf.Document, mat dom.Material) (int, bool) {
	tex, ok := mat.DiffuseTexture()
	if !ok {
		return 0, false
	}
	video, ok := tex.Video()
	if !ok {
		return 0, false
	}
	content, ok := video.Content()
	if !ok {
		return 0, false
	}
	mimeType, ok := sniffImageMIME(content)
	if !ok {
		return 0, false
	}
	imageIndex, err := modeler.WriteImage(out, tex.Name(), mimeType, bytes.NewReader(content))
	if err != nil {
		return 0, false
	}

	sampler := &qgltf.Sampler{
		WrapS: wrapToGLTF(tex.WrapModeU),
		WrapT: wrapToGLTF(tex.WrapModeV),
	}
	out.Samplers = append(out.Samplers, sampler)
	samplerIndex := len(out.Samplers) - 1

	out.Textures = append(out.Textures, &qgltf.Texture{
		Source:  qgltf.Index(imageIndex),
		Sampler: qgltf.Index(samplerIndex),
	})
	return len(out.Textures) - 1, true
}

// wrapToGLTF maps a wrap mode property accessor to the glTF wrapping enum.
// Absent or malformed wrap modes fall back to repeat, the format default.
func wrapToGLTF(get func() (dom.WrapMode, bool, error)) qgltf.WrappingMode {
	mode, ok, err := get()
	if !ok || err != nil {
		return qgltf.WrapRepeat
	}
	if mode == dom.WrapClamp {
		return qgltf.WrapClampToEdge
	}
	return qgltf.WrapRepeat
}

// sniffImageMIME recognizes the embedded image formats glTF can carry.
func sniffImageMIME(data []byte) (string, bool) {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "image/png", true
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg", true
	default:
		return "", false
	}
}
