package dom

import (
	"bytes"
	"fmt"
	"image"

	// Register the decoders for the image formats embedded media commonly
	// uses.
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/Carmen-Shannon/fbx-go/property"
)

// Video is the typed handle for media objects (class "Video", typically
// subclass "Clip"). A video either embeds its pixel data in a "Content"
// child node or references an external file.
type Video struct {
	object Object
}

// Kind returns KindVideo.
func (v Video) Kind() ObjectKind { return KindVideo }

// AsObject returns the untyped handle.
func (v Video) AsObject() Object { return v.object }

// ID returns the video's object ID.
func (v Video) ID() ObjectID { return v.object.ID() }

// Name returns the video's display name.
func (v Video) Name() string { return v.object.Name() }

// Properties returns the video's property table.
func (v Video) Properties() property.Properties { return v.object.Properties() }

// FileName returns the video's absolute file name from its "Filename" child
// node. Some exporters spell the node "FileName"; both are accepted.
func (v Video) FileName() (string, bool) {
	if s, ok := v.childString("Filename"); ok {
		return s, true
	}
	return v.childString("FileName")
}

// RelativeFileName returns the video's relative file name.
func (v Video) RelativeFileName() (string, bool) {
	return v.childString("RelativeFilename")
}

func (v Video) childString(name string) (string, bool) {
	node, ok := v.object.doc.tree.FirstChildByName(v.object.meta.node, name)
	if !ok {
		return "", false
	}
	attr, ok := v.object.doc.tree.Attribute(node, 0)
	if !ok {
		return "", false
	}
	return attr.Text()
}

// Content returns the embedded media bytes from the "Content" child node.
//
// Returns:
//   - []byte: the raw embedded bytes, owned by the tree.
//   - bool: whether embedded content is present and non-empty.
func (v Video) Content() ([]byte, bool) {
	node, ok := v.object.doc.tree.FirstChildByName(v.object.meta.node, "Content")
	if !ok {
		return nil, false
	}
	attr, ok := v.object.doc.tree.Attribute(node, 0)
	if !ok {
		return nil, false
	}
	data, ok := attr.Bytes()
	if !ok || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Image decodes the embedded content as an image.
//
// Returns:
//   - image.Image: the decoded image.
//   - error: when no content is embedded or the bytes are not a decodable
//     image.
func (v Video) Image() (image.Image, error) {
	data, ok := v.Content()
	if !ok {
		return nil, fmt.Errorf("video %d: no embedded content", v.ID())
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("video %d: decode embedded content: %w", v.ID(), err)
	}
	return img, nil
}

// Thumbnail decodes the embedded content and scales it down so its longest
// side is at most maxDim pixels. Images already small enough come back
// unscaled.
//
// Parameters:
//   - maxDim: the maximum width or height of the result, in pixels.
//
// Returns:
//   - image.Image: the scaled image.
//   - error: when the content is missing or not decodable.
func (v Video) Thumbnail(maxDim uint) (image.Image, error) {
	img, err := v.Image()
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	if uint(bounds.Dx()) <= maxDim && uint(bounds.Dy()) <= maxDim {
		return img, nil
	}
	return resize.Thumbnail(maxDim, maxDim, img, resize.Lanczos3), nil
}
