package property

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/common"
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// Handle is a read-only view of a single "P" property node. A P node carries
// four metadata attributes (name, typename, label, flags) followed by the
// property value.
type Handle struct {
	tree *tree.Tree
	node tree.NodeID
}

// NewHandle creates a property handle for the given "P" node. Most callers
// obtain handles through Properties.Get instead.
func NewHandle(t *tree.Tree, node tree.NodeID) Handle {
	return Handle{tree: t, node: node}
}

// Node returns the underlying tree node ID.
func (h Handle) Node() tree.NodeID { return h.node }

// metaString returns the string metadata attribute at position i, or "".
func (h Handle) metaString(i int) string {
	a, ok := h.tree.Attribute(h.node, i)
	if !ok {
		return ""
	}
	s, _ := a.Text()
	return s
}

// Name returns the property name.
func (h Handle) Name() string { return h.metaString(0) }

// TypeName returns the property type name, e.g. "Color" or "enum".
func (h Handle) TypeName() string { return h.metaString(1) }

// Label returns the property label.
func (h Handle) Label() string { return h.metaString(2) }

// Flags returns the property flags string.
func (h Handle) Flags() string { return h.metaString(3) }

// Raw returns the value part of the property node's attributes (everything
// after the four metadata attributes). The slice is owned by the tree.
func (h Handle) Raw() []tree.Attribute {
	attrs := h.tree.Attributes(h.node)
	if len(attrs) < 4 {
		return nil
	}
	return attrs[4:]
}

// Unmarshaler is implemented by target types that know how to decode
// themselves from a raw property value. Load dispatches to it before its
// built-in target types, so user code can extend the loader set without
// touching this package.
type Unmarshaler interface {
	// UnmarshalProperty decodes the receiver from the given property.
	UnmarshalProperty(h Handle) error
}

// Load decodes the property value into dst, which must be a pointer to a
// supported target type or an Unmarshaler. It never panics on malformed
// input; failures are reported as *LoadError.
//
// Supported targets: *bool, *int32, *int64, *float32, *float64, *string,
// *[]byte, *[]int32, *[]int64, *[]float32, *[]float64, *common.Vector2,
// *common.Vector3, *common.ColorRGB, *common.ColorRGBA.
//
// Integer and float widening follows the format's conventions: booleans load
// from integers, int32 from int16, int64 from any smaller integer, float64
// from float32 and vice versa. No other coercions happen; in particular a
// string value never silently converts to a number.
//
// Parameters:
//   - dst: pointer to the load target
//
// Returns:
//   - error: nil on success, *LoadError on a failed load
func (h Handle) Load(dst any) error {
	if u, ok := dst.(Unmarshaler); ok {
		return u.UnmarshalProperty(h)
	}

	switch out := dst.(type) {
	case *bool:
		return h.loadBool(out)
	case *int32:
		return h.loadInt32(out)
	case *int64:
		return h.loadInt64(out)
	case *float32:
		return h.loadFloat32(out)
	case *float64:
		return h.loadFloat64(out)
	case *string:
		return h.loadString(out)
	case *[]byte:
		return h.loadBytes(out)
	case *[]int32:
		return h.loadInt32Slice(out)
	case *[]int64:
		return h.loadInt64Slice(out)
	case *[]float32:
		return h.loadFloat32Slice(out)
	case *[]float64:
		return h.loadFloat64Slice(out)
	case *common.Vector2:
		c, err := h.components("common.Vector2", 2)
		if err != nil {
			return err
		}
		*out = common.Vector2{X: c[0], Y: c[1]}
		return nil
	case *common.Vector3:
		c, err := h.components("common.Vector3", 3)
		if err != nil {
			return err
		}
		*out = common.Vector3{X: c[0], Y: c[1], Z: c[2]}
		return nil
	case *common.ColorRGB:
		c, err := h.components("common.ColorRGB", 3)
		if err != nil {
			return err
		}
		*out = common.ColorRGB{R: c[0], G: c[1], B: c[2]}
		return nil
	case *common.ColorRGBA:
		c, err := h.components("common.ColorRGBA", 4)
		if err != nil {
			return err
		}
		*out = common.ColorRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
		return nil
	default:
		return NewLoadError(TypeMismatch, fmt.Sprintf("%T", dst), "unsupported load target type")
	}
}

// single returns the sole value attribute, or a LoadError when the value part
// does not consist of exactly one attribute.
func (h Handle) single(target string) (tree.Attribute, error) {
	raw := h.Raw()
	if len(raw) != 1 {
		return tree.Attribute{}, NewLoadError(TypeMismatch, target,
			fmt.Sprintf("got %d value attributes", len(raw)))
	}
	return raw[0], nil
}

func (h Handle) loadBool(out *bool) error {
	a, err := h.single("bool")
	if err != nil {
		return err
	}
	switch a.Type() {
	case tree.AttributeBool:
		*out, _ = a.Bool()
	case tree.AttributeInt16:
		v, _ := a.Int16()
		*out = v != 0
	case tree.AttributeInt32:
		v, _ := a.Int32()
		*out = v != 0
	case tree.AttributeInt64:
		v, _ := a.Int64()
		*out = v != 0
	default:
		return NewLoadError(TypeMismatch, "bool", fmt.Sprintf("got %s", a.Type()))
	}
	return nil
}

func (h Handle) loadInt32(out *int32) error {
	a, err := h.single("int32")
	if err != nil {
		return err
	}
	switch a.Type() {
	case tree.AttributeInt16:
		v, _ := a.Int16()
		*out = int32(v)
	case tree.AttributeInt32:
		*out, _ = a.Int32()
	default:
		return NewLoadError(TypeMismatch, "int32", fmt.Sprintf("got %s", a.Type()))
	}
	return nil
}

func (h Handle) loadInt64(out *int64) error {
	a, err := h.single("int64")
	if err != nil {
		return err
	}
	switch a.Type() {
	case tree.AttributeInt16:
		v, _ := a.Int16()
		*out = int64(v)
	case tree.AttributeInt32:
		v, _ := a.Int32()
		*out = int64(v)
	case tree.AttributeInt64:
		*out, _ = a.Int64()
	default:
		return NewLoadError(TypeMismatch, "int64", fmt.Sprintf("got %s", a.Type()))
	}
	return nil
}

func (h Handle) loadFloat32(out *float32) error {
	a, err := h.single("float32")
	if err != nil {
		return err
	}
	switch a.Type() {
	case tree.AttributeFloat32:
		*out, _ = a.Float32()
	case tree.AttributeFloat64:
		v, _ := a.Float64()
		*out = float32(v)
	default:
		return NewLoadError(TypeMismatch, "float32", fmt.Sprintf("got %s", a.Type()))
	}
	return nil
}

func (h Handle) loadFloat64(out *float64) error {
	a, err := h.single("float64")
	if err != nil {
		return err
	}
	switch a.Type() {
	case tree.AttributeFloat32:
		v, _ := a.Float32()
		*out = float64(v)
	case tree.AttributeFloat64:
		*out, _ = a.Float64()
	default:
		return NewLoadError(TypeMismatch, "float64", fmt.Sprintf("got %s", a.Type()))
	}
	return nil
}

func (h Handle) loadString(out *string) error {
	a, err := h.single("string")
	if err != nil {
		return err
	}
	v, ok := a.Text()
	if !ok {
		return NewLoadError(TypeMismatch, "string", fmt.Sprintf("got %s", a.Type()))
	}
	*out = v
	return nil
}

func (h Handle) loadBytes(out *[]byte) error {
	a, err := h.single("bytes")
	if err != nil {
		return err
	}
	v, ok := a.Bytes()
	if !ok {
		return NewLoadError(TypeMismatch, "bytes", fmt.Sprintf("got %s", a.Type()))
	}
	*out = v
	return nil
}

func (h Handle) loadInt32Slice(out *[]int32) error {
	a, err := h.single("[]int32")
	if err != nil {
		return err
	}
	v, ok := a.Int32Slice()
	if !ok {
		return NewLoadError(TypeMismatch, "[]int32", fmt.Sprintf("got %s", a.Type()))
	}
	*out = v
	return nil
}

func (h Handle) loadInt64Slice(out *[]int64) error {
	a, err := h.single("[]int64")
	if err != nil {
		return err
	}
	v, ok := a.Int64Slice()
	if !ok {
		return NewLoadError(TypeMismatch, "[]int64", fmt.Sprintf("got %s", a.Type()))
	}
	*out = v
	return nil
}

func (h Handle) loadFloat32Slice(out *[]float32) error {
	a, err := h.single("[]float32")
	if err != nil {
		return err
	}
	v, ok := a.Float32Slice()
	if !ok {
		return NewLoadError(TypeMismatch, "[]float32", fmt.Sprintf("got %s", a.Type()))
	}
	*out = v
	return nil
}

func (h Handle) loadFloat64Slice(out *[]float64) error {
	a, err := h.single("[]float64")
	if err != nil {
		return err
	}
	v, ok := a.Float64Slice()
	if !ok {
		return NewLoadError(TypeMismatch, "[]float64", fmt.Sprintf("got %s", a.Type()))
	}
	*out = v
	return nil
}

// components loads an n-component float composite. The format encodes these
// either as n scalar attributes or as a single float array attribute, and
// both spellings are accepted.
func (h Handle) components(target string, n int) ([]float64, error) {
	raw := h.Raw()

	if len(raw) == 1 {
		if arr, ok := raw[0].Float64Slice(); ok {
			if len(arr) != n {
				return nil, NewLoadError(ArityMismatch, target,
					fmt.Sprintf("got %d array elements", len(arr)))
			}
			out := make([]float64, n)
			copy(out, arr)
			return out, nil
		}
		if arr, ok := raw[0].Float32Slice(); ok {
			if len(arr) != n {
				return nil, NewLoadError(ArityMismatch, target,
					fmt.Sprintf("got %d array elements", len(arr)))
			}
			out := make([]float64, n)
			for i, v := range arr {
				out[i] = float64(v)
			}
			return out, nil
		}
	}

	if len(raw) != n {
		return nil, NewLoadError(ArityMismatch, target,
			fmt.Sprintf("got %d value attributes", len(raw)))
	}
	out := make([]float64, n)
	for i, a := range raw {
		switch a.Type() {
		case tree.AttributeFloat32:
			v, _ := a.Float32()
			out[i] = float64(v)
		case tree.AttributeFloat64:
			out[i], _ = a.Float64()
		default:
			return nil, NewLoadError(TypeMismatch, target,
				fmt.Sprintf("component %d is %s", i, a.Type()))
		}
	}
	return out, nil
}
