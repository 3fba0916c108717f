package tree

import "fmt"

// AttributeType identifies the primitive type stored in an Attribute.
type AttributeType int

const (
	// AttributeNone is the zero value; no attribute holds it.
	AttributeNone AttributeType = iota
	// AttributeBool is a single boolean value.
	AttributeBool
	// AttributeInt16 is a single 16-bit signed integer.
	AttributeInt16
	// AttributeInt32 is a single 32-bit signed integer.
	AttributeInt32
	// AttributeInt64 is a single 64-bit signed integer.
	AttributeInt64
	// AttributeFloat32 is a single 32-bit float.
	AttributeFloat32
	// AttributeFloat64 is a single 64-bit float.
	AttributeFloat64
	// AttributeString is a string value.
	AttributeString
	// AttributeBytes is a raw binary blob.
	AttributeBytes
	// AttributeBoolSlice is an array of booleans.
	AttributeBoolSlice
	// AttributeInt32Slice is an array of 32-bit signed integers.
	AttributeInt32Slice
	// AttributeInt64Slice is an array of 64-bit signed integers.
	AttributeInt64Slice
	// AttributeFloat32Slice is an array of 32-bit floats.
	AttributeFloat32Slice
	// AttributeFloat64Slice is an array of 64-bit floats.
	AttributeFloat64Slice
)

// String returns a short name for the attribute type, for error messages.
func (t AttributeType) String() string {
	switch t {
	case AttributeBool:
		return "bool"
	case AttributeInt16:
		return "int16"
	case AttributeInt32:
		return "int32"
	case AttributeInt64:
		return "int64"
	case AttributeFloat32:
		return "float32"
	case AttributeFloat64:
		return "float64"
	case AttributeString:
		return "string"
	case AttributeBytes:
		return "bytes"
	case AttributeBoolSlice:
		return "[]bool"
	case AttributeInt32Slice:
		return "[]int32"
	case AttributeInt64Slice:
		return "[]int64"
	case AttributeFloat32Slice:
		return "[]float32"
	case AttributeFloat64Slice:
		return "[]float64"
	default:
		return "none"
	}
}

// Attribute is a single typed node attribute. It is a tagged union over the
// primitive and array types the binary format can encode. The zero value has
// type AttributeNone and yields no value from any getter.
type Attribute struct {
	value any
}

// newAttribute wraps a Go value into an Attribute, validating that the
// dynamic type is one of the supported primitives. int and uint variants are
// normalized so callers building trees by hand can pass untyped constants.
func newAttribute(v any) (Attribute, error) {
	switch tv := v.(type) {
	case bool, int16, int32, int64, float32, float64, string, []byte,
		[]bool, []int32, []int64, []float32, []float64:
		return Attribute{value: v}, nil
	case int:
		return Attribute{value: int64(tv)}, nil
	case Attribute:
		return tv, nil
	default:
		return Attribute{}, fmt.Errorf("unsupported attribute value type %T", v)
	}
}

// Type returns the attribute's type tag.
func (a Attribute) Type() AttributeType {
	switch a.value.(type) {
	case bool:
		return AttributeBool
	case int16:
		return AttributeInt16
	case int32:
		return AttributeInt32
	case int64:
		return AttributeInt64
	case float32:
		return AttributeFloat32
	case float64:
		return AttributeFloat64
	case string:
		return AttributeString
	case []byte:
		return AttributeBytes
	case []bool:
		return AttributeBoolSlice
	case []int32:
		return AttributeInt32Slice
	case []int64:
		return AttributeInt64Slice
	case []float32:
		return AttributeFloat32Slice
	case []float64:
		return AttributeFloat64Slice
	default:
		return AttributeNone
	}
}

// Value returns the underlying value as an untyped interface.
func (a Attribute) Value() any { return a.value }

// Bool returns the boolean value, if the attribute holds one.
func (a Attribute) Bool() (bool, bool) {
	v, ok := a.value.(bool)
	return v, ok
}

// Int16 returns the int16 value, if the attribute holds one.
func (a Attribute) Int16() (int16, bool) {
	v, ok := a.value.(int16)
	return v, ok
}

// Int32 returns the int32 value, if the attribute holds one.
func (a Attribute) Int32() (int32, bool) {
	v, ok := a.value.(int32)
	return v, ok
}

// Int64 returns the int64 value, if the attribute holds one.
func (a Attribute) Int64() (int64, bool) {
	v, ok := a.value.(int64)
	return v, ok
}

// Float32 returns the float32 value, if the attribute holds one.
func (a Attribute) Float32() (float32, bool) {
	v, ok := a.value.(float32)
	return v, ok
}

// Float64 returns the float64 value, if the attribute holds one.
func (a Attribute) Float64() (float64, bool) {
	v, ok := a.value.(float64)
	return v, ok
}

// Text returns the string value, if the attribute holds one.
func (a Attribute) Text() (string, bool) {
	v, ok := a.value.(string)
	return v, ok
}

// Bytes returns the raw binary value, if the attribute holds one.
func (a Attribute) Bytes() ([]byte, bool) {
	v, ok := a.value.([]byte)
	return v, ok
}

// BoolSlice returns the boolean array value, if the attribute holds one.
func (a Attribute) BoolSlice() ([]bool, bool) {
	v, ok := a.value.([]bool)
	return v, ok
}

// Int32Slice returns the int32 array value, if the attribute holds one.
func (a Attribute) Int32Slice() ([]int32, bool) {
	v, ok := a.value.([]int32)
	return v, ok
}

// Int64Slice returns the int64 array value, if the attribute holds one.
func (a Attribute) Int64Slice() ([]int64, bool) {
	v, ok := a.value.([]int64)
	return v, ok
}

// Float32Slice returns the float32 array value, if the attribute holds one.
func (a Attribute) Float32Slice() ([]float32, bool) {
	v, ok := a.value.([]float32)
	return v, ok
}

// Float64Slice returns the float64 array value, if the attribute holds one.
func (a Attribute) Float64Slice() ([]float64, bool) {
	v, ok := a.value.([]float64)
	return v, ok
}
