// package common contains common types that are used throughout this library. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Vector2 is a 2-component double-precision vector, used for UV coordinates
// and other two-component mesh data.
type Vector2 struct {
	// X is the first component.
	X float64
	// Y is the second component.
	Y float64
}

// Vector3 is a 3-component double-precision vector. FBX stores positions,
// normals, translations and similar values as f64 triplets, so this is the
// natural element type for control points and layer data.
type Vector3 struct {
	// X is the first component.
	X float64
	// Y is the second component.
	Y float64
	// Z is the third component.
	Z float64
}

// ColorRGB is an RGB color with double-precision channels, matching the
// three-component color properties found on material and texture nodes.
type ColorRGB struct {
	// R is the red channel.
	R float64
	// G is the green channel.
	G float64
	// B is the blue channel.
	B float64
}

// ColorRGBA is an RGBA color with double-precision channels.
type ColorRGBA struct {
	// R is the red channel.
	R float64
	// G is the green channel.
	G float64
	// B is the blue channel.
	B float64
	// A is the alpha channel.
	A float64
}
