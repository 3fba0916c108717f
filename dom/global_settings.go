package dom

import (
	"fmt"

	"github.com/Carmen-Shannon/fbx-go/property"
)

// SignedAxis is one of the six signed coordinate axes.
type SignedAxis int

const (
	// AxisPosX is +X.
	AxisPosX SignedAxis = iota
	// AxisNegX is -X.
	AxisNegX
	// AxisPosY is +Y.
	AxisPosY
	// AxisNegY is -Y.
	AxisNegY
	// AxisPosZ is +Z.
	AxisPosZ
	// AxisNegZ is -Z.
	AxisNegZ
)

// String returns the axis name.
func (a SignedAxis) String() string {
	switch a {
	case AxisPosX:
		return "+X"
	case AxisNegX:
		return "-X"
	case AxisPosY:
		return "+Y"
	case AxisNegY:
		return "-Y"
	case AxisPosZ:
		return "+Z"
	case AxisNegZ:
		return "-Z"
	default:
		return fmt.Sprintf("SignedAxis(%d)", int(a))
	}
}

// signedAxis combines a 0..2 axis index with a +1/-1 sign.
func signedAxis(axis, sign int32) (SignedAxis, error) {
	if axis < 0 || axis > 2 {
		return 0, property.NewLoadError(property.OutOfRange, "axis",
			fmt.Sprintf("axis index %d", axis))
	}
	switch sign {
	case 1:
		return SignedAxis(axis * 2), nil
	case -1:
		return SignedAxis(axis*2 + 1), nil
	default:
		return 0, property.NewLoadError(property.OutOfRange, "axis",
			fmt.Sprintf("axis sign %d", sign))
	}
}

// GlobalSettings exposes the document's scene-wide settings: the coordinate
// axis system and the unit scale.
type GlobalSettings struct {
	props property.Properties
}

// Properties returns the raw settings property table.
func (g GlobalSettings) Properties() property.Properties { return g.props }

// UpAxis returns the scene's up axis.
//
// Returns:
//   - SignedAxis: the parsed axis.
//   - error: a *property.LoadError when the axis properties are missing,
//     malformed or out of range.
func (g GlobalSettings) UpAxis() (SignedAxis, error) {
	return g.axis("UpAxis", "UpAxisSign")
}

// FrontAxis returns the scene's front axis.
func (g GlobalSettings) FrontAxis() (SignedAxis, error) {
	return g.axis("FrontAxis", "FrontAxisSign")
}

// CoordAxis returns the scene's third (right-hand) axis.
func (g GlobalSettings) CoordAxis() (SignedAxis, error) {
	return g.axis("CoordAxis", "CoordAxisSign")
}

// axis loads one axis/sign property pair.
func (g GlobalSettings) axis(axisName, signName string) (SignedAxis, error) {
	axis, err := g.int32Prop(axisName)
	if err != nil {
		return 0, err
	}
	sign, err := g.int32Prop(signName)
	if err != nil {
		return 0, err
	}
	return signedAxis(axis, sign)
}

func (g GlobalSettings) int32Prop(name string) (int32, error) {
	h, ok := g.props.Get(name)
	if !ok {
		return 0, property.NewLoadError(property.TypeMismatch, name, "property not found")
	}
	var v int32
	if err := h.Load(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// UnitScaleFactor returns the scene's unit scale in centimeters per unit.
//
// Returns:
//   - float64: the scale factor, 1 when the property is absent.
//   - error: a *property.LoadError when the property exists but is
//     malformed.
func (g GlobalSettings) UnitScaleFactor() (float64, error) {
	h, ok := g.props.Get("UnitScaleFactor")
	if !ok {
		return 1, nil
	}
	var v float64
	if err := h.Load(&v); err != nil {
		return 0, err
	}
	return v, nil
}
