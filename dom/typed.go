package dom

// ObjectKind identifies which typed handle Classify produced.
type ObjectKind int

const (
	// KindUnknown is any object class without a dedicated handle.
	KindUnknown ObjectKind = iota
	// KindModel is a scene-graph node (class "Model").
	KindModel
	// KindGeometry is geometry data (class "Geometry").
	KindGeometry
	// KindMaterial is a surface material (class "Material").
	KindMaterial
	// KindTexture is a texture reference (class "Texture").
	KindTexture
	// KindVideo is embedded or referenced media (class "Video").
	KindVideo
	// KindDeformer is a deformer such as a skin (class "Deformer").
	KindDeformer
	// KindSubDeformer is a deformer component such as a cluster (class
	// "SubDeformer").
	KindSubDeformer
	// KindNodeAttribute is extra per-model data (class "NodeAttribute").
	KindNodeAttribute
)

// String returns the kind name.
func (k ObjectKind) String() string {
	switch k {
	case KindModel:
		return "Model"
	case KindGeometry:
		return "Geometry"
	case KindMaterial:
		return "Material"
	case KindTexture:
		return "Texture"
	case KindVideo:
		return "Video"
	case KindDeformer:
		return "Deformer"
	case KindSubDeformer:
		return "SubDeformer"
	case KindNodeAttribute:
		return "NodeAttribute"
	default:
		return "Unknown"
	}
}

// TypedObject is the common interface of all typed object handles. Every
// object classifies to exactly one typed handle; unrecognized classes get
// the Unknown fallback, so dispatch is total and never fails.
type TypedObject interface {
	// Kind identifies the concrete handle type.
	Kind() ObjectKind
	// AsObject returns the untyped handle the typed one wraps.
	AsObject() Object
}

// Classify wraps an object in its class-specific typed handle. Objects with
// an unrecognized class wrap in Unknown; classification itself never fails,
// even if the object's payload later turns out malformed.
func Classify(o Object) TypedObject {
	switch o.Class() {
	case "Model":
		return Model{object: o}
	case "Geometry":
		return Geometry{object: o}
	case "Material":
		return Material{object: o}
	case "Texture":
		return Texture{object: o}
	case "Video":
		return Video{object: o}
	case "Deformer":
		return Deformer{object: o}
	case "SubDeformer":
		return SubDeformer{object: o}
	case "NodeAttribute":
		return NodeAttribute{object: o}
	default:
		return Unknown{object: o}
	}
}

// Unknown is the fallback typed handle for object classes without dedicated
// support. It still exposes the generic object surface.
type Unknown struct {
	object Object
}

// Kind returns KindUnknown.
func (u Unknown) Kind() ObjectKind { return KindUnknown }

// AsObject returns the untyped handle.
func (u Unknown) AsObject() Object { return u.object }
