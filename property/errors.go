package property

import "fmt"

// LoadErrorKind classifies why a property value failed to load into the
// requested type.
type LoadErrorKind int

const (
	// TypeMismatch means the raw value's type cannot produce the target type.
	TypeMismatch LoadErrorKind = iota
	// OutOfRange means the raw value does not fit the target's domain.
	OutOfRange
	// UnrecognizedVariant means an enum token (string or integer) is not in
	// the enum's lookup table.
	UnrecognizedVariant
	// ArityMismatch means a composite target (vector, color) found the wrong
	// number of components.
	ArityMismatch
)

// String returns a short name for the kind, for error messages.
func (k LoadErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case OutOfRange:
		return "out of range"
	case UnrecognizedVariant:
		return "unrecognized variant"
	case ArityMismatch:
		return "arity mismatch"
	default:
		return "unknown"
	}
}

// LoadError is a local, recoverable failure scoped to a single property load.
// It never aborts unrelated queries; callers decide fallback policy.
type LoadError struct {
	// Kind classifies the failure.
	Kind LoadErrorKind
	// Target names the requested target type or enum.
	Target string
	// Detail describes what was actually found.
	Detail string
}

// NewLoadError creates a LoadError. It is exported so higher layers (enum
// loaders in the DOM, for example) can report failures in the same taxonomy.
func NewLoadError(kind LoadErrorKind, target, detail string) *LoadError {
	return &LoadError{Kind: kind, Target: target, Detail: detail}
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("property load failed (%s): want %s, %s", e.Kind, e.Target, e.Detail)
}
