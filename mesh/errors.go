package mesh

import "fmt"

// IndexError is a local, recoverable failure scoped to one mesh element: a
// control-point, polygon-vertex or layer index that falls outside its array.
// A caller decoding many polygons can skip or report the offending one and
// continue; an IndexError never invalidates unrelated queries.
type IndexError struct {
	// What names the array that was indexed.
	What string
	// Index is the offending index value.
	Index int
	// Len is the length of the indexed array.
	Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (length %d)", e.What, e.Index, e.Len)
}

// indexErr builds an IndexError.
func indexErr(what string, index, length int) error {
	return &IndexError{What: what, Index: index, Len: length}
}
