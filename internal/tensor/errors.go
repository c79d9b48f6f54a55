package tensor

import "fmt"

// ShapeError reports a geometry mismatch at a consuming boundary: an input
// batch whose rows do not match a layer's declared input size, a replacement
// tensor with the wrong dimensions, a gradient that does not mirror its
// parameter, and so on.
//
// It is always raised synchronously at the point of mismatch and surfaced to
// the caller; nothing in this module retries or swallows one.
type ShapeError struct {
	Op   string // Operation that detected the mismatch (e.g., "dense.forward")
	Want Shape  // Expected geometry
	Got  Shape  // Actual geometry
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: expected %v, got %v", e.Op, e.Want, e.Got)
}

// NewShapeError builds a ShapeError for the given operation.
func NewShapeError(op string, want, got Shape) *ShapeError {
	return &ShapeError{Op: op, Want: want.Clone(), Got: got.Clone()}
}
