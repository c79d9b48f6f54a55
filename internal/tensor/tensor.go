// Package tensor implements the numeric containers for the Forge ML Framework.
//
// A Tensor is a rank 1-4 container of float64 values stored contiguously in
// row-major order. Tensors are value-like: layers own their parameter tensors
// and copy data in rather than retaining caller slices, with one deliberate
// exception — Data returns the live backing slice so that an optimizer can
// adjust parameters in place (see the nn and optim packages).
//
// The dense linear algebra (matrix product) is delegated to gonum; everything
// else is simple flat-slice arithmetic.
package tensor

import "fmt"

// Tensor is a rank 1-4 numeric container with row-major storage.
type Tensor struct {
	shape Shape
	data  []float64
}

// New creates a zero-filled tensor with the given shape.
//
// Panics if the shape is invalid (rank outside 1-4 or a negative axis);
// shapes are decided at construction time and a bad one is programmer error.
func New(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor.New: %v", err))
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}
}

// Shape returns the tensor's shape. The returned slice must not be mutated.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Rank returns the number of axes.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of stored values.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the flat row-major backing slice.
//
// This is an aliased, mutable view: writes through it are observed by every
// holder of the tensor. The optimizer depends on exactly this to update layer
// parameters in place.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns the value at the given multi-dimensional index.
//
// Panics if the number of indices does not match the rank or an index is out
// of bounds.
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.flatIndex(indices)]
}

// Set stores a value at the given multi-dimensional index.
//
// Panics if the number of indices does not match the rank or an index is out
// of bounds.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.flatIndex(indices)] = value
}

// flatIndex converts a multi-dimensional index to a flat offset.
func (t *Tensor) flatIndex(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: index rank %d does not match tensor rank %d", len(indices), len(t.shape)))
	}
	flat := 0
	stride := 1
	for i := len(t.shape) - 1; i >= 0; i-- {
		idx := indices[i]
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of bounds for axis %d (size %d)", idx, i, t.shape[i]))
		}
		flat += idx * stride
		stride *= t.shape[i]
	}
	return flat
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		shape: t.shape.Clone(),
		data:  make([]float64, len(t.data)),
	}
	copy(c.data, t.data)
	return c
}

// CopyFrom overwrites this tensor's values with those of src.
//
// Returns a ShapeError if the shapes differ. The backing slice identity is
// preserved, so aliased views (and any optimizer holding them) stay valid.
func (t *Tensor) CopyFrom(src *Tensor) error {
	if !t.shape.Equal(src.shape) {
		return NewShapeError("tensor.copy", t.shape, src.shape)
	}
	copy(t.data, src.data)
	return nil
}

// Fill sets every element to the given value.
func (t *Tensor) Fill(value float64) {
	for i := range t.data {
		t.data[i] = value
	}
}

// String returns a short description like Tensor[2 3].
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", t.shape)
}
