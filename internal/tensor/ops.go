package tensor

import (
	"gonum.org/v1/gonum/mat"
)

// MatMul computes the matrix product a x b of two rank-2 tensors.
//
// a must be [m, k] and b [k, n]; the result is a fresh [m, n] tensor.
// The multiplication itself is delegated to gonum, wrapping the flat
// row-major storage without copying.
//
// Returns a ShapeError if either operand is not rank 2 or the inner
// dimensions disagree.
func MatMul(a, b *Tensor) (*Tensor, error) {
	if a.Rank() != 2 {
		return nil, NewShapeError("tensor.matmul", Shape{-1, -1}, a.shape)
	}
	if b.Rank() != 2 {
		return nil, NewShapeError("tensor.matmul", Shape{-1, -1}, b.shape)
	}
	m, k := a.shape[0], a.shape[1]
	k2, n := b.shape[0], b.shape[1]
	if k != k2 {
		return nil, NewShapeError("tensor.matmul", Shape{k, n}, b.shape)
	}

	out := New(Shape{m, n})
	// gonum rejects zero-sized matrices, but the product is still defined:
	// with an empty operand or inner dimension every entry is an empty sum,
	// which the zero-filled result already is.
	if m == 0 || n == 0 || k == 0 {
		return out, nil
	}
	dst := mat.NewDense(m, n, out.data)
	dst.Mul(mat.NewDense(m, k, a.data), mat.NewDense(k2, n, b.data))
	return out, nil
}

// AddRowInPlace adds a rank-1 vector to every row of a rank-2 tensor.
//
// Used for row-wise bias addition. Returns a ShapeError if m is not rank 2,
// v is not rank 1, or the lengths disagree.
func AddRowInPlace(m, v *Tensor) error {
	if m.Rank() != 2 || v.Rank() != 1 {
		return NewShapeError("tensor.addrow", Shape{m.shape[0], v.NumElements()}, m.shape)
	}
	rows, cols := m.shape[0], m.shape[1]
	if v.shape[0] != cols {
		return NewShapeError("tensor.addrow", Shape{cols}, v.shape)
	}
	for i := 0; i < rows; i++ {
		row := m.data[i*cols : (i+1)*cols]
		for j, b := range v.data {
			row[j] += b
		}
	}
	return nil
}

// Add computes the elementwise sum of two tensors of identical shape,
// returning a fresh tensor.
func Add(a, b *Tensor) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, NewShapeError("tensor.add", a.shape, b.shape)
	}
	out := a.Clone()
	for i, v := range b.data {
		out.data[i] += v
	}
	return out, nil
}

// Apply returns a fresh tensor with f applied to every element.
//
// Elementwise transforms work on the flat storage, so they behave identically
// for any rank.
func (t *Tensor) Apply(f func(float64) float64) *Tensor {
	out := New(t.shape)
	for i, v := range t.data {
		out.data[i] = f(v)
	}
	return out
}
