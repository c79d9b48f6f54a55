package tensor

import "fmt"

// Full creates a tensor with every element set to value.
func Full(shape Shape, value float64) *Tensor {
	t := New(shape)
	t.Fill(value)
	return t
}

// FromSlice creates a tensor from a flat row-major slice.
//
// The data is copied. Returns an error if the slice length does not match the
// shape's element count or the shape itself is invalid.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("tensor.FromSlice: data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t := New(shape)
	copy(t.data, data)
	return t, nil
}

// From2D creates a rank-2 tensor from nested rows.
//
// All rows must have the same length. Returns an error on ragged input.
func From2D(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("tensor.From2D: empty input")
	}
	cols := len(rows[0])
	t := New(Shape{len(rows), cols})
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("tensor.From2D: ragged input: row 0 has %d elements, row %d has %d",
				cols, i, len(row))
		}
		copy(t.data[i*cols:(i+1)*cols], row)
	}
	return t, nil
}

// From3D creates a rank-3 tensor from nested slices.
func From3D(v [][][]float64) (*Tensor, error) {
	if len(v) == 0 || len(v[0]) == 0 {
		return nil, fmt.Errorf("tensor.From3D: empty input")
	}
	d1, d2 := len(v[0]), len(v[0][0])
	t := New(Shape{len(v), d1, d2})
	pos := 0
	for i, plane := range v {
		if len(plane) != d1 {
			return nil, fmt.Errorf("tensor.From3D: ragged input at axis 1, index %d", i)
		}
		for j, row := range plane {
			if len(row) != d2 {
				return nil, fmt.Errorf("tensor.From3D: ragged input at axis 2, index [%d][%d]", i, j)
			}
			copy(t.data[pos:pos+d2], row)
			pos += d2
		}
	}
	return t, nil
}

// From4D creates a rank-4 tensor from nested slices.
func From4D(v [][][][]float64) (*Tensor, error) {
	if len(v) == 0 || len(v[0]) == 0 || len(v[0][0]) == 0 {
		return nil, fmt.Errorf("tensor.From4D: empty input")
	}
	d1, d2, d3 := len(v[0]), len(v[0][0]), len(v[0][0][0])
	t := New(Shape{len(v), d1, d2, d3})
	pos := 0
	for i, block := range v {
		if len(block) != d1 {
			return nil, fmt.Errorf("tensor.From4D: ragged input at axis 1, index %d", i)
		}
		for j, plane := range block {
			if len(plane) != d2 {
				return nil, fmt.Errorf("tensor.From4D: ragged input at axis 2, index [%d][%d]", i, j)
			}
			for k, row := range plane {
				if len(row) != d3 {
					return nil, fmt.Errorf("tensor.From4D: ragged input at axis 3, index [%d][%d][%d]", i, j, k)
				}
				copy(t.data[pos:pos+d3], row)
				pos += d3
			}
		}
	}
	return t, nil
}

// To2D returns a nested copy of a rank-2 tensor.
//
// Panics if the tensor is not rank 2.
func (t *Tensor) To2D() [][]float64 {
	if t.Rank() != 2 {
		panic(fmt.Sprintf("tensor.To2D: expected rank 2, got rank %d", t.Rank()))
	}
	rows, cols := t.shape[0], t.shape[1]
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		copy(out[i], t.data[i*cols:(i+1)*cols])
	}
	return out
}

// To3D returns a nested copy of a rank-3 tensor.
//
// Panics if the tensor is not rank 3.
func (t *Tensor) To3D() [][][]float64 {
	if t.Rank() != 3 {
		panic(fmt.Sprintf("tensor.To3D: expected rank 3, got rank %d", t.Rank()))
	}
	d0, d1, d2 := t.shape[0], t.shape[1], t.shape[2]
	out := make([][][]float64, d0)
	pos := 0
	for i := 0; i < d0; i++ {
		out[i] = make([][]float64, d1)
		for j := 0; j < d1; j++ {
			out[i][j] = make([]float64, d2)
			copy(out[i][j], t.data[pos:pos+d2])
			pos += d2
		}
	}
	return out
}
