// Copyright 2025 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the Forge ML framework.
//
// The package re-exports the core types and constructors:
//   - Tensor: dense row-major tensor of float64 values, rank 1 through 4
//   - Shape: dimension list with validation and stride helpers
//   - ShapeError: structured error describing a geometry mismatch
//
// Example:
//
//	x, err := tensor.From2D([][]float64{{1, 2}, {3, 4}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := tensor.Full(tensor.Shape{2, 2}, 1.0)
//	z, err := tensor.Add(x, y)
package tensor

import (
	"github.com/forge-ml/forge/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense row-major tensor of float64 values.
type Tensor = tensor.Tensor

// ShapeError reports a geometry mismatch between an expected and an
// actual shape. Use errors.As to recover it from wrapped errors.
type ShapeError = tensor.ShapeError

// New creates a zero-filled tensor with the given shape.
// It panics if the shape is invalid (rank outside 1..4 or a negative
// dimension).
func New(shape Shape) *Tensor {
	return tensor.New(shape)
}

// Full creates a tensor with every element set to value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// FromSlice builds a tensor that copies data into the given shape.
// The length of data must equal the number of elements the shape
// describes.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// From2D builds a rank-2 tensor from nested rows. Every row must have
// the same length.
func From2D(rows [][]float64) (*Tensor, error) {
	return tensor.From2D(rows)
}

// From3D builds a rank-3 tensor from nested slices.
func From3D(v [][][]float64) (*Tensor, error) {
	return tensor.From3D(v)
}

// From4D builds a rank-4 tensor from nested slices.
func From4D(v [][][][]float64) (*Tensor, error) {
	return tensor.From4D(v)
}

// MatMul multiplies two rank-2 tensors: [m, k] × [k, n] → [m, n].
func MatMul(a, b *Tensor) (*Tensor, error) {
	return tensor.MatMul(a, b)
}

// Add returns the element-wise sum of two tensors of identical shape.
func Add(a, b *Tensor) (*Tensor, error) {
	return tensor.Add(a, b)
}
