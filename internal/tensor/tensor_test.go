package tensor

import (
	"errors"
	"math"
	"testing"
)

// Test helpers

func assertEqualFloat(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-12 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// Shape tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{3}, 3},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
		{Shape{2, 3, 4, 5}, 120},
		{Shape{2, 0, 4}, 0},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate(%v) = %v, want nil", Shape{2, 3}, err)
	}
	if err := (Shape{}).Validate(); err == nil {
		t.Error("Validate of rank-0 shape should fail")
	}
	if err := (Shape{1, 2, 3, 4, 5}).Validate(); err == nil {
		t.Error("Validate of rank-5 shape should fail")
	}
	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("Validate of negative dimension should fail")
	}
}

func TestShapeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.Strides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("Strides() = %v, want %v", strides, want)
			break
		}
	}
}

// Tensor tests

func TestNewZeroFilled(t *testing.T) {
	x := New(Shape{2, 3})
	assertEqualShape(t, Shape{2, 3}, x.Shape(), "New shape")
	for i, v := range x.Data() {
		if v != 0 {
			t.Errorf("Data[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewPanicsOnInvalidShape(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New with rank-5 shape should panic")
		}
	}()
	New(Shape{1, 1, 1, 1, 1})
}

func TestAtSetRoundTrip(t *testing.T) {
	x := New(Shape{2, 3, 4})
	x.Set(7.5, 1, 2, 3)
	assertEqualFloat(t, 7.5, x.At(1, 2, 3), "At after Set")
	assertEqualFloat(t, 7.5, x.Data()[1*12+2*4+3], "row-major layout")
}

func TestDataIsAliased(t *testing.T) {
	x := Full(Shape{3}, 1.0)
	x.Data()[1] = 42

	assertEqualFloat(t, 42, x.At(1), "mutation through Data view")
}

func TestCloneIsIndependent(t *testing.T) {
	x := Full(Shape{2, 2}, 3.0)
	y := x.Clone()
	y.Data()[0] = -1

	assertEqualFloat(t, 3.0, x.At(0, 0), "clone must not alias source")
}

func TestCopyFromPreservesBackingSlice(t *testing.T) {
	dst := New(Shape{2})
	view := dst.Data()

	src, _ := FromSlice([]float64{5, 6}, Shape{2})
	if err := dst.CopyFrom(src); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}

	assertEqualFloat(t, 5, view[0], "aliased view sees CopyFrom")
	assertEqualFloat(t, 6, view[1], "aliased view sees CopyFrom")
}

func TestCopyFromShapeMismatch(t *testing.T) {
	dst := New(Shape{2})
	src := New(Shape{3})

	err := dst.CopyFrom(src)
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("CopyFrom error = %v, want *ShapeError", err)
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	if _, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("FromSlice with wrong length should fail")
	}
}

func TestFrom2DRagged(t *testing.T) {
	if _, err := From2D([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("From2D with ragged rows should fail")
	}
}

func TestNestedRoundTrip2D(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	x, err := From2D(rows)
	if err != nil {
		t.Fatalf("From2D: %v", err)
	}
	assertEqualShape(t, Shape{2, 3}, x.Shape(), "From2D shape")

	back := x.To2D()
	for i := range rows {
		for j := range rows[i] {
			assertEqualFloat(t, rows[i][j], back[i][j], "To2D round trip")
		}
	}
}

func TestNestedRoundTrip3D(t *testing.T) {
	v := [][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	}
	x, err := From3D(v)
	if err != nil {
		t.Fatalf("From3D: %v", err)
	}
	assertEqualShape(t, Shape{2, 2, 2}, x.Shape(), "From3D shape")
	assertEqualFloat(t, 7, x.At(1, 1, 0), "From3D layout")

	back := x.To3D()
	assertEqualFloat(t, 6, back[1][0][1], "To3D round trip")
}

func TestFrom4DLayout(t *testing.T) {
	v := [][][][]float64{
		{
			{{1, 2}, {3, 4}},
		},
		{
			{{5, 6}, {7, 8}},
		},
	}
	x, err := From4D(v)
	if err != nil {
		t.Fatalf("From4D: %v", err)
	}
	assertEqualShape(t, Shape{2, 1, 2, 2}, x.Shape(), "From4D shape")
	assertEqualFloat(t, 8, x.At(1, 0, 1, 1), "From4D layout")
}

// Op tests

func TestMatMul(t *testing.T) {
	a, _ := From2D([][]float64{{1, 2, 3}, {4, 5, 6}})
	b, _ := From2D([][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := MatMul(a, b)
	if err != nil {
		t.Fatalf("MatMul: %v", err)
	}
	assertEqualShape(t, Shape{2, 2}, c.Shape(), "MatMul shape")
	assertEqualFloat(t, 58, c.At(0, 0), "MatMul[0,0]")
	assertEqualFloat(t, 64, c.At(0, 1), "MatMul[0,1]")
	assertEqualFloat(t, 139, c.At(1, 0), "MatMul[1,0]")
	assertEqualFloat(t, 154, c.At(1, 1), "MatMul[1,1]")
}

func TestMatMulZeroDimensions(t *testing.T) {
	// Zero-sized operands stay inside the wrapper: the product of an empty
	// batch is the empty [0, n] matrix, and a zero inner dimension makes
	// every entry an empty sum.
	empty, err := MatMul(New(Shape{0, 3}), New(Shape{3, 2}))
	if err != nil {
		t.Fatalf("MatMul on zero rows: %v", err)
	}
	assertEqualShape(t, Shape{0, 2}, empty.Shape(), "zero-row product")

	zeroInner, err := MatMul(New(Shape{2, 0}), New(Shape{0, 4}))
	if err != nil {
		t.Fatalf("MatMul on zero inner dimension: %v", err)
	}
	assertEqualShape(t, Shape{2, 4}, zeroInner.Shape(), "zero-inner product")
	for i, v := range zeroInner.Data() {
		if v != 0 {
			t.Errorf("zero-inner product[%d] = %v, want 0", i, v)
		}
	}
}

func TestMatMulInnerDimMismatch(t *testing.T) {
	a := New(Shape{2, 3})
	b := New(Shape{4, 2})

	_, err := MatMul(a, b)
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("MatMul error = %v, want *ShapeError", err)
	}
}

func TestAddRowInPlace(t *testing.T) {
	m, _ := From2D([][]float64{{1, 2}, {3, 4}})
	v, _ := FromSlice([]float64{10, 20}, Shape{2})

	if err := AddRowInPlace(m, v); err != nil {
		t.Fatalf("AddRowInPlace: %v", err)
	}
	assertEqualFloat(t, 11, m.At(0, 0), "bias broadcast row 0")
	assertEqualFloat(t, 24, m.At(1, 1), "bias broadcast row 1")
}

func TestAddShapeMismatch(t *testing.T) {
	if _, err := Add(New(Shape{2}), New(Shape{3})); err == nil {
		t.Error("Add with mismatched shapes should fail")
	}
}

func TestApplyAnyRank(t *testing.T) {
	x := Full(Shape{2, 1, 2}, 2.0)
	y := x.Apply(func(v float64) float64 { return v * v })

	assertEqualShape(t, x.Shape(), y.Shape(), "Apply shape")
	assertEqualFloat(t, 4, y.At(1, 0, 1), "Apply value")
	assertEqualFloat(t, 2, x.At(1, 0, 1), "Apply must not mutate source")
}
