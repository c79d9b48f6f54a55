package nn

import (
	"github.com/forge-ml/forge/internal/tensor"
)

// Flatten reshapes each sample of a batch into a single row, concatenating
// the remaining axes in row-major order (for conv outputs: channel, then
// height, then width).
//
// [batch, d1, ..., dk] -> [batch, d1*...*dk]
type Flatten struct{}

// NewFlatten creates a Flatten layer.
func NewFlatten() *Flatten { return &Flatten{} }

// Kind returns "flatten".
func (f *Flatten) Kind() string { return KindFlatten }

// Forward flattens every sample. Input must be at least rank 2.
func (f *Flatten) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	shape := input.Shape()
	if input.Rank() < 2 {
		return nil, tensor.NewShapeError("flatten.forward", tensor.Shape{shape[0], -1}, shape)
	}

	batch := shape[0]
	rowLen := 0
	if batch > 0 {
		rowLen = shape.NumElements() / batch
	}
	out := tensor.New(tensor.Shape{batch, rowLen})
	// Row-major storage already has each sample contiguous.
	copy(out.Data(), input.Data())
	return out, nil
}

// Parameters returns an empty set: Flatten has no trainable parameters.
func (f *Flatten) Parameters() ParamSet { return ParamSet{} }
