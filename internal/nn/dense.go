package nn

import (
	"fmt"

	"github.com/forge-ml/forge/internal/tensor"
)

// Dense implements a fully connected layer.
//
// Performs the transformation: y = activation(x @ W + b)
// where:
//   - x is the input batch with shape [batch, inputSize]
//   - W is the weight matrix with shape [inputSize, outputSize]
//   - b is the bias vector with shape [outputSize] (optional)
//   - y is the output batch with shape [batch, outputSize]
//
// Example:
//
//	layer := nn.NewDense(784, 128, nn.DenseConfig{
//	    Activation: "relu",
//	    UseBias:    true,
//	    WeightInit: nn.InitXavier,
//	})
//	output, err := layer.Forward(batch) // [n, 784] -> [n, 128]
type Dense struct {
	inputSize  int
	outputSize int
	weights    *tensor.Tensor // [inputSize, outputSize]
	bias       *tensor.Tensor // [outputSize] or nil
	activation Activation
}

// DenseConfig holds construction options for a Dense layer.
type DenseConfig struct {
	Activation string // Activation name; unknown names resolve to Identity.
	UseBias    bool   // Whether to allocate a bias vector.
	WeightInit string // InitXavier, InitHe, or anything else for the 0.1 default.
}

// NewDense creates a fully connected layer.
//
// Weights are sampled uniformly in [-s, s] where s depends on cfg.WeightInit
// (see denseInitScale). The bias vector is zero-initialized and only
// allocated when cfg.UseBias is set.
//
// Panics if inputSize or outputSize is not positive; layer geometry is
// decided at construction and a non-positive size is programmer error.
func NewDense(inputSize, outputSize int, cfg DenseConfig) *Dense {
	if inputSize <= 0 || outputSize <= 0 {
		panic(fmt.Sprintf("dense: invalid sizes in=%d, out=%d", inputSize, outputSize))
	}

	scale := denseInitScale(cfg.WeightInit, inputSize, outputSize)
	d := &Dense{
		inputSize:  inputSize,
		outputSize: outputSize,
		weights:    uniform(tensor.Shape{inputSize, outputSize}, scale),
		activation: Resolve(cfg.Activation),
	}
	if cfg.UseBias {
		d.bias = tensor.New(tensor.Shape{outputSize})
	}
	return d
}

// Kind returns "dense".
func (d *Dense) Kind() string { return KindDense }

// Forward computes activation(input @ W + b).
//
// Input must be a [batch, inputSize] tensor; anything else fails with a
// *tensor.ShapeError naming the expected and actual geometry. Forward is a
// pure function of the current weights and bias.
func (d *Dense) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	shape := input.Shape()
	if input.Rank() != 2 || shape[1] != d.inputSize {
		return nil, tensor.NewShapeError("dense.forward", tensor.Shape{shape[0], d.inputSize}, shape)
	}

	out, err := tensor.MatMul(input, d.weights)
	if err != nil {
		return nil, err
	}
	if d.bias != nil {
		if err := tensor.AddRowInPlace(out, d.bias); err != nil {
			return nil, err
		}
	}
	return d.activation.Forward(out), nil
}

// Update replaces the stored parameter tensors wholesale.
//
// A nil argument leaves the corresponding tensor unchanged; the bias argument
// is ignored when the layer has no bias. Ownership of a non-nil replacement
// transfers to the layer. Shapes are validated before anything is replaced, so
// a failed Update changes nothing.
func (d *Dense) Update(weights, bias *tensor.Tensor) error {
	wantW := tensor.Shape{d.inputSize, d.outputSize}
	if weights != nil && !weights.Shape().Equal(wantW) {
		return tensor.NewShapeError("dense.update", wantW, weights.Shape())
	}
	if bias != nil && d.bias != nil && !bias.Shape().Equal(tensor.Shape{d.outputSize}) {
		return tensor.NewShapeError("dense.update", tensor.Shape{d.outputSize}, bias.Shape())
	}

	if weights != nil {
		d.weights = weights
	}
	if bias != nil && d.bias != nil {
		d.bias = bias
	}
	return nil
}

// Parameters returns {"weights", "bias"} as live views; "bias" is absent when
// the layer was built without one.
func (d *Dense) Parameters() ParamSet {
	params := ParamSet{"weights": d.weights}
	if d.bias != nil {
		params["bias"] = d.bias
	}
	return params
}

// InputSize returns the declared input row length.
func (d *Dense) InputSize() int { return d.inputSize }

// OutputSize returns the declared output row length.
func (d *Dense) OutputSize() int { return d.outputSize }

// ActivationName returns the name of the resolved activation.
func (d *Dense) ActivationName() string { return d.activation.Name() }

// HasBias reports whether the layer carries a bias vector.
func (d *Dense) HasBias() bool { return d.bias != nil }

// Weights returns the weight tensor (live view).
func (d *Dense) Weights() *tensor.Tensor { return d.weights }

// Bias returns the bias tensor (live view), or nil.
func (d *Dense) Bias() *tensor.Tensor { return d.bias }
