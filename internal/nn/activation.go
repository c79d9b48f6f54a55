package nn

import (
	"math"

	"github.com/forge-ml/forge/internal/tensor"
)

// Activation is a pure transform applied after a layer's linear part.
//
// Forward returns a tensor of identical shape. Elementwise activations apply
// independently to every scalar regardless of rank; Softmax normalizes along
// the last axis of each row independently.
type Activation interface {
	// Name returns the registry name of this activation.
	Name() string

	// Forward applies the transform, returning a fresh tensor.
	Forward(t *tensor.Tensor) *tensor.Tensor
}

// Identity is the activation applied when no (or no known) activation is
// configured: it returns its input values unchanged.
//
// Looking up an unknown activation name deliberately resolves to Identity
// rather than failing — absence of a nonlinearity is a valid configuration,
// unlike a shape mismatch. See Resolve.
var Identity Activation = identity{}

type identity struct{}

func (identity) Name() string                            { return "identity" }
func (identity) Forward(t *tensor.Tensor) *tensor.Tensor { return t.Clone() }

// elementwise adapts a scalar function into an Activation.
type elementwise struct {
	name string
	fn   func(float64) float64
}

func (e elementwise) Name() string { return e.name }

func (e elementwise) Forward(t *tensor.Tensor) *tensor.Tensor {
	return t.Apply(e.fn)
}

// Scalar forms shared with the LSTM gate math.

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// softmax normalizes along the last axis of each row independently.
//
// The per-row maximum is subtracted before exponentiating so that large
// inputs do not overflow. Defined for any rank: every innermost row is
// normalized on its own.
type softmax struct{}

func (softmax) Name() string { return "softmax" }

func (softmax) Forward(t *tensor.Tensor) *tensor.Tensor {
	out := t.Clone()
	shape := t.Shape()
	rowLen := shape[len(shape)-1]
	if rowLen == 0 {
		return out
	}

	data := out.Data()
	for start := 0; start < len(data); start += rowLen {
		row := data[start : start+rowLen]

		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}

		sum := 0.0
		for i, v := range row {
			e := math.Exp(v - maxVal)
			row[i] = e
			sum += e
		}
		for i := range row {
			row[i] /= sum
		}
	}
	return out
}

// registry maps activation names to their transforms.
var registry = map[string]Activation{
	"relu":    elementwise{name: "relu", fn: relu},
	"sigmoid": elementwise{name: "sigmoid", fn: sigmoid},
	"tanh":    elementwise{name: "tanh", fn: math.Tanh},
	"softmax": softmax{},
	"linear":  elementwise{name: "linear", fn: func(x float64) float64 { return x }},
}

// Lookup returns the activation registered under name.
func Lookup(name string) (Activation, bool) {
	a, ok := registry[name]
	return a, ok
}

// Resolve returns the activation registered under name, or Identity when the
// name is unknown (including the empty string).
//
// This leniency is a deliberate policy: an unrecognized activation means "no
// activation applied", surfaced as the named Identity value instead of a
// silent nil. Shape mismatches, by contrast, are always errors.
func Resolve(name string) Activation {
	if a, ok := registry[name]; ok {
		return a
	}
	return Identity
}
