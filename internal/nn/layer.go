// Package nn implements neural network layers for the Forge ML Framework.
//
// This package provides the building blocks for constructing networks:
//   - Layer interface: common contract for all layer kinds
//   - Dense: fully connected layer
//   - Conv2D: 2D convolutional layer
//   - RNN: simple recurrent layer
//   - LSTM: long short-term memory layer
//   - Flatten: row-major reshape stage
//   - Activations: relu, sigmoid, tanh, softmax, linear (string registry)
//   - Sequential: container threading input through layers in order
//
// Gradient computation is not part of this package; an optimizer consumes
// externally supplied gradients through the aliased parameter views that
// Parameters returns.
package nn

import (
	"github.com/forge-ml/forge/internal/tensor"
)

// Layer kind tags. Each concrete layer reports exactly one of these.
const (
	KindDense   = "dense"
	KindConv2D  = "conv2d"
	KindRNN     = "rnn"
	KindLSTM    = "lstm"
	KindFlatten = "flatten"
)

// ParamSet maps a parameter name (e.g., "weights", "bias", "wxi") to its
// tensor. The tensors are live views of the layer's internal storage, not
// copies: mutating them through the set is observed by the layer on its next
// Forward. The optimizer depends on exactly this aliasing.
type ParamSet map[string]*tensor.Tensor

// Layer is the common contract implemented by every layer kind.
//
// A layer owns its parameter tensors exclusively from construction until they
// are explicitly replaced (Dense.Update) or adjusted in place through the
// ParamSet views by an optimizer.
type Layer interface {
	// Kind returns the layer's type tag (dense, conv2d, rnn, lstm, flatten).
	Kind() string

	// Forward computes the layer's output for an input batch.
	//
	// The input shape depends on the layer kind; a geometry mismatch is
	// reported as a *tensor.ShapeError. Forward is a pure function of the
	// current parameters: it never mutates the layer or the input.
	Forward(input *tensor.Tensor) (*tensor.Tensor, error)

	// Parameters returns the layer's named parameters as live views.
	// Layers without trainable parameters return an empty set.
	Parameters() ParamSet
}
