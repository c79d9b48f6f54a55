// Copyright 2025 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for neural network layers in the
// Forge ML framework.
//
// Layers share a single interface and compose through Sequential:
//
//	net := nn.FeedForward([]int{784, 128, 10}, nn.FeedForwardConfig{
//	    Activation:       "relu",
//	    OutputActivation: "softmax",
//	    WeightInit:       nn.InitXavier,
//	})
//	out, err := net.Forward(batch)
package nn

import (
	"github.com/forge-ml/forge/internal/nn"
)

// Layer is the interface every network layer implements.
type Layer = nn.Layer

// ParamSet maps parameter names to live tensor views. Mutating a value
// through the map is observed by the owning layer's next Forward call.
type ParamSet = nn.ParamSet

// Layer kind identifiers as reported by Layer.Kind.
const (
	KindDense   = nn.KindDense
	KindConv2D  = nn.KindConv2D
	KindRNN     = nn.KindRNN
	KindLSTM    = nn.KindLSTM
	KindFlatten = nn.KindFlatten
)

// Weight initialization scheme names.
const (
	InitXavier  = nn.InitXavier
	InitHe      = nn.InitHe
	InitDefault = nn.InitDefault
)

// Activation applies a named nonlinearity to a tensor.
type Activation = nn.Activation

// Identity is the no-op activation. Unknown activation names resolve
// to it.
var Identity = nn.Identity

// Lookup returns the activation registered under name, reporting
// whether the name is known.
func Lookup(name string) (Activation, bool) {
	return nn.Lookup(name)
}

// Resolve returns the activation registered under name, or Identity
// when the name is unknown.
func Resolve(name string) Activation {
	return nn.Resolve(name)
}

// Layers

// Dense represents a fully connected layer.
type Dense = nn.Dense

// DenseConfig configures a Dense layer.
type DenseConfig = nn.DenseConfig

// NewDense creates a fully connected layer mapping inputSize features
// to outputSize features. It panics if either size is not positive.
//
// Example:
//
//	layer := nn.NewDense(784, 128, nn.DenseConfig{
//	    Activation: "relu",
//	    UseBias:    true,
//	    WeightInit: nn.InitHe,
//	})
func NewDense(inputSize, outputSize int, cfg DenseConfig) *Dense {
	return nn.NewDense(inputSize, outputSize, cfg)
}

// Conv2D represents a 2D convolutional layer.
type Conv2D = nn.Conv2D

// Conv2DConfig configures a Conv2D layer.
type Conv2DConfig = nn.Conv2DConfig

// NewConv2D creates a 2D convolutional layer. Stride defaults to 1
// when left zero. It panics if channel counts, kernel size, stride,
// or padding are out of range.
func NewConv2D(cfg Conv2DConfig) *Conv2D {
	return nn.NewConv2D(cfg)
}

// RNN represents a simple recurrent layer.
type RNN = nn.RNN

// RNNConfig configures an RNN layer.
type RNNConfig = nn.RNNConfig

// NewRNN creates a simple recurrent layer with the given input and
// hidden sizes.
func NewRNN(inputSize, hiddenSize int, cfg RNNConfig) *RNN {
	return nn.NewRNN(inputSize, hiddenSize, cfg)
}

// LSTM represents a long short-term memory layer.
type LSTM = nn.LSTM

// LSTMConfig configures an LSTM layer.
type LSTMConfig = nn.LSTMConfig

// NewLSTM creates an LSTM layer. The forget gate bias is initialized
// to one so early training does not discard state.
func NewLSTM(inputSize, hiddenSize int, cfg LSTMConfig) *LSTM {
	return nn.NewLSTM(inputSize, hiddenSize, cfg)
}

// Flatten collapses all non-batch dimensions into one.
type Flatten = nn.Flatten

// NewFlatten creates a Flatten layer.
func NewFlatten() *Flatten {
	return nn.NewFlatten()
}

// Composition

// Sequential chains layers so each output feeds the next input.
type Sequential = nn.Sequential

// NewSequential creates a network from the given layers in order.
func NewSequential(layers ...Layer) *Sequential {
	return nn.NewSequential(layers...)
}

// FeedForwardConfig configures the FeedForward preset.
type FeedForwardConfig = nn.FeedForwardConfig

// FeedForward builds a chain of Dense layers from consecutive sizes.
// layerSizes must list at least two sizes; the last layer receives
// cfg.OutputActivation, the rest cfg.Activation.
//
// Example:
//
//	net := nn.FeedForward([]int{2, 4, 1}, nn.FeedForwardConfig{
//	    Activation:       "relu",
//	    OutputActivation: "sigmoid",
//	})
func FeedForward(layerSizes []int, cfg FeedForwardConfig) *Sequential {
	return nn.FeedForward(layerSizes, cfg)
}

// SimpleCNN builds a small image classifier: two 3×3 convolutions, a
// flatten stage, and two dense layers ending in softmax. inputShape is
// [channels, height, width].
func SimpleCNN(inputShape [3]int, numClasses int) *Sequential {
	return nn.SimpleCNN(inputShape, numClasses)
}
