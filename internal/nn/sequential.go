package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/forge-ml/forge/internal/tensor"
)

// Sequential is a container that chains layers into a strict linear pipeline:
// each layer's output becomes the next layer's input, in insertion order,
// with no branching or skip connections.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewDense(784, 128, nn.DenseConfig{Activation: "relu", UseBias: true}),
//	    nn.NewDense(128, 10, nn.DenseConfig{Activation: "softmax", UseBias: true}),
//	)
//	output, err := model.Forward(batch)
type Sequential struct {
	layers []Layer
}

// NewSequential creates a Sequential container over the given layers.
func NewSequential(layers ...Layer) *Sequential {
	return &Sequential{layers: layers}
}

// Forward threads the input through every layer in insertion order.
//
// The first failing layer aborts the pass; its error is returned wrapped with
// the layer's position and kind.
func (s *Sequential) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	output := input
	for i, layer := range s.layers {
		var err error
		output, err = layer.Forward(output)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d (%s)", i, layer.Kind())
		}
	}
	return output, nil
}

// Parameters returns each layer's parameter set, in layer order. The sets
// alias live layer storage (see ParamSet).
func (s *Sequential) Parameters() []ParamSet {
	params := make([]ParamSet, len(s.layers))
	for i, layer := range s.layers {
		params[i] = layer.Parameters()
	}
	return params
}

// Add appends a layer to the pipeline.
func (s *Sequential) Add(layer Layer) {
	s.layers = append(s.layers, layer)
}

// Len returns the number of layers.
func (s *Sequential) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if the index is out of bounds.
func (s *Sequential) Layer(index int) Layer {
	if index < 0 || index >= len(s.layers) {
		panic("sequential: layer index out of bounds")
	}
	return s.layers[index]
}

// FeedForwardConfig holds options for the FeedForward builder.
type FeedForwardConfig struct {
	Activation       string // Hidden-layer activation.
	OutputActivation string // Last layer's activation.
	WeightInit       string // Initialization scheme for every Dense layer.
}

// FeedForward builds a fully connected network from a list of layer sizes.
//
// len(layerSizes)-1 Dense layers are chained so that layer i's output size is
// layer i+1's input size. Every layer uses cfg.Activation except the last,
// which uses cfg.OutputActivation. All layers carry a bias.
//
// Panics if fewer than two sizes are given.
func FeedForward(layerSizes []int, cfg FeedForwardConfig) *Sequential {
	if len(layerSizes) < 2 {
		panic(fmt.Sprintf("feedforward: need at least 2 layer sizes, got %d", len(layerSizes)))
	}

	net := NewSequential()
	for i := 0; i < len(layerSizes)-1; i++ {
		activation := cfg.Activation
		if i == len(layerSizes)-2 {
			activation = cfg.OutputActivation
		}
		net.Add(NewDense(layerSizes[i], layerSizes[i+1], DenseConfig{
			Activation: activation,
			UseBias:    true,
			WeightInit: cfg.WeightInit,
		}))
	}
	return net
}

// SimpleCNN builds a fixed convolutional preset for inputShape
// [channels, height, width] inputs:
//
//	Conv2D(channels -> 32, 3x3, stride 1, no padding, relu)
//	Conv2D(32 -> 64, 3x3, stride 1, no padding, relu)
//	Flatten
//	Dense(64*h'*w' -> 128, relu)
//	Dense(128 -> numClasses, softmax)
//
// Panics if the spatial dimensions are too small for the two convolutions or
// numClasses is not positive.
func SimpleCNN(inputShape [3]int, numClasses int) *Sequential {
	channels, height, width := inputShape[0], inputShape[1], inputShape[2]
	if numClasses <= 0 {
		panic(fmt.Sprintf("simplecnn: invalid class count %d", numClasses))
	}

	conv1 := NewConv2D(Conv2DConfig{
		InputChannels:  channels,
		OutputChannels: 32,
		KernelSize:     3,
		Stride:         1,
		Activation:     "relu",
		UseBias:        true,
	})
	after1 := conv1.OutputSize(height, width)

	conv2 := NewConv2D(Conv2DConfig{
		InputChannels:  32,
		OutputChannels: 64,
		KernelSize:     3,
		Stride:         1,
		Activation:     "relu",
		UseBias:        true,
	})
	after2 := conv2.OutputSize(after1[0], after1[1])
	if after2[0] <= 0 || after2[1] <= 0 {
		panic(fmt.Sprintf("simplecnn: input %dx%d too small for two 3x3 convolutions", height, width))
	}

	return NewSequential(
		conv1,
		conv2,
		NewFlatten(),
		NewDense(64*after2[0]*after2[1], 128, DenseConfig{
			Activation: "relu",
			UseBias:    true,
			WeightInit: InitHe,
		}),
		NewDense(128, numClasses, DenseConfig{
			Activation: "softmax",
			UseBias:    true,
			WeightInit: InitXavier,
		}),
	)
}
