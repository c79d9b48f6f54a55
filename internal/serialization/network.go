// Package serialization converts networks to and from a structured tree.
//
// The tree is an in-memory value: no byte-level format is mandated here. The
// structs carry json tags, so a host that wants JSON persistence gets a
// stable encoding from encoding/json for free, but any medium works.
//
// Only dense layers are supported. Saved tensors are deep copies; loading
// builds fresh layers and installs the copied weights, so a save/load round
// trip reproduces forward outputs bit for bit — no weight is ever
// recomputed.
package serialization

import (
	"github.com/pkg/errors"

	"github.com/forge-ml/forge/internal/nn"
	"github.com/forge-ml/forge/internal/tensor"
)

// TensorData is a tensor's shape and flat row-major values.
type TensorData struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// LayerConfig is the constructor configuration of a serialized dense layer.
type LayerConfig struct {
	InputSize  int    `json:"input_size"`
	OutputSize int    `json:"output_size"`
	Activation string `json:"activation"`
	UseBias    bool   `json:"use_bias"`
}

// LayerData is one serialized layer: its kind tag, parameter tensors, and
// construction configuration.
type LayerData struct {
	Type   string                `json:"type"`
	Params map[string]TensorData `json:"params"`
	Config LayerConfig           `json:"config"`
}

// SerializedNetwork is the structured tree for a whole network. It is
// read-only once produced.
type SerializedNetwork struct {
	Layers []LayerData `json:"layers"`
}

// Save converts a network into a serialized tree.
//
// Every layer must be dense; anything else fails with ErrUnsupportedLayer
// wrapped with the offending layer's position and kind.
func Save(net *nn.Sequential) (*SerializedNetwork, error) {
	out := &SerializedNetwork{Layers: make([]LayerData, 0, net.Len())}

	for i := 0; i < net.Len(); i++ {
		layer := net.Layer(i)
		dense, ok := layer.(*nn.Dense)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedLayer, "layer %d (%s)", i, layer.Kind())
		}

		entry := LayerData{
			Type: nn.KindDense,
			Params: map[string]TensorData{
				"weights": fromTensor(dense.Weights()),
			},
			Config: LayerConfig{
				InputSize:  dense.InputSize(),
				OutputSize: dense.OutputSize(),
				Activation: dense.ActivationName(),
				UseBias:    dense.HasBias(),
			},
		}
		if dense.HasBias() {
			entry.Params["bias"] = fromTensor(dense.Bias())
		}
		out.Layers = append(out.Layers, entry)
	}
	return out, nil
}

// Load reconstructs a network from a serialized tree.
//
// Each entry builds a fresh dense layer from its config, then installs the
// saved parameters wholesale. The tree itself is not retained or mutated.
func Load(data *SerializedNetwork) (*nn.Sequential, error) {
	if data == nil || len(data.Layers) == 0 {
		return nil, ErrEmptyNetwork
	}

	net := nn.NewSequential()
	for i, entry := range data.Layers {
		if entry.Type != nn.KindDense {
			return nil, errors.Wrapf(ErrUnknownLayerType, "layer %d (%q)", i, entry.Type)
		}

		dense := nn.NewDense(entry.Config.InputSize, entry.Config.OutputSize, nn.DenseConfig{
			Activation: entry.Config.Activation,
			UseBias:    entry.Config.UseBias,
		})

		weightsData, ok := entry.Params["weights"]
		if !ok {
			return nil, errors.Wrapf(ErrMissingParameter, "layer %d: weights", i)
		}
		weights, err := toTensor(weightsData)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d: weights", i)
		}

		var bias *tensor.Tensor
		if entry.Config.UseBias {
			biasData, ok := entry.Params["bias"]
			if !ok {
				return nil, errors.Wrapf(ErrMissingParameter, "layer %d: bias", i)
			}
			bias, err = toTensor(biasData)
			if err != nil {
				return nil, errors.Wrapf(err, "layer %d: bias", i)
			}
		}

		if err := dense.Update(weights, bias); err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		net.Add(dense)
	}
	return net, nil
}

// fromTensor deep-copies a tensor into its serialized form.
func fromTensor(t *tensor.Tensor) TensorData {
	data := make([]float64, t.NumElements())
	copy(data, t.Data())
	return TensorData{
		Shape: append([]int(nil), t.Shape()...),
		Data:  data,
	}
}

// toTensor rebuilds a tensor from its serialized form, copying the data.
func toTensor(td TensorData) (*tensor.Tensor, error) {
	return tensor.FromSlice(td.Data, tensor.Shape(td.Shape))
}
