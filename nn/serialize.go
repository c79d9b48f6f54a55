// Copyright 2025 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/forge-ml/forge/internal/serialization"
)

// SerializedNetwork is the portable in-memory form of a trained
// network. It carries json tags so the standard library encoder can
// persist it directly.
type SerializedNetwork = serialization.SerializedNetwork

// LayerData describes one serialized layer.
type LayerData = serialization.LayerData

// LayerConfig carries the structural settings needed to rebuild a
// serialized layer.
type LayerConfig = serialization.LayerConfig

// TensorData is the portable form of a single parameter tensor.
type TensorData = serialization.TensorData

// Serialization errors.
var (
	// ErrUnsupportedLayer is returned by SaveNetwork when the network
	// contains a layer kind that cannot be serialized. Only dense
	// layers are supported.
	ErrUnsupportedLayer = serialization.ErrUnsupportedLayer

	// ErrUnknownLayerType is returned by LoadNetwork for a layer type
	// it does not recognize.
	ErrUnknownLayerType = serialization.ErrUnknownLayerType

	// ErrMissingParameter is returned by LoadNetwork when a serialized
	// layer lacks a required parameter tensor.
	ErrMissingParameter = serialization.ErrMissingParameter

	// ErrEmptyNetwork is returned by LoadNetwork for a nil or empty
	// serialized tree.
	ErrEmptyNetwork = serialization.ErrEmptyNetwork
)

// SaveNetwork captures a dense-only network as a portable tree. Every
// parameter is deep-copied, so later training does not disturb the
// result.
//
// Example:
//
//	data, err := nn.SaveNetwork(net)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	encoded, _ := json.Marshal(data)
func SaveNetwork(net *Sequential) (*SerializedNetwork, error) {
	return serialization.Save(net)
}

// LoadNetwork rebuilds a network from a serialized tree. The restored
// network produces bit-identical outputs to the one SaveNetwork
// captured.
func LoadNetwork(data *SerializedNetwork) (*Sequential, error) {
	return serialization.Load(data)
}
