// Copyright 2025 Forge ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for training-time parameter
// updates in the Forge ML framework.
//
// Example:
//
//	opt, err := optim.New(net, optim.Config{
//	    LearningRate: 0.01,
//	    Type:         optim.TypeMomentum,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for step := 0; step < epochs; step++ {
//	    grads := computeGradients(net, batch)
//	    if err := opt.Step(grads); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package optim

import (
	"github.com/forge-ml/forge/internal/nn"
	"github.com/forge-ml/forge/internal/optim"
)

// Optimizer applies gradient updates to a network's parameters.
type Optimizer = optim.Optimizer

// Config selects the update rule and learning rate.
type Config = optim.Config

// Supported update rules.
const (
	TypeSGD      = optim.TypeSGD
	TypeMomentum = optim.TypeMomentum
)

// ErrUnsupportedOptimizer is returned by New for update rules the
// package does not implement.
var ErrUnsupportedOptimizer = optim.ErrUnsupportedOptimizer

// New creates an optimizer bound to the network's current parameters.
// The zero Config selects plain SGD with a learning rate of 0.01.
func New(net *nn.Sequential, cfg Config) (*Optimizer, error) {
	return optim.New(net, cfg)
}
