// Package optim implements the parameter-update engine for the Forge ML
// Framework.
//
// The optimizer does not compute gradients: callers obtain them elsewhere
// (backpropagation, numeric differentiation, ...) and hand them to Step as a
// structure mirroring the network's parameters. Updates are applied in place
// through the aliased parameter views captured at construction.
//
// Example:
//
//	opt, err := optim.New(net, optim.Config{
//	    LearningRate: 0.01,
//	    Type:         optim.TypeMomentum,
//	})
//	if err != nil { ... }
//
//	for epoch := range epochs {
//	    grads := computeGradients(net, batch) // external
//	    if err := opt.Step(grads); err != nil { ... }
//	}
package optim

import (
	"github.com/pkg/errors"

	"github.com/forge-ml/forge/internal/nn"
	"github.com/forge-ml/forge/internal/tensor"
)

// Update rule names accepted by New.
const (
	TypeSGD      = "sgd"
	TypeMomentum = "momentum"
)

// momentumBeta is the fixed exponential-decay factor of the momentum rule.
const momentumBeta = 0.9

// ErrUnsupportedOptimizer is returned by New for an unrecognized update rule.
//
// This includes "adam": allocating Adam-shaped state without the Adam update
// rule would silently behave like momentum, so it is rejected outright.
var ErrUnsupportedOptimizer = errors.New("unsupported optimizer type")

// Config holds construction options for an Optimizer.
type Config struct {
	LearningRate float64 // Fixed scalar step size (default: 0.01).
	Type         string  // TypeSGD or TypeMomentum (default: TypeSGD).
}

// Optimizer applies gradient updates to a network's parameters in place.
//
// At construction it captures the network's live parameter views; every
// Step mutates the layers' actual tensors through them. A single optimizer
// is the only party expected to write through these views, and only between
// complete Forward calls — concurrent Step and Forward on the same network
// must be serialized by the caller.
type Optimizer struct {
	params     []nn.ParamSet
	lr         float64
	ruleType   string
	velocities []nn.ParamSet // momentum accumulators; nil for plain SGD
}

// New creates an optimizer over the network's current parameters.
//
// For TypeMomentum, one zero-initialized accumulator tensor is allocated per
// parameter; accumulators live as long as the optimizer and are never shared
// with another instance. Returns ErrUnsupportedOptimizer for any other
// non-empty, non-sgd type string.
func New(net *nn.Sequential, cfg Config) (*Optimizer, error) {
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 0.01
	}
	if cfg.Type == "" {
		cfg.Type = TypeSGD
	}

	o := &Optimizer{
		params:   net.Parameters(),
		lr:       cfg.LearningRate,
		ruleType: cfg.Type,
	}

	switch cfg.Type {
	case TypeSGD:
	case TypeMomentum:
		o.velocities = make([]nn.ParamSet, len(o.params))
		for i, layerParams := range o.params {
			o.velocities[i] = make(nn.ParamSet, len(layerParams))
			for name, p := range layerParams {
				o.velocities[i][name] = tensor.New(p.Shape())
			}
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedOptimizer, "%q", cfg.Type)
	}
	return o, nil
}

// LearningRate returns the fixed scalar step size.
func (o *Optimizer) LearningRate() float64 {
	return o.lr
}

// Type returns the update rule name.
func (o *Optimizer) Type() string {
	return o.ruleType
}

// validate checks that grads mirrors the captured parameter structure
// exactly: same layer count, same parameter names, same shapes.
//
// Running the full check before any update keeps Step transactional: a
// malformed gradient structure leaves every parameter untouched.
func (o *Optimizer) validate(grads []nn.ParamSet) error {
	if len(grads) != len(o.params) {
		return errors.Errorf("optim: gradient structure has %d layers, parameters have %d",
			len(grads), len(o.params))
	}
	for i, layerParams := range o.params {
		layerGrads := grads[i]
		if len(layerGrads) != len(layerParams) {
			return errors.Errorf("optim: layer %d: %d gradients for %d parameters",
				i, len(layerGrads), len(layerParams))
		}
		for name, p := range layerParams {
			g, ok := layerGrads[name]
			if !ok {
				return errors.Errorf("optim: layer %d: missing gradient for %q", i, name)
			}
			if !g.Shape().Equal(p.Shape()) {
				return errors.Wrapf(tensor.NewShapeError("optim.step", p.Shape(), g.Shape()),
					"layer %d, parameter %q", i, name)
			}
		}
	}
	return nil
}
