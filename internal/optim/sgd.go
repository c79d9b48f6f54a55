package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/forge-ml/forge/internal/nn"
)

// Step applies one gradient update to every parameter, in place.
//
// grads must be structurally isomorphic to the network's Parameters():
// one set per layer, one same-shaped tensor per parameter name. The whole
// structure is validated before any mutation; on error no parameter changes.
//
// Update rules, elementwise:
//
//	sgd:      param <- param - lr*grad
//	momentum: m <- 0.9*m + 0.1*grad
//	          param <- param - lr*m
func (o *Optimizer) Step(grads []nn.ParamSet) error {
	if err := o.validate(grads); err != nil {
		return err
	}

	for i, layerParams := range o.params {
		for name, p := range layerParams {
			g := grads[i][name].Data()

			switch o.ruleType {
			case TypeSGD:
				floats.AddScaled(p.Data(), -o.lr, g)
			case TypeMomentum:
				m := o.velocities[i][name].Data()
				floats.Scale(momentumBeta, m)
				floats.AddScaled(m, 1-momentumBeta, g)
				floats.AddScaled(p.Data(), -o.lr, m)
			}
		}
	}
	return nil
}
