package nn

import (
	"math"
	"math/rand"

	"github.com/forge-ml/forge/internal/tensor"
)

// Weight initialization schemes for Dense layers.
const (
	InitXavier  = "xavier"
	InitHe      = "he"
	InitDefault = "default"
)

// defaultInitScale is the uniform bound used when no scheme is named.
const defaultInitScale = 0.1

// uniform creates a tensor with every element sampled uniformly in
// [-scale, scale].
//
// Uses math/rand: weight initialization is statistical, not security
// sensitive.
func uniform(shape tensor.Shape, scale float64) *tensor.Tensor {
	t := tensor.New(shape)
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand is intentional for weight initialization
		data[i] = (rand.Float64()*2.0 - 1.0) * scale
	}
	return t
}

// denseInitScale returns the uniform bound for a Dense weight matrix.
//
//	xavier: sqrt(2 / (fanIn + fanOut))
//	he:     sqrt(2 / fanIn)
//	other:  0.1
func denseInitScale(scheme string, fanIn, fanOut int) float64 {
	switch scheme {
	case InitXavier:
		return math.Sqrt(2.0 / float64(fanIn+fanOut))
	case InitHe:
		return math.Sqrt(2.0 / float64(fanIn))
	default:
		return defaultInitScale
	}
}
