package nn

import (
	"fmt"
	"math"

	"github.com/forge-ml/forge/internal/parallel"
	"github.com/forge-ml/forge/internal/tensor"
)

// Conv2D is a 2D convolutional layer.
//
// Input shape:  [batch, inputChannels, height, width]
// Kernel shape: [outputChannels, inputChannels, kernelSize, kernelSize]
// Bias shape:   [outputChannels]
// Output shape: [batch, outputChannels, outH, outW]
//
// where per spatial axis:
//
//	out = (in + 2*padding - kernelSize) / stride + 1
//
// Zero padding is implicit: receptive-field positions falling outside the
// input contribute nothing, which is exactly symmetric zero padding without
// materializing a padded copy.
//
// This is a direct convolution, O(batch*outC*outH*outW*inC*k^2); the contract
// is the numeric result, not a particular algorithm. Batch rows are
// independent, so the (sample, output channel) grid is fanned out across
// goroutines without changing results.
type Conv2D struct {
	inChannels  int
	outChannels int
	kernelSize  int
	stride      int
	padding     int

	kernel     *tensor.Tensor // [outC, inC, k, k]
	bias       *tensor.Tensor // [outC] or nil
	activation Activation

	fanout parallel.Config
}

// Conv2DConfig holds construction options for a Conv2D layer.
type Conv2DConfig struct {
	InputChannels  int
	OutputChannels int
	KernelSize     int
	Stride         int    // Defaults to 1 when zero.
	Padding        int    // Symmetric zero padding per spatial axis.
	Activation     string // Unknown names resolve to Identity.
	UseBias        bool
}

// NewConv2D creates a 2D convolutional layer.
//
// Kernel elements are sampled uniformly in [-s, s] with
// s = sqrt(2 / (inputChannels * kernelSize^2)); the bias vector is
// zero-initialized.
//
// Panics on an invalid configuration (non-positive channels, kernel size or
// stride, negative padding).
func NewConv2D(cfg Conv2DConfig) *Conv2D {
	if cfg.Stride == 0 {
		cfg.Stride = 1
	}
	if cfg.InputChannels <= 0 || cfg.OutputChannels <= 0 {
		panic(fmt.Sprintf("conv2d: invalid channels in=%d, out=%d", cfg.InputChannels, cfg.OutputChannels))
	}
	if cfg.KernelSize <= 0 {
		panic(fmt.Sprintf("conv2d: invalid kernel size %d", cfg.KernelSize))
	}
	if cfg.Stride <= 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %d", cfg.Stride))
	}
	if cfg.Padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid padding %d", cfg.Padding))
	}

	scale := math.Sqrt(2.0 / float64(cfg.InputChannels*cfg.KernelSize*cfg.KernelSize))
	c := &Conv2D{
		inChannels:  cfg.InputChannels,
		outChannels: cfg.OutputChannels,
		kernelSize:  cfg.KernelSize,
		stride:      cfg.Stride,
		padding:     cfg.Padding,
		kernel: uniform(tensor.Shape{
			cfg.OutputChannels, cfg.InputChannels, cfg.KernelSize, cfg.KernelSize,
		}, scale),
		activation: Resolve(cfg.Activation),
		fanout:     parallel.DefaultConfig(),
	}
	if cfg.UseBias {
		c.bias = tensor.New(tensor.Shape{cfg.OutputChannels})
	}
	return c
}

// Kind returns "conv2d".
func (c *Conv2D) Kind() string { return KindConv2D }

// OutputSize computes the output spatial dimensions for an input of the
// given height and width. Returns [outH, outW].
func (c *Conv2D) OutputSize(inputH, inputW int) [2]int {
	outH := (inputH+2*c.padding-c.kernelSize)/c.stride + 1
	outW := (inputW+2*c.padding-c.kernelSize)/c.stride + 1
	return [2]int{outH, outW}
}

// Forward performs the convolution.
//
// Input must be [batch, inputChannels, height, width] with spatial dimensions
// large enough for at least one kernel placement; violations fail with a
// *tensor.ShapeError.
func (c *Conv2D) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	shape := input.Shape()
	if input.Rank() != 4 || shape[1] != c.inChannels {
		want := tensor.Shape{shape[0], c.inChannels, -1, -1}
		if input.Rank() == 4 {
			want = tensor.Shape{shape[0], c.inChannels, shape[2], shape[3]}
		}
		return nil, tensor.NewShapeError("conv2d.forward", want, shape)
	}

	batch, h, w := shape[0], shape[2], shape[3]
	out := c.OutputSize(h, w)
	outH, outW := out[0], out[1]
	if outH <= 0 || outW <= 0 {
		minDim := c.kernelSize - 2*c.padding
		return nil, tensor.NewShapeError("conv2d.forward",
			tensor.Shape{batch, c.inChannels, minDim, minDim}, shape)
	}

	output := tensor.New(tensor.Shape{batch, c.outChannels, outH, outW})

	in := input.Data()
	k := c.kernel.Data()
	dst := output.Data()

	// Strides over the flat row-major layouts.
	inChanStride := h * w
	inBatchStride := c.inChannels * inChanStride
	kChanStride := c.kernelSize * c.kernelSize
	kFilterStride := c.inChannels * kChanStride
	outMapStride := outH * outW

	// Each (sample, output channel) task owns a disjoint feature map.
	parallel.ForBatch(batch, c.outChannels, func(b, oc int) {
		feature := dst[(b*c.outChannels+oc)*outMapStride : (b*c.outChannels+oc+1)*outMapStride]
		filter := k[oc*kFilterStride : (oc+1)*kFilterStride]

		var biasVal float64
		if c.bias != nil {
			biasVal = c.bias.Data()[oc]
		}

		for oh := 0; oh < outH; oh++ {
			for ow := 0; ow < outW; ow++ {
				sum := biasVal
				for ic := 0; ic < c.inChannels; ic++ {
					plane := in[b*inBatchStride+ic*inChanStride : b*inBatchStride+(ic+1)*inChanStride]
					kPlane := filter[ic*kChanStride : (ic+1)*kChanStride]
					for kh := 0; kh < c.kernelSize; kh++ {
						ih := oh*c.stride - c.padding + kh
						if ih < 0 || ih >= h {
							continue
						}
						for kw := 0; kw < c.kernelSize; kw++ {
							iw := ow*c.stride - c.padding + kw
							if iw < 0 || iw >= w {
								continue
							}
							sum += plane[ih*w+iw] * kPlane[kh*c.kernelSize+kw]
						}
					}
				}
				feature[oh*outW+ow] = sum
			}
		}
	}, c.fanout)

	return c.activation.Forward(output), nil
}

// Parameters returns {"kernel", "bias"} as live views; "bias" is absent when
// the layer was built without one.
func (c *Conv2D) Parameters() ParamSet {
	params := ParamSet{"kernel": c.kernel}
	if c.bias != nil {
		params["bias"] = c.bias
	}
	return params
}

// InputChannels returns the declared input channel count.
func (c *Conv2D) InputChannels() int { return c.inChannels }

// OutputChannels returns the number of filters.
func (c *Conv2D) OutputChannels() int { return c.outChannels }

// KernelSize returns the square kernel's side length.
func (c *Conv2D) KernelSize() int { return c.kernelSize }

// Stride returns the stride.
func (c *Conv2D) Stride() int { return c.stride }

// Padding returns the symmetric zero padding per spatial axis.
func (c *Conv2D) Padding() int { return c.padding }
