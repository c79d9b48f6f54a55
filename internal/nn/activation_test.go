package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-ml/forge/internal/tensor"
)

func TestLookupKnownNames(t *testing.T) {
	for _, name := range []string{"relu", "sigmoid", "tanh", "softmax", "linear"} {
		a, ok := Lookup(name)
		require.True(t, ok, "Lookup(%q)", name)
		assert.Equal(t, name, a.Name())
	}
}

func TestLookupUnknownName(t *testing.T) {
	_, ok := Lookup("swish")
	assert.False(t, ok)
}

func TestResolveUnknownIsIdentity(t *testing.T) {
	for _, name := range []string{"", "swish", "SOFTMAX"} {
		a := Resolve(name)
		assert.Equal(t, "identity", a.Name(), "Resolve(%q)", name)

		in, err := tensor.FromSlice([]float64{-2, 0, 3.5}, tensor.Shape{3})
		require.NoError(t, err)
		out := a.Forward(in)
		assert.Equal(t, in.Data(), out.Data())
	}
}

func TestReLU(t *testing.T) {
	in, err := tensor.FromSlice([]float64{-1, 0, 2, -0.5}, tensor.Shape{2, 2})
	require.NoError(t, err)

	out := Resolve("relu").Forward(in)
	assert.Equal(t, []float64{0, 0, 2, 0}, out.Data())
	assert.Equal(t, []float64{-1, 0, 2, -0.5}, in.Data(), "input must not be mutated")
}

func TestSigmoidTanhValues(t *testing.T) {
	in, err := tensor.FromSlice([]float64{0, 1, -1}, tensor.Shape{3})
	require.NoError(t, err)

	sig := Resolve("sigmoid").Forward(in)
	assert.InDelta(t, 0.5, sig.At(0), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-1)), sig.At(1), 1e-12)

	th := Resolve("tanh").Forward(in)
	assert.InDelta(t, 0, th.At(0), 1e-12)
	assert.InDelta(t, math.Tanh(-1), th.At(2), 1e-12)
}

func TestElementwiseAnyRank(t *testing.T) {
	// The same transform applies per scalar whether the tensor is a vector
	// or a 4D block.
	vec, err := tensor.FromSlice([]float64{-3}, tensor.Shape{1})
	require.NoError(t, err)
	block := tensor.Full(tensor.Shape{2, 2, 2, 2}, -3)

	relu := Resolve("relu")
	assert.Equal(t, 0.0, relu.Forward(vec).At(0))
	assert.Equal(t, 0.0, relu.Forward(block).At(1, 1, 1, 1))
}

func TestSoftmaxRowsNormalized(t *testing.T) {
	in, err := tensor.From2D([][]float64{
		{1, 2, 3},
		{-5, 0, 5},
		{0.1, 0.1, 0.1},
	})
	require.NoError(t, err)

	out := Resolve("softmax").Forward(in)
	for i := 0; i < 3; i++ {
		sum := 0.0
		for j := 0; j < 3; j++ {
			v := out.At(i, j)
			assert.GreaterOrEqual(t, v, 0.0, "softmax output must be non-negative")
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "row %d must sum to 1", i)
	}
}

func TestSoftmaxRowsIndependent(t *testing.T) {
	in, err := tensor.From2D([][]float64{
		{1, 2},
		{1001, 1002}, // same offsets, shifted by 1000
	})
	require.NoError(t, err)

	out := Resolve("softmax").Forward(in)
	assert.InDelta(t, out.At(0, 0), out.At(1, 0), 1e-12, "rows are normalized independently")
	assert.InDelta(t, out.At(0, 1), out.At(1, 1), 1e-12)
}

func TestSoftmaxNumericallyStable(t *testing.T) {
	// Without max subtraction exp(1000) overflows to +Inf.
	in, err := tensor.FromSlice([]float64{1000, 1000}, tensor.Shape{2})
	require.NoError(t, err)

	out := Resolve("softmax").Forward(in)
	assert.InDelta(t, 0.5, out.At(0), 1e-12)
	assert.InDelta(t, 0.5, out.At(1), 1e-12)
}

func TestSoftmaxRank1SingleRow(t *testing.T) {
	in, err := tensor.FromSlice([]float64{0, math.Log(3)}, tensor.Shape{2})
	require.NoError(t, err)

	out := Resolve("softmax").Forward(in)
	assert.InDelta(t, 0.25, out.At(0), 1e-12)
	assert.InDelta(t, 0.75, out.At(1), 1e-12)
}
