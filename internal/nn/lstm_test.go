package nn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-ml/forge/internal/tensor"
)

func TestLSTMForgetBiasDefault(t *testing.T) {
	layer := NewLSTM(4, 6, LSTMConfig{UseBias: true})
	params := layer.Parameters()

	for _, v := range params["bf"].Data() {
		assert.Equal(t, 1.0, v, "forget-gate bias must start at 1")
	}
	for _, name := range []string{"bi", "bc", "bo"} {
		for _, v := range params[name].Data() {
			assert.Equal(t, 0.0, v, "%s must start at 0", name)
		}
	}
}

func TestLSTMParameterGroups(t *testing.T) {
	withBias := NewLSTM(3, 5, LSTMConfig{UseBias: true})
	params := withBias.Parameters()
	require.Len(t, params, 12)

	for _, suffix := range []string{"i", "f", "c", "o"} {
		assert.True(t, params["wx"+suffix].Shape().Equal(tensor.Shape{3, 5}), "wx%s shape", suffix)
		assert.True(t, params["wh"+suffix].Shape().Equal(tensor.Shape{5, 5}), "wh%s shape", suffix)
		assert.True(t, params["b"+suffix].Shape().Equal(tensor.Shape{5}), "b%s shape", suffix)
	}

	withoutBias := NewLSTM(3, 5, LSTMConfig{})
	require.Len(t, withoutBias.Parameters(), 8)
}

func TestLSTMGateInitScale(t *testing.T) {
	layer := NewLSTM(6, 10, LSTMConfig{})
	bound := math.Sqrt(1.0 / 16.0)
	for name, p := range layer.Parameters() {
		for i, v := range p.Data() {
			if v < -bound || v > bound {
				t.Fatalf("%s[%d] = %v outside [-%v, %v]", name, i, v, bound, bound)
			}
		}
	}
}

// zeroLSTMWeights zeroes every gate matrix so gate preactivations reduce to
// their biases.
func zeroLSTMWeights(l *LSTM) {
	for name, p := range l.Parameters() {
		if name[0] == 'w' {
			p.Fill(0)
		}
	}
}

func TestLSTMStateEquations(t *testing.T) {
	// All weights zero, biases at their defaults (bf = 1, others 0), initial
	// cell state [1]:
	//   i  = sigmoid(0) = 0.5
	//   f  = sigmoid(1)
	//   c~ = tanh(0)    = 0
	//   C' = f*1 + 0.5*0 = sigmoid(1)
	//   o  = sigmoid(0) = 0.5
	//   h' = 0.5 * tanh(sigmoid(1))
	layer := NewLSTM(1, 1, LSTMConfig{UseBias: true})
	zeroLSTMWeights(layer)

	input, err := tensor.From3D([][][]float64{{{7}}}) // value irrelevant: wx = 0
	require.NoError(t, err)
	c0, err := tensor.From2D([][]float64{{1}})
	require.NoError(t, err)

	output, hidden, cell, err := layer.ForwardState(input, nil, c0)
	require.NoError(t, err)

	f := 1.0 / (1.0 + math.Exp(-1))
	assert.InDelta(t, f, cell.At(0, 0), 1e-12, "C' = f*C")
	assert.InDelta(t, 0.5*math.Tanh(f), hidden.At(0, 0), 1e-12, "h' = o*tanh(C')")
	assert.Equal(t, hidden.At(0, 0), output.At(0, 0), "output is the final hidden state")
}

func TestLSTMForgetGateRemembers(t *testing.T) {
	// With zero weights and a strongly positive forget bias, the cell decays
	// by sigmoid(bf) each step instead of resetting.
	layer := NewLSTM(1, 1, LSTMConfig{UseBias: true})
	zeroLSTMWeights(layer)
	layer.Parameters()["bf"].Fill(10) // f ~ 1: remember almost everything

	input := tensor.New(tensor.Shape{1, 5, 1})
	c0, err := tensor.From2D([][]float64{{1}})
	require.NoError(t, err)

	_, _, cell, err := layer.ForwardState(input, nil, c0)
	require.NoError(t, err)
	assert.Greater(t, cell.At(0, 0), 0.99, "cell state must survive five steps")
}

func TestLSTMEmptyBatch(t *testing.T) {
	layer := NewLSTM(2, 3, LSTMConfig{UseBias: true})

	output, hidden, cell, err := layer.ForwardState(tensor.New(tensor.Shape{0, 2, 2}), nil, nil)
	require.NoError(t, err)
	assert.True(t, output.Shape().Equal(tensor.Shape{0, 3}), "empty-batch output shape = %v", output.Shape())
	assert.True(t, hidden.Shape().Equal(tensor.Shape{0, 3}))
	assert.True(t, cell.Shape().Equal(tensor.Shape{0, 3}))
}

func TestLSTMReturnSequencesIncludesInitial(t *testing.T) {
	layer := NewLSTM(2, 3, LSTMConfig{ReturnSequences: true, UseBias: true})

	input := tensor.New(tensor.Shape{2, 3, 2})
	h0, err := tensor.From2D([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	output, hidden, cell, err := layer.ForwardState(input, h0, nil)
	require.NoError(t, err)
	require.True(t, output.Shape().Equal(tensor.Shape{2, 4, 3}), "sequence shape = %v", output.Shape())

	assert.Equal(t, 1.0, output.At(0, 0, 0), "sequence starts with the supplied state")
	assert.Equal(t, 6.0, output.At(1, 0, 2))
	assert.True(t, hidden.Shape().Equal(tensor.Shape{2, 3}))
	assert.True(t, cell.Shape().Equal(tensor.Shape{2, 3}))
}

func TestLSTMDefaultStatesAreZero(t *testing.T) {
	layer := NewLSTM(1, 2, LSTMConfig{ReturnSequences: true})

	output, err := layer.Forward(tensor.New(tensor.Shape{1, 1, 1}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, output.At(0, 0, 0))
	assert.Equal(t, 0.0, output.At(0, 0, 1))
}

func TestLSTMBadInputs(t *testing.T) {
	layer := NewLSTM(3, 2, LSTMConfig{})
	var shapeErr *tensor.ShapeError

	_, err := layer.Forward(tensor.New(tensor.Shape{2, 3}))
	require.True(t, errors.As(err, &shapeErr), "rank error = %v", err)

	_, err = layer.Forward(tensor.New(tensor.Shape{1, 2, 4}))
	require.True(t, errors.As(err, &shapeErr), "feature error = %v", err)

	_, _, _, err = layer.ForwardState(tensor.New(tensor.Shape{1, 2, 3}), nil, tensor.New(tensor.Shape{1, 3}))
	require.True(t, errors.As(err, &shapeErr), "initial cell error = %v", err)
}
