package nn

import (
	"fmt"
	"math"

	"github.com/forge-ml/forge/internal/tensor"
)

// LSTM is a long short-term memory layer with the standard four gates.
//
// Per time step t, given the previous hidden state h and cell state C:
//
//	i  = sigmoid(xt @ Wxi + h @ Whi + bi)   input gate
//	f  = sigmoid(xt @ Wxf + h @ Whf + bf)   forget gate
//	c~ = tanh   (xt @ Wxc + h @ Whc + bc)   cell candidate
//	C' = f * C + i * c~
//	o  = sigmoid(xt @ Wxo + h @ Who + bo)   output gate
//	h' = o * tanh(C')
//
// The forget-gate bias starts at 1 everywhere, biasing a fresh layer toward
// remembering rather than forgetting.
type LSTM struct {
	inputSize  int
	hiddenSize int

	input  gate
	forget gate
	cell   gate
	output gate

	returnSequences bool
}

// gate holds one gate's parameter group.
type gate struct {
	wx *tensor.Tensor // [inputSize, hiddenSize]
	wh *tensor.Tensor // [hiddenSize, hiddenSize]
	b  *tensor.Tensor // [hiddenSize] or nil
}

// LSTMConfig holds construction options for an LSTM layer.
type LSTMConfig struct {
	ReturnSequences bool // Return every hidden state instead of only the final one.
	UseBias         bool
}

// NewLSTM creates an LSTM layer.
//
// All gate matrices are sampled uniformly in [-s, s] with
// s = sqrt(1 / (inputSize + hiddenSize)). Gate biases start at zero except
// the forget gate's, which starts at 1. Panics on non-positive sizes.
func NewLSTM(inputSize, hiddenSize int, cfg LSTMConfig) *LSTM {
	if inputSize <= 0 || hiddenSize <= 0 {
		panic(fmt.Sprintf("lstm: invalid sizes in=%d, hidden=%d", inputSize, hiddenSize))
	}

	scale := math.Sqrt(1.0 / float64(inputSize+hiddenSize))
	newGate := func() gate {
		g := gate{
			wx: uniform(tensor.Shape{inputSize, hiddenSize}, scale),
			wh: uniform(tensor.Shape{hiddenSize, hiddenSize}, scale),
		}
		if cfg.UseBias {
			g.b = tensor.New(tensor.Shape{hiddenSize})
		}
		return g
	}

	l := &LSTM{
		inputSize:       inputSize,
		hiddenSize:      hiddenSize,
		input:           newGate(),
		forget:          newGate(),
		cell:            newGate(),
		output:          newGate(),
		returnSequences: cfg.ReturnSequences,
	}
	if l.forget.b != nil {
		l.forget.b.Fill(1)
	}
	return l
}

// Kind returns "lstm".
func (l *LSTM) Kind() string { return KindLSTM }

// Forward runs the recurrence with all-zero initial hidden and cell states,
// returning only the output (see ForwardState for the full result).
func (l *LSTM) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	output, _, _, err := l.ForwardState(input, nil, nil)
	return output, err
}

// ForwardState runs the recurrence from the given initial states.
//
// input is [batch, seqLen, inputSize]; initialHidden and initialCell are
// [batch, hiddenSize] or nil for all zeros. It returns (output, hidden, cell):
// hidden and cell are the final states; output is the final hidden state, or
// with ReturnSequences the ordered sequence of every hidden state including
// the initial one ([batch, seqLen+1, hiddenSize]).
func (l *LSTM) ForwardState(input, initialHidden, initialCell *tensor.Tensor) (output, hidden, cell *tensor.Tensor, err error) {
	shape := input.Shape()
	if input.Rank() != 3 || shape[2] != l.inputSize {
		want := tensor.Shape{shape[0], -1, l.inputSize}
		if input.Rank() == 3 {
			want = tensor.Shape{shape[0], shape[1], l.inputSize}
		}
		return nil, nil, nil, tensor.NewShapeError("lstm.forward", want, shape)
	}
	batch, seqLen := shape[0], shape[1]

	hidden, err = initialState("lstm.forward", initialHidden, batch, l.hiddenSize)
	if err != nil {
		return nil, nil, nil, err
	}
	cell, err = initialState("lstm.forward", initialCell, batch, l.hiddenSize)
	if err != nil {
		return nil, nil, nil, err
	}

	var states *tensor.Tensor
	if l.returnSequences {
		states = tensor.New(tensor.Shape{batch, seqLen + 1, l.hiddenSize})
		writeStep(states, 0, hidden)
	}

	for t := 0; t < seqLen; t++ {
		xt := readStep(input, t)

		iGate, err := l.input.preactivation(xt, hidden)
		if err != nil {
			return nil, nil, nil, err
		}
		fGate, err := l.forget.preactivation(xt, hidden)
		if err != nil {
			return nil, nil, nil, err
		}
		cand, err := l.cell.preactivation(xt, hidden)
		if err != nil {
			return nil, nil, nil, err
		}
		oGate, err := l.output.preactivation(xt, hidden)
		if err != nil {
			return nil, nil, nil, err
		}

		i := iGate.Apply(sigmoid)
		f := fGate.Apply(sigmoid)
		c := cand.Apply(math.Tanh)
		o := oGate.Apply(sigmoid)

		// C' = f*C + i*c~ and h' = o*tanh(C'), all elementwise.
		nextCell := tensor.New(cell.Shape())
		nextHidden := tensor.New(cell.Shape())
		cd, nc, nh := cell.Data(), nextCell.Data(), nextHidden.Data()
		id, fd, cdn, od := i.Data(), f.Data(), c.Data(), o.Data()
		for k := range nc {
			nc[k] = fd[k]*cd[k] + id[k]*cdn[k]
			nh[k] = od[k] * math.Tanh(nc[k])
		}
		cell = nextCell
		hidden = nextHidden

		if l.returnSequences {
			writeStep(states, t+1, hidden)
		}
	}

	if l.returnSequences {
		return states, hidden, cell, nil
	}
	return hidden, hidden, cell, nil
}

// preactivation computes xt @ wx + h @ wh + b for one gate.
func (g gate) preactivation(xt, h *tensor.Tensor) (*tensor.Tensor, error) {
	ih, err := tensor.MatMul(xt, g.wx)
	if err != nil {
		return nil, err
	}
	hh, err := tensor.MatMul(h, g.wh)
	if err != nil {
		return nil, err
	}
	pre, err := tensor.Add(ih, hh)
	if err != nil {
		return nil, err
	}
	if g.b != nil {
		if err := tensor.AddRowInPlace(pre, g.b); err != nil {
			return nil, err
		}
	}
	return pre, nil
}

// Parameters returns the four gate groups as live views: wxi/whi/bi,
// wxf/whf/bf, wxc/whc/bc, wxo/who/bo. Bias entries are absent when the layer
// was built without biases.
func (l *LSTM) Parameters() ParamSet {
	params := ParamSet{}
	add := func(g gate, suffix string) {
		params["wx"+suffix] = g.wx
		params["wh"+suffix] = g.wh
		if g.b != nil {
			params["b"+suffix] = g.b
		}
	}
	add(l.input, "i")
	add(l.forget, "f")
	add(l.cell, "c")
	add(l.output, "o")
	return params
}

// InputSize returns the declared per-step input length.
func (l *LSTM) InputSize() int { return l.inputSize }

// HiddenSize returns the hidden state length.
func (l *LSTM) HiddenSize() int { return l.hiddenSize }

// ReturnSequences reports whether Forward collects every hidden state.
func (l *LSTM) ReturnSequences() bool { return l.returnSequences }
