package nn

import (
	"fmt"

	"github.com/forge-ml/forge/internal/tensor"
)

// RNN is a simple (Elman) recurrent layer.
//
// Per time step t, given the previous hidden state h:
//
//	h <- activation(xt @ wxh + h @ whh + bh)
//
// Time steps are a hard sequential dependency: step t cannot run before step
// t-1 completes. Batch rows remain independent of each other.
type RNN struct {
	inputSize  int
	hiddenSize int

	wxh *tensor.Tensor // [inputSize, hiddenSize]
	whh *tensor.Tensor // [hiddenSize, hiddenSize]
	bh  *tensor.Tensor // [hiddenSize] or nil

	activation      Activation
	returnSequences bool
}

// RNNConfig holds construction options for an RNN layer.
type RNNConfig struct {
	Activation      string // Unknown names resolve to Identity; "tanh" is typical.
	ReturnSequences bool   // Return every hidden state instead of only the final one.
	UseBias         bool
}

// NewRNN creates a simple recurrent layer.
//
// Both weight matrices are sampled uniformly in [-0.1, 0.1]; the bias vector
// is zero-initialized. Panics on non-positive sizes.
func NewRNN(inputSize, hiddenSize int, cfg RNNConfig) *RNN {
	if inputSize <= 0 || hiddenSize <= 0 {
		panic(fmt.Sprintf("rnn: invalid sizes in=%d, hidden=%d", inputSize, hiddenSize))
	}

	r := &RNN{
		inputSize:       inputSize,
		hiddenSize:      hiddenSize,
		wxh:             uniform(tensor.Shape{inputSize, hiddenSize}, defaultInitScale),
		whh:             uniform(tensor.Shape{hiddenSize, hiddenSize}, defaultInitScale),
		activation:      Resolve(cfg.Activation),
		returnSequences: cfg.ReturnSequences,
	}
	if cfg.UseBias {
		r.bh = tensor.New(tensor.Shape{hiddenSize})
	}
	return r
}

// Kind returns "rnn".
func (r *RNN) Kind() string { return KindRNN }

// Forward runs the recurrence with an all-zero initial hidden state.
func (r *RNN) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	return r.ForwardState(input, nil)
}

// ForwardState runs the recurrence from the given initial hidden state.
//
// input is [batch, seqLen, inputSize]; initialHidden is [batch, hiddenSize]
// or nil for all zeros. With ReturnSequences the result is
// [batch, seqLen+1, hiddenSize] — every hidden state in order, the initial
// one included; otherwise it is the final hidden state [batch, hiddenSize].
func (r *RNN) ForwardState(input, initialHidden *tensor.Tensor) (*tensor.Tensor, error) {
	shape := input.Shape()
	if input.Rank() != 3 || shape[2] != r.inputSize {
		want := tensor.Shape{shape[0], -1, r.inputSize}
		if input.Rank() == 3 {
			want = tensor.Shape{shape[0], shape[1], r.inputSize}
		}
		return nil, tensor.NewShapeError("rnn.forward", want, shape)
	}
	batch, seqLen := shape[0], shape[1]

	hidden, err := initialState("rnn.forward", initialHidden, batch, r.hiddenSize)
	if err != nil {
		return nil, err
	}

	var states *tensor.Tensor
	if r.returnSequences {
		states = tensor.New(tensor.Shape{batch, seqLen + 1, r.hiddenSize})
		writeStep(states, 0, hidden)
	}

	for t := 0; t < seqLen; t++ {
		xt := readStep(input, t)

		ih, err := tensor.MatMul(xt, r.wxh)
		if err != nil {
			return nil, err
		}
		hh, err := tensor.MatMul(hidden, r.whh)
		if err != nil {
			return nil, err
		}
		pre, err := tensor.Add(ih, hh)
		if err != nil {
			return nil, err
		}
		if r.bh != nil {
			if err := tensor.AddRowInPlace(pre, r.bh); err != nil {
				return nil, err
			}
		}
		hidden = r.activation.Forward(pre)

		if r.returnSequences {
			writeStep(states, t+1, hidden)
		}
	}

	if r.returnSequences {
		return states, nil
	}
	return hidden, nil
}

// Parameters returns {"wxh", "whh", "bh"} as live views; "bh" is absent when
// the layer was built without a bias.
func (r *RNN) Parameters() ParamSet {
	params := ParamSet{"wxh": r.wxh, "whh": r.whh}
	if r.bh != nil {
		params["bh"] = r.bh
	}
	return params
}

// InputSize returns the declared per-step input length.
func (r *RNN) InputSize() int { return r.inputSize }

// HiddenSize returns the hidden state length.
func (r *RNN) HiddenSize() int { return r.hiddenSize }

// ReturnSequences reports whether Forward collects every hidden state.
func (r *RNN) ReturnSequences() bool { return r.returnSequences }

// initialState validates a caller-supplied [batch, size] state, or allocates
// an all-zero one when state is nil.
func initialState(op string, state *tensor.Tensor, batch, size int) (*tensor.Tensor, error) {
	want := tensor.Shape{batch, size}
	if state == nil {
		return tensor.New(want), nil
	}
	if !state.Shape().Equal(want) {
		return nil, tensor.NewShapeError(op, want, state.Shape())
	}
	// The recurrence reassigns rather than mutates, but cloning keeps the
	// caller's tensor untouched even at step 0.
	return state.Clone(), nil
}

// readStep extracts time step t of a [batch, seq, size] tensor as a
// [batch, size] matrix.
func readStep(seq *tensor.Tensor, t int) *tensor.Tensor {
	shape := seq.Shape()
	batch, steps, size := shape[0], shape[1], shape[2]
	out := tensor.New(tensor.Shape{batch, size})
	src := seq.Data()
	dst := out.Data()
	for b := 0; b < batch; b++ {
		copy(dst[b*size:(b+1)*size], src[(b*steps+t)*size:(b*steps+t+1)*size])
	}
	return out
}

// writeStep stores a [batch, size] matrix as time step t of a
// [batch, steps, size] tensor.
func writeStep(seq *tensor.Tensor, t int, state *tensor.Tensor) {
	shape := seq.Shape()
	batch, steps, size := shape[0], shape[1], shape[2]
	src := state.Data()
	dst := seq.Data()
	for b := 0; b < batch; b++ {
		copy(dst[(b*steps+t)*size:(b*steps+t+1)*size], src[b*size:(b+1)*size])
	}
}
