package tensor

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/convnet/internal/matrix"
)

// Axis selects the dimension a vector is laid out along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisD
)

// New creates a zero-filled tensor of n×m×d.
func New(n, m, d int) *Tensor {
	t := &Tensor{shape: Shape{N: n, M: m, D: d}, channels: make([]*matrix.Matrix, d)}
	for i := range t.channels {
		t.channels[i] = matrix.New(n, m)
	}
	return t
}

// Zeros creates a zero-filled tensor of the given shape.
func Zeros(s Shape) *Tensor {
	return New(s.N, s.M, s.D)
}

// Random creates a tensor with cells uniformly drawn from [from, to).
func Random(s Shape, from, to float64, rng *rand.Rand) *Tensor {
	t := &Tensor{shape: s, channels: make([]*matrix.Matrix, s.D)}
	for i := range t.channels {
		t.channels[i] = matrix.Random(s.N, s.M, from, to, rng)
	}
	return t
}

// FromValues creates an n×m×d tensor filled channel by channel, each channel
// row by row.
func FromValues(n, m, d int, values []float64) (*Tensor, error) {
	s := Shape{N: n, M: m, D: d}
	if len(values) != s.NumElements() {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", s, s.NumElements(), len(values))
	}
	t := &Tensor{shape: s, channels: make([]*matrix.Matrix, d)}
	plane := s.Plane()
	for i := range t.channels {
		c, err := matrix.FromValues(n, m, values[i*plane:(i+1)*plane])
		if err != nil {
			return nil, err
		}
		t.channels[i] = c
	}
	return t, nil
}

// FromMatrices creates a tensor whose channels are copies of ms.
func FromMatrices(ms ...*matrix.Matrix) (*Tensor, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("tensor needs at least one channel")
	}
	t := &Tensor{shape: Shape{N: ms[0].N(), M: ms[0].M(), D: len(ms)}, channels: make([]*matrix.Matrix, len(ms))}
	for i, m := range ms {
		if !m.SameShape(ms[0]) {
			return nil, fmt.Errorf("channel %d: %w: %dx%d vs %dx%d", i, ErrShapeMismatch, m.N(), m.M(), ms[0].N(), ms[0].M())
		}
		t.channels[i] = m.Clone()
	}
	return t, nil
}

// FromMatrix wraps a copy of m as a single-channel tensor.
func FromMatrix(m *matrix.Matrix) *Tensor {
	return &Tensor{shape: Shape{N: m.N(), M: m.M(), D: 1}, channels: []*matrix.Matrix{m.Clone()}}
}

// FromVector lays values out along one axis: a row (AxisX), a column (AxisY)
// or a 1×1 stack of channels (AxisD).
func FromVector(values []float64, axis Axis) (*Tensor, error) {
	switch axis {
	case AxisX:
		return FromValues(len(values), 1, 1, values)
	case AxisY:
		return FromValues(1, len(values), 1, values)
	case AxisD:
		return FromValues(1, 1, len(values), values)
	default:
		return nil, fmt.Errorf("unknown axis %d", axis)
	}
}
