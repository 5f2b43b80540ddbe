// Package tensor implements a stack of equally shaped matrices (channels).
//
// A Tensor of shape N×M×D holds D channels, each an N-column by M-row
// matrix.Matrix. Flat views enumerate channel by channel, each channel row
// by row.
package tensor

import (
	"fmt"
	"strings"

	"github.com/born-ml/convnet/internal/matrix"
)

// ErrShapeMismatch is returned when operand shapes are incompatible.
var ErrShapeMismatch = matrix.ErrShapeMismatch

// Tensor is an ordered sequence of channels sharing one (N, M).
type Tensor struct {
	shape    Shape
	channels []*matrix.Matrix
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape { return t.shape }

// N returns the channel width.
func (t *Tensor) N() int { return t.shape.N }

// M returns the channel height.
func (t *Tensor) M() int { return t.shape.M }

// D returns the depth (number of channels).
func (t *Tensor) D() int { return t.shape.D }

// NumElements returns N*M*D.
func (t *Tensor) NumElements() int { return t.shape.NumElements() }

// Channel returns channel i. The matrix is shared, not copied.
func (t *Tensor) Channel(i int) *matrix.Matrix {
	return t.channels[i]
}

// Matrix returns channel 0.
func (t *Tensor) Matrix() *matrix.Matrix {
	return t.channels[0]
}

// SetChannel replaces channel i with a copy of m.
func (t *Tensor) SetChannel(i int, m *matrix.Matrix) error {
	if m.N() != t.shape.N || m.M() != t.shape.M {
		return fmt.Errorf("set channel %d: %w: %dx%d into %v", i, ErrShapeMismatch, m.N(), m.M(), t.shape)
	}
	t.channels[i] = m.Clone()
	return nil
}

// At returns the cell (x, y) of channel d.
func (t *Tensor) At(x, y, d int) float64 {
	return t.channels[d].At(x, y)
}

// Set stores v at cell (x, y) of channel d.
func (t *Tensor) Set(x, y, d int, v float64) {
	t.channels[d].Set(x, y, v)
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	out := &Tensor{shape: t.shape, channels: make([]*matrix.Matrix, len(t.channels))}
	for i, c := range t.channels {
		out.channels[i] = c.Clone()
	}
	return out
}

// Values returns every cell, channel by channel, each channel row-major.
func (t *Tensor) Values() []float64 {
	out := make([]float64, 0, t.NumElements())
	for _, c := range t.channels {
		out = append(out, c.Values()...)
	}
	return out
}

// Total returns the sum of every cell.
func (t *Tensor) Total() float64 {
	var s float64
	for _, c := range t.channels {
		s += c.Total()
	}
	return s
}

// Equal reports whether a and b have the same shape and every channel
// matches within matrix.Epsilon.
func Equal(a, b *Tensor) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.shape != b.shape {
		return false
	}
	for i := range a.channels {
		if !matrix.Equal(a.channels[i], b.channels[i]) {
			return false
		}
	}
	return true
}

// String formats the shape followed by every channel.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tensor %v\n", t.shape)
	for i, c := range t.channels {
		fmt.Fprintf(&sb, "channel %d: %v", i, c)
	}
	return sb.String()
}
