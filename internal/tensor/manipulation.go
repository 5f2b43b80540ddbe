package tensor

import (
	"fmt"

	"github.com/born-ml/convnet/internal/matrix"
)

// FlattenToColumn returns every cell as a column vector (width 1, height NMD).
func (t *Tensor) FlattenToColumn() *matrix.Matrix {
	return matrix.FromColumn(t.Values())
}

// FlattenToRow returns every cell as a row vector (width NMD, height 1).
func (t *Tensor) FlattenToRow() *matrix.Matrix {
	return matrix.FromRow(t.Values())
}

// FlattenToDepth returns a 1×1×NMD tensor holding every cell.
func (t *Tensor) FlattenToDepth() *Tensor {
	out, _ := FromValues(1, 1, t.NumElements(), t.Values())
	return out
}

// ExpandFromLine rebuilds an n×m×d tensor from a single-row or single-column
// line, the inverse of the Flatten family.
func ExpandFromLine(line *Tensor, n, m, d int) (*Tensor, error) {
	s := Shape{N: n, M: m, D: d}
	if line.D() != 1 || (line.N() != 1 && line.M() != 1) {
		return nil, fmt.Errorf("expand: %w: %v is not a line", ErrShapeMismatch, line.shape)
	}
	if line.NumElements() != s.NumElements() {
		return nil, fmt.Errorf("expand: %w: %d cells into %v", ErrShapeMismatch, line.NumElements(), s)
	}
	return FromValues(n, m, d, line.Values())
}

// Reshape returns a copy with the same cells in a new shape.
func (t *Tensor) Reshape(s Shape) (*Tensor, error) {
	if s.NumElements() != t.NumElements() {
		return nil, fmt.Errorf("reshape: %w: %v into %v", ErrShapeMismatch, t.shape, s)
	}
	return FromValues(s.N, s.M, s.D, t.Values())
}

// Upsample returns a copy with every channel repeated kx times horizontally
// and ky times vertically.
func (t *Tensor) Upsample(kx, ky int) *Tensor {
	out := &Tensor{
		shape:    Shape{N: t.shape.N * kx, M: t.shape.M * ky, D: t.shape.D},
		channels: make([]*matrix.Matrix, t.shape.D),
	}
	for i, c := range t.channels {
		out.channels[i] = c.Upsample(kx, ky)
	}
	return out
}

// Replace overwrites the window at (x, y) of every channel with the matching
// channel of other. Depths must match.
func (t *Tensor) Replace(x, y int, other *Tensor) error {
	if other.D() != t.D() {
		return fmt.Errorf("replace: %w: depth %d vs %d", ErrShapeMismatch, other.D(), t.D())
	}
	for i, c := range t.channels {
		if err := c.Replace(x, y, other.channels[i]); err != nil {
			return err
		}
	}
	return nil
}

// Append adds a copy of m as a new last channel.
func (t *Tensor) Append(m *matrix.Matrix) error {
	if m.N() != t.shape.N || m.M() != t.shape.M {
		return fmt.Errorf("append: %w: %dx%d onto %v", ErrShapeMismatch, m.N(), m.M(), t.shape)
	}
	t.channels = append(t.channels, m.Clone())
	t.shape.D++
	return nil
}
