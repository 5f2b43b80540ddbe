package tensor

import (
	"fmt"

	"github.com/born-ml/convnet/internal/matrix"
)

// Pool reduces every channel with non-overlapping size×size blocks.
func (t *Tensor) Pool(kind matrix.PoolKind, size int) (*Tensor, error) {
	if t.D() == 0 {
		return nil, fmt.Errorf("pool: %w: empty tensor %v", ErrShapeMismatch, t.shape)
	}
	out := &Tensor{channels: make([]*matrix.Matrix, t.shape.D)}
	for i, c := range t.channels {
		p, err := c.Pool(kind, size)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		out.channels[i] = p
	}
	out.shape = Shape{N: out.channels[0].N(), M: out.channels[0].M(), D: t.shape.D}
	return out, nil
}

// Convolve applies the filter bank k. Output channel i is input channel
// i/(k.D/t.D) convolved with kernel channel i, so k.D must be a positive
// multiple of t.D.
func (t *Tensor) Convolve(k *Tensor, opts matrix.ConvOptions) (*Tensor, error) {
	if t.D() == 0 || k.D() == 0 || k.D()%t.D() != 0 {
		return nil, fmt.Errorf("convolve: %w: %d kernels over %d channels", ErrShapeMismatch, k.D(), t.D())
	}
	group := k.D() / t.D()
	channels := make([]*matrix.Matrix, k.D())
	for i := range channels {
		c, err := t.channels[i/group].Convolve(k.channels[i], opts)
		if err != nil {
			return nil, fmt.Errorf("kernel %d: %w", i, err)
		}
		channels[i] = c
	}
	return wrap(channels), nil
}

// ConvolveMerged convolves every input channel with each kernel and sums the
// results, so output channel i = Σ_j input_j ⊛ k_i.
func (t *Tensor) ConvolveMerged(k *Tensor, opts matrix.ConvOptions) (*Tensor, error) {
	if t.D() == 0 || k.D() == 0 {
		return nil, fmt.Errorf("convolve merged: %w: %d kernels over %d channels", ErrShapeMismatch, k.D(), t.D())
	}
	channels := make([]*matrix.Matrix, k.D())
	for i := range channels {
		var acc *matrix.Matrix
		for j, in := range t.channels {
			c, err := in.Convolve(k.channels[i], opts)
			if err != nil {
				return nil, fmt.Errorf("kernel %d channel %d: %w", i, j, err)
			}
			if acc == nil {
				acc = c
				continue
			}
			if err := acc.Add(c); err != nil {
				return nil, err
			}
		}
		channels[i] = acc
	}
	return wrap(channels), nil
}

// MatMul multiplies two single-channel tensors as matrices.
func (t *Tensor) MatMul(other *Tensor) (*Tensor, error) {
	if t.D() != 1 || other.D() != 1 {
		return nil, fmt.Errorf("matmul: %w: depths %d and %d, want 1", ErrShapeMismatch, t.D(), other.D())
	}
	m, err := matrix.MatMul(t.channels[0], other.channels[0])
	if err != nil {
		return nil, err
	}
	return wrap([]*matrix.Matrix{m}), nil
}

// Add adds other cell by cell in place.
func (t *Tensor) Add(other *Tensor) error {
	if t.shape != other.shape {
		return fmt.Errorf("add: %w: %v vs %v", ErrShapeMismatch, t.shape, other.shape)
	}
	for i, c := range t.channels {
		if err := c.Add(other.channels[i]); err != nil {
			return err
		}
	}
	return nil
}

// AddScalar adds v to every cell in place and returns t.
func (t *Tensor) AddScalar(v float64) *Tensor {
	for _, c := range t.channels {
		c.AddScalar(v)
	}
	return t
}

// Scale multiplies every cell by v in place and returns t.
func (t *Tensor) Scale(v float64) *Tensor {
	for _, c := range t.channels {
		c.Scale(v)
	}
	return t
}

// AddPerChannel adds biases[i] to every cell of channel i.
func (t *Tensor) AddPerChannel(biases []float64) error {
	if len(biases) != t.D() {
		return fmt.Errorf("add biases: %w: %d biases for depth %d", ErrShapeMismatch, len(biases), t.D())
	}
	for i, c := range t.channels {
		c.AddScalar(biases[i])
	}
	return nil
}

// Apply replaces every cell with fn(cell) in place and returns t.
func (t *Tensor) Apply(fn func(float64) float64) *Tensor {
	for _, c := range t.channels {
		c.Apply(fn)
	}
	return t
}

func wrap(channels []*matrix.Matrix) *Tensor {
	return &Tensor{
		shape:    Shape{N: channels[0].N(), M: channels[0].M(), D: len(channels)},
		channels: channels,
	}
}
