package nn

import (
	"fmt"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/born-ml/convnet/internal/tensor"
)

// logisticDerivative is the activation derivative o(1-o) of the logistic
// function, expressed through its output. Every backward rule uses it
// regardless of the activation a layer is configured with.
func logisticDerivative(o float64) float64 {
	return o * (1 - o)
}

// gradientStep is the outcome of one backward rule: deltas to add to a
// layer's parameters and the error signal for the layer's own data.
type gradientStep struct {
	weights *tensor.Tensor // nil when the pairing has no weights
	biases  []float64
	err     *tensor.Tensor // nil when nothing propagates
}

// denseGradient is the rule for a dense boundary. w holds the weights
// (units_next × inputs), input is the flattened column fed to them, output
// and e are the successor's data and error as columns.
func denseGradient(w, input, output, e *matrix.Matrix, lr float64, propagate bool) (gradientStep, error) {
	g, err := matrix.Multiply(e, output.Clone().Apply(logisticDerivative))
	if err != nil {
		return gradientStep{}, fmt.Errorf("dense gradient: %w", err)
	}
	dw, err := matrix.MatMul(g, input.Transposed())
	if err != nil {
		return gradientStep{}, fmt.Errorf("dense weight delta: %w", err)
	}
	step := gradientStep{
		weights: tensor.FromMatrix(dw.Scale(lr)),
		biases:  []float64{lr * g.Total()},
	}
	if propagate {
		prev, err := matrix.MatMul(w.Transposed(), g)
		if err != nil {
			return gradientStep{}, fmt.Errorf("dense error signal: %w", err)
		}
		step.err = tensor.FromMatrix(prev)
	}
	return step, nil
}

// filterGradient is the rule for a layer feeding a Filter. With merged set
// every kernel sees the sum of all input channels; otherwise kernel z sees
// input channel z/(kernels/channels). When propagate is set the returned
// error is the kernel-weighted gradient scattered back over the input,
// each cell divided by the number of windows that covered it.
func filterGradient(input, kernels, output, e *tensor.Tensor, lr float64, merged, propagate bool) (gradientStep, error) {
	if e.Shape() != output.Shape() {
		return gradientStep{}, fmt.Errorf("filter gradient: %w: error %v, output %v", ErrShape, e.Shape(), output.Shape())
	}
	if output.D() != kernels.D() {
		return gradientStep{}, fmt.Errorf("filter gradient: %w: %d kernels, %d output channels", ErrShape, kernels.D(), output.D())
	}

	group := kernels.D() / input.D()
	var summed *matrix.Matrix
	if merged {
		summed = input.Channel(0).Clone()
		for c := 1; c < input.D(); c++ {
			if err := summed.Add(input.Channel(c)); err != nil {
				return gradientStep{}, err
			}
		}
	}

	kn, km := kernels.N(), kernels.M()
	plane := float64(output.N() * output.M())
	step := gradientStep{
		weights: tensor.Zeros(kernels.Shape()),
		biases:  make([]float64, kernels.D()),
	}
	var counts *tensor.Tensor
	if propagate {
		step.err = tensor.Zeros(input.Shape())
		counts = tensor.Zeros(input.Shape())
	}

	for z := 0; z < kernels.D(); z++ {
		src := summed
		if !merged {
			src = input.Channel(z / group)
		}
		k := kernels.Channel(z)
		dk := step.weights.Channel(z)
		var total float64
		for y := 0; y < output.M(); y++ {
			for x := 0; x < output.N(); x++ {
				g := e.At(x, y, z) * logisticDerivative(output.At(x, y, z))
				s := lr * g
				for j := 0; j < km; j++ {
					for i := 0; i < kn; i++ {
						d := s * src.At(x+i, y+j)
						dk.Set(i, j, dk.At(i, j)+d)
						total += d
						if propagate {
							c := z / group
							step.err.Set(x+i, y+j, c, step.err.At(x+i, y+j, c)+k.At(i, j)*g)
							counts.Set(x+i, y+j, c, counts.At(x+i, y+j, c)+1)
						}
					}
				}
			}
		}
		step.biases[z] = total / plane
	}

	if propagate {
		for c := 0; c < input.D(); c++ {
			for y := 0; y < input.M(); y++ {
				for x := 0; x < input.N(); x++ {
					if n := counts.At(x, y, c); n > 0 {
						step.err.Set(x, y, c, step.err.At(x, y, c)/n)
					}
				}
			}
		}
	}
	return step, nil
}

// backward runs l's rule against the error e at next's data, applies the
// resulting deltas and returns the error at l's own data (nil for the first
// layer).
func (l *Layer) backward(next *Layer, e *tensor.Tensor, lr float64) (*tensor.Tensor, error) {
	var (
		step gradientStep
		err  error
	)
	switch l.link.kind {
	case pairInputDense, pairDenseDense:
		step, err = denseGradient(l.weights.Channel(0), l.data.FlattenToColumn(), next.data.Matrix(), e.Matrix(), lr, l.kind != KindInput)
	case pairInputFilter:
		step, err = filterGradient(l.data, l.weights, next.data, e, lr, true, false)
	case pairPoolingFilter:
		step, err = filterGradient(l.data, l.weights, next.data, e, lr, false, true)
	case pairFilterPooling:
		step.err = e.Upsample(l.link.div, l.link.div)
	case pairPoolingDense:
		step.err, err = e.Reshape(l.shape)
	default:
		return nil, fmt.Errorf("%s: no successor to learn from", l.kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s -> %s: %w", l.kind, next.kind, err)
	}
	if err := l.apply(step); err != nil {
		return nil, err
	}
	if step.err != nil && step.err.Shape() != l.shape {
		return nil, fmt.Errorf("%s: %w: error signal %v, data %v", l.kind, ErrShape, step.err.Shape(), l.shape)
	}
	return step.err, nil
}

// apply adds the deltas of step to l's parameters.
func (l *Layer) apply(step gradientStep) error {
	if step.weights != nil {
		if err := l.weights.Add(step.weights); err != nil {
			return fmt.Errorf("%s: apply weights: %w", l.kind, err)
		}
	}
	for i, d := range step.biases {
		l.biases[i] += d
	}
	return nil
}
