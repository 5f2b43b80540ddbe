package nn

import (
	"fmt"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/born-ml/convnet/internal/tensor"
)

// valid is the convolution used between layers: no padding, stride 1.
var valid = matrix.ConvOptions{}

// forward computes the data l pushes into next and stores it there.
func (l *Layer) forward(next *Layer) error {
	out, err := l.push(next)
	if err != nil {
		return fmt.Errorf("%s -> %s: %w", l.kind, next.kind, err)
	}
	return next.SetData(out)
}

func (l *Layer) push(next *Layer) (*tensor.Tensor, error) {
	var (
		z   *tensor.Tensor
		err error
	)
	switch l.link.kind {
	case pairInputDense, pairDenseDense:
		var m *matrix.Matrix
		m, err = matrix.MatMul(l.weights.Channel(0), l.data.FlattenToColumn())
		if err != nil {
			return nil, err
		}
		z = tensor.FromMatrix(m.AddScalar(l.biases[0]))

	case pairInputFilter, pairPoolingFilter:
		if l.link.kind == pairInputFilter {
			z, err = l.data.ConvolveMerged(l.weights, valid)
		} else {
			z, err = l.data.Convolve(l.weights, valid)
		}
		if err != nil {
			return nil, err
		}
		if err := z.AddPerChannel(l.biases); err != nil {
			return nil, err
		}

	case pairFilterPooling:
		z, err = l.data.Pool(next.pooling, l.link.div)
		if err != nil {
			return nil, err
		}

	case pairPoolingDense:
		return tensor.FromMatrix(l.data.FlattenToColumn()), nil

	default:
		return nil, fmt.Errorf("no successor to step into")
	}
	return l.activation.ApplyTensor(z)
}
