package nn

import (
	"fmt"

	"github.com/born-ml/convnet/internal/tensor"
)

// pairKind names a supported (current, next) layer combination.
type pairKind int

const (
	pairTerminal pairKind = iota
	pairInputDense
	pairInputFilter
	pairFilterPooling
	pairPoolingFilter
	pairPoolingDense
	pairDenseDense
)

// pairing is the weight descriptor a layer gets from its successor.
type pairing struct {
	kind    pairKind
	weights tensor.Shape // zero when the pairing has no weights
	biases  int
	fanOut  int
	div     int // pooling divisor for Filter -> Pooling
}

func (p pairing) hasWeights() bool {
	return p.weights.NumElements() > 0
}

func isDense(k Kind) bool {
	return k == KindNeurons || k == KindOutput
}

// pair decides whether cur may feed next and sizes cur's weights for it.
// next is nil for the last layer.
func pair(cur, next *Layer) (pairing, error) {
	if next == nil {
		if cur.kind != KindOutput {
			return pairing{}, fmt.Errorf("%s layer cannot end the chain", cur.kind)
		}
		return pairing{kind: pairTerminal}, nil
	}

	c, n := cur.shape, next.shape
	switch {
	case cur.kind == KindInput && next.kind == KindNeurons:
		return pairing{
			kind:    pairInputDense,
			weights: tensor.Shape{N: c.NumElements(), M: next.Units(), D: 1},
			biases:  1,
			fanOut:  next.Units(),
		}, nil

	case (cur.kind == KindInput || cur.kind == KindPooling) && next.kind == KindFilter:
		kx, ky := c.N-n.N+1, c.M-n.M+1
		if kx < 1 || ky < 1 {
			return pairing{}, fmt.Errorf("filter output %dx%d is larger than its input %dx%d", n.N, n.M, c.N, c.M)
		}
		if cur.kind == KindPooling && n.D%c.D != 0 {
			return pairing{}, fmt.Errorf("filter depth %d is not a multiple of pooling depth %d", n.D, c.D)
		}
		kind := pairInputFilter
		if cur.kind == KindPooling {
			kind = pairPoolingFilter
		}
		return pairing{
			kind:    kind,
			weights: tensor.Shape{N: kx, M: ky, D: n.D},
			biases:  n.D,
			fanOut:  n.D,
		}, nil

	case cur.kind == KindFilter && next.kind == KindPooling:
		if c.N%n.N != 0 || c.M%n.M != 0 {
			return pairing{}, fmt.Errorf("filter %dx%d is not divisible by pooling %dx%d", c.N, c.M, n.N, n.M)
		}
		if c.N/n.N != c.M/n.M {
			return pairing{}, fmt.Errorf("pooling divisors differ per axis: %d vs %d", c.N/n.N, c.M/n.M)
		}
		if c.D != n.D {
			return pairing{}, fmt.Errorf("pooling depth %d differs from filter depth %d", n.D, c.D)
		}
		return pairing{kind: pairFilterPooling, div: c.N / n.N}, nil

	case cur.kind == KindPooling && isDense(next.kind):
		if next.Units() != c.NumElements() {
			return pairing{}, fmt.Errorf("%d units cannot receive %v pooled values", next.Units(), c)
		}
		return pairing{kind: pairPoolingDense}, nil

	case cur.kind == KindNeurons && isDense(next.kind):
		return pairing{
			kind:    pairDenseDense,
			weights: tensor.Shape{N: cur.Units(), M: next.Units(), D: 1},
			biases:  1,
			fanOut:  next.Units(),
		}, nil
	}
	return pairing{}, fmt.Errorf("unsupported pairing")
}
