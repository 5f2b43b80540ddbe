package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/born-ml/convnet/internal/tensor"
)

// Kind identifies a layer variant.
type Kind int

const (
	KindInput Kind = iota
	KindFilter
	KindPooling
	KindNeurons
	KindOutput
)

var kindNames = [...]string{"input", "filter", "pooling", "neurons", "output"}

// String returns the lower-case variant name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a variant name to a Kind. "pulling" is accepted for pooling.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "pulling" {
		return KindPooling, nil
	}
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown layer kind %q", name)
}

// ParsePooling maps "max", "min" or "average" (also "avg") to a pooling kind.
func ParsePooling(name string) (matrix.PoolKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "max":
		return matrix.PoolMax, nil
	case "min":
		return matrix.PoolMin, nil
	case "average", "avg", "":
		return matrix.PoolAverage, nil
	}
	return 0, fmt.Errorf("unknown pooling type %q", name)
}

// Layer is one stage of a Network. Its weights and biases are sized when the
// network links it to its successor.
type Layer struct {
	kind       Kind
	shape      tensor.Shape
	data       *tensor.Tensor
	activation Activation
	pooling    matrix.PoolKind

	link    pairing
	weights *tensor.Tensor
	biases  []float64

	prev, next int // indices into the owning network, -1 when absent
}

// LayerOption configures a layer at construction.
type LayerOption func(*Layer)

// WithActivation sets the activation applied to the data the layer pushes
// into its successor.
func WithActivation(a Activation) LayerOption {
	return func(l *Layer) { l.activation = a }
}

func newLayer(kind Kind, s tensor.Shape, opts []LayerOption) *Layer {
	l := &Layer{kind: kind, shape: s, prev: -1, next: -1}
	for _, opt := range opts {
		opt(l)
	}
	if s.Validate() == nil {
		l.data = tensor.Zeros(s)
	}
	return l
}

// NewInput creates an input layer of x×y×d.
func NewInput(x, y, d int, opts ...LayerOption) *Layer {
	return newLayer(KindInput, tensor.Shape{N: x, M: y, D: d}, opts)
}

// NewFilter creates a convolutional layer whose output is x×y×d.
func NewFilter(x, y, d int, opts ...LayerOption) *Layer {
	return newLayer(KindFilter, tensor.Shape{N: x, M: y, D: d}, opts)
}

// NewPooling creates a pooling layer whose output is x×y×d.
func NewPooling(x, y, d int, kind matrix.PoolKind, opts ...LayerOption) *Layer {
	l := newLayer(KindPooling, tensor.Shape{N: x, M: y, D: d}, opts)
	l.pooling = kind
	return l
}

// NewNeurons creates a fully connected layer of units neurons, stored as a
// 1×units column.
func NewNeurons(units int, opts ...LayerOption) *Layer {
	return newLayer(KindNeurons, tensor.Shape{N: 1, M: units, D: 1}, opts)
}

// NewOutput creates the terminal layer of units neurons.
func NewOutput(units int, opts ...LayerOption) *Layer {
	return newLayer(KindOutput, tensor.Shape{N: 1, M: units, D: 1}, opts)
}

// Kind returns the layer variant.
func (l *Layer) Kind() Kind { return l.kind }

// Shape returns the shape of the layer's data.
func (l *Layer) Shape() tensor.Shape { return l.shape }

// SizeX returns the data width.
func (l *Layer) SizeX() int { return l.shape.N }

// SizeY returns the data height.
func (l *Layer) SizeY() int { return l.shape.M }

// SizeD returns the data depth.
func (l *Layer) SizeD() int { return l.shape.D }

// Units returns the neuron count of a Neurons or Output layer.
func (l *Layer) Units() int { return l.shape.M }

// Activation returns the configured activation.
func (l *Layer) Activation() Activation { return l.activation }

// Pooling returns the pooling reduction of a Pooling layer.
func (l *Layer) Pooling() matrix.PoolKind { return l.pooling }

// Data returns the layer's current data. The tensor is shared.
func (l *Layer) Data() *tensor.Tensor { return l.data }

// SetData replaces the layer's data with a copy of t.
func (l *Layer) SetData(t *tensor.Tensor) error {
	if t.Shape() != l.shape {
		return fmt.Errorf("%s: %w: data %v, want %v", l.kind, ErrShape, t.Shape(), l.shape)
	}
	l.data = t.Clone()
	return nil
}

// Weights returns the layer's weights, or nil when its pairing has none.
func (l *Layer) Weights() *tensor.Tensor { return l.weights }

// SetWeights replaces the weights with a copy of w.
func (l *Layer) SetWeights(w *tensor.Tensor) error {
	if l.weights == nil {
		return fmt.Errorf("%s: %w: layer has no weights", l.kind, ErrShape)
	}
	if w.Shape() != l.weights.Shape() {
		return fmt.Errorf("%s: %w: weights %v, want %v", l.kind, ErrShape, w.Shape(), l.weights.Shape())
	}
	l.weights = w.Clone()
	return nil
}

// Biases returns a copy of the biases.
func (l *Layer) Biases() []float64 {
	return append([]float64(nil), l.biases...)
}

// SetBiases replaces the biases.
func (l *Layer) SetBiases(b []float64) error {
	if len(b) != len(l.biases) {
		return fmt.Errorf("%s: %w: %d biases, want %d", l.kind, ErrShape, len(b), len(l.biases))
	}
	copy(l.biases, b)
	return nil
}

// String describes the layer, e.g. "FILTER: 24x24x8".
func (l *Layer) String() string {
	s := fmt.Sprintf("%s: %v", strings.ToUpper(l.kind.String()), l.shape)
	if l.kind == KindPooling {
		s += " " + l.pooling.String()
	}
	if l.activation != Identity {
		s += " " + l.activation.String()
	}
	return s
}
