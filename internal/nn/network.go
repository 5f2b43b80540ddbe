package nn

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/born-ml/convnet/internal/tensor"
)

// Dataset is an ordered source of labeled samples. Targets are columns with
// one row per output unit.
type Dataset interface {
	Len() int
	Sample(i int) (input *tensor.Tensor, target *matrix.Matrix)
}

// Progress is called after every trained sample with the number of samples
// done and the total for the run.
type Progress func(done, total int)

// Report is called by Test for every sample with the expected and predicted
// class.
type Report func(expected, predicted int)

// Network is an ordered chain of layers trained by online gradient descent.
// It owns its layers. Train, Query and Save are serialized by an internal
// mutex.
type Network struct {
	mu           sync.Mutex
	id           string
	learningRate float64
	layers       []*Layer
	rng          *rand.Rand
}

// Option configures a Network at construction.
type Option func(*Network)

// WithRand sets the source used for weight initialization.
func WithRand(rng *rand.Rand) Option {
	return func(n *Network) { n.rng = rng }
}

// WithSeed initializes weights from a deterministic source.
func WithSeed(seed int64) Option {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return WithRand(rand.New(rand.NewSource(seed)))
}

// New links layers into a network. It sets neighbour indices, sizes every
// layer's weights against its successor and checks that the chain starts
// with an Input layer and ends with an Output layer. Any violation is a
// *ConfigError.
//
// Example:
//
//	net, err := nn.New("mnist", []*nn.Layer{
//	    nn.NewInput(28, 28, 1, nn.WithActivation(nn.Sigmoid)),
//	    nn.NewNeurons(512, nn.WithActivation(nn.Sigmoid)),
//	    nn.NewOutput(10),
//	}, 0.01)
func New(id string, layers []*Layer, learningRate float64, opts ...Option) (*Network, error) {
	n := &Network{id: id, learningRate: learningRate, layers: layers}
	for _, opt := range opts {
		opt(n)
	}
	if n.rng == nil {
		n.rng = newRand()
	}
	if err := n.link(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Network) link() error {
	if n.learningRate <= 0 || math.IsNaN(n.learningRate) || math.IsInf(n.learningRate, 0) {
		return &ConfigError{Index: -1, Reason: fmt.Sprintf("learning rate %v must be positive and finite", n.learningRate)}
	}
	if len(n.layers) < 2 {
		return &ConfigError{Index: -1, Reason: fmt.Sprintf("need at least 2 layers, got %d", len(n.layers))}
	}
	for i, l := range n.layers {
		if err := l.shape.Validate(); err != nil {
			return &ConfigError{Index: i, Layer: l.String(), Reason: err.Error()}
		}
		l.prev, l.next = i-1, i+1
		if i == len(n.layers)-1 {
			l.next = -1
		}
	}

	for i, l := range n.layers {
		var next *Layer
		if l.next >= 0 {
			next = n.layers[l.next]
		}
		p, err := pair(l, next)
		if err != nil {
			ce := &ConfigError{Index: i, Layer: l.String(), Reason: err.Error()}
			if next != nil {
				ce.Next = next.String()
			}
			return ce
		}
		l.link = p
		l.weights, l.biases = nil, nil
		if p.hasWeights() {
			l.weights = uniformInit(p.weights, p.fanOut, n.rng)
			l.biases = make([]float64, p.biases)
		}
	}

	if n.layers[0].kind != KindInput {
		return &ConfigError{Index: 0, Layer: n.layers[0].String(), Reason: "chain must start with an input layer"}
	}
	if last := len(n.layers) - 1; n.layers[last].kind != KindOutput {
		return &ConfigError{Index: last, Layer: n.layers[last].String(), Reason: "chain must end with an output layer"}
	}
	return nil
}

// ID returns the network identifier.
func (n *Network) ID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.id
}

// LearningRate returns the gradient step size.
func (n *Network) LearningRate() float64 { return n.learningRate }

// Len returns the number of layers.
func (n *Network) Len() int { return len(n.layers) }

// Layer returns layer i.
func (n *Network) Layer(i int) *Layer { return n.layers[i] }

// Layers returns the layers in order.
func (n *Network) Layers() []*Layer {
	return append([]*Layer(nil), n.layers...)
}

// InputLayer returns the first layer.
func (n *Network) InputLayer() *Layer { return n.layers[0] }

// OutputLayer returns the last layer.
func (n *Network) OutputLayer() *Layer { return n.layers[len(n.layers)-1] }

// InputShape returns the shape samples must have.
func (n *Network) InputShape() tensor.Shape { return n.InputLayer().shape }

// SetInput copies t into the input layer.
func (n *Network) SetInput(t *tensor.Tensor) error {
	return n.InputLayer().SetData(t)
}

// Evaluate runs every forward step from the input layer to the output layer.
func (n *Network) Evaluate() error {
	for i := 0; i < len(n.layers)-1; i++ {
		if err := n.layers[i].forward(n.layers[i+1]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// Output returns a copy of the output layer's data as a column.
func (n *Network) Output() *matrix.Matrix {
	return n.OutputLayer().data.Matrix().Clone()
}

// Query evaluates input and returns the output column.
func (n *Network) Query(input *tensor.Tensor) (*matrix.Matrix, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.query(input)
}

func (n *Network) query(input *tensor.Tensor) (*matrix.Matrix, error) {
	if err := n.SetInput(input); err != nil {
		return nil, err
	}
	if err := n.Evaluate(); err != nil {
		return nil, err
	}
	return n.Output(), nil
}

// QueryValues evaluates a flat input laid out channel by channel, row by row.
func (n *Network) QueryValues(values []float64) (*matrix.Matrix, error) {
	s := n.InputShape()
	input, err := tensor.FromValues(s.N, s.M, s.D, values)
	if err != nil {
		return nil, fmt.Errorf("query: %w: %v", ErrShape, err)
	}
	return n.Query(input)
}

// QueryMax evaluates input and returns the index of the largest output.
func (n *Network) QueryMax(input *tensor.Tensor) (int, error) {
	out, err := n.Query(input)
	if err != nil {
		return 0, err
	}
	return out.ArgMax(), nil
}

// Train performs one online gradient step on a single sample.
func (n *Network) Train(input *tensor.Tensor, target *matrix.Matrix) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.train(input, target)
}

func (n *Network) train(input *tensor.Tensor, target *matrix.Matrix) error {
	out, err := n.query(input)
	if err != nil {
		return err
	}
	diff, err := matrix.Diff(target, out)
	if err != nil {
		return fmt.Errorf("train: target: %w", err)
	}

	e := tensor.FromMatrix(diff)
	for i := len(n.layers) - 2; i >= 0; i-- {
		e, err = n.layers[i].backward(n.layers[i+1], e, n.learningRate)
		if err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		if e == nil && i > 0 {
			return fmt.Errorf("layer %d: no error signal for layer %d", i, i-1)
		}
	}
	return nil
}

// TrainEpochs trains on every sample of ds, in order, epochs times.
// progress may be nil.
func (n *Network) TrainEpochs(ds Dataset, epochs int, progress Progress) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	total := ds.Len() * epochs
	done := 0
	for epoch := 0; epoch < epochs; epoch++ {
		for i := 0; i < ds.Len(); i++ {
			input, target := ds.Sample(i)
			if err := n.train(input, target); err != nil {
				return fmt.Errorf("epoch %d sample %d: %w", epoch, i, err)
			}
			done++
			if progress != nil {
				progress(done, total)
			}
		}
	}
	return nil
}

// Test returns the percentage of samples in ds whose predicted class matches
// the position of the largest target value. report may be nil.
func (n *Network) Test(ds Dataset, report Report) (float64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ds.Len() == 0 {
		return 0, nil
	}
	correct := 0
	for i := 0; i < ds.Len(); i++ {
		input, target := ds.Sample(i)
		out, err := n.query(input)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		expected, predicted := target.ArgMax(), out.ArgMax()
		if expected == predicted {
			correct++
		}
		if report != nil {
			report(expected, predicted)
		}
	}
	return 100 * float64(correct) / float64(ds.Len()), nil
}

// Configuration describes every layer, one per line.
func (n *Network) Configuration() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "network %q, learning rate %g\n", n.id, n.learningRate)
	for i, l := range n.layers {
		fmt.Fprintf(&sb, "%d. %v\n", i, l)
	}
	return sb.String()
}

// Shapes describes the data and weight shapes of every layer, one per line.
func (n *Network) Shapes() string {
	var sb strings.Builder
	for i, l := range n.layers {
		fmt.Fprintf(&sb, "%d. %s data %v", i, l.kind, l.shape)
		if l.weights != nil {
			fmt.Fprintf(&sb, " weights %v biases %d", l.weights.Shape(), len(l.biases))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
