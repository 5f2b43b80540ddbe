package nn

import "github.com/born-ml/convnet/internal/matrix"

// DefaultID is the identifier of the built-in architecture.
const DefaultID = "default"

// DefaultLearningRate is the learning rate of the built-in architecture.
const DefaultLearningRate = 0.05

// DefaultLayers returns the built-in convolutional chain for 28×28 grayscale
// digits.
func DefaultLayers() []*Layer {
	return []*Layer{
		NewInput(28, 28, 1, WithActivation(Sigmoid)),
		NewFilter(24, 24, 8),
		NewPooling(12, 12, 8, matrix.PoolAverage, WithActivation(Sigmoid)),
		NewFilter(8, 8, 16),
		NewPooling(4, 4, 16, matrix.PoolAverage),
		NewNeurons(256, WithActivation(Sigmoid)),
		NewOutput(10),
	}
}

// DenseLayers returns a fully connected chain for 28×28 grayscale digits.
func DenseLayers() []*Layer {
	return []*Layer{
		NewInput(28, 28, 1, WithActivation(Sigmoid)),
		NewNeurons(512, WithActivation(Sigmoid)),
		NewOutput(10),
	}
}

// Default returns a freshly initialized network with the built-in
// architecture.
func Default(opts ...Option) *Network {
	n, err := New(DefaultID, DefaultLayers(), DefaultLearningRate, opts...)
	if err != nil {
		panic("nn: built-in architecture rejected: " + err.Error())
	}
	return n
}
