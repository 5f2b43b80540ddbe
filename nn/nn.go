// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/convnet/internal/matrix"
	"github.com/born-ml/convnet/internal/nn"
	"github.com/born-ml/convnet/internal/store"
	"github.com/born-ml/convnet/internal/tensor"
)

// Network is an ordered chain of layers trained by online gradient descent.
type Network = nn.Network

// Layer is one stage of a Network.
type Layer = nn.Layer

// Option configures a Network at construction.
type Option = nn.Option

// LayerOption configures a Layer at construction.
type LayerOption = nn.LayerOption

// Dataset is an ordered source of labeled samples.
type Dataset = nn.Dataset

// ConfigError describes a rejected layer chain.
type ConfigError = nn.ConfigError

// Tensor is a stack of equally sized matrix channels.
type Tensor = tensor.Tensor

// Matrix is a dense row-major matrix of float64.
type Matrix = matrix.Matrix

// Store persists network snapshots by id.
type Store = store.Store

// StoreWriter receives one snapshot from Save. Close commits, Abort discards.
type StoreWriter = store.Writer

// Errors
var (
	ErrConfiguration  = nn.ErrConfiguration
	ErrShape          = nn.ErrShape
	ErrSoftmaxZeroSum = nn.ErrSoftmaxZeroSum
	ErrNotFound       = store.ErrNotFound
)

// New links layers into a network.
func New(id string, layers []*Layer, learningRate float64, opts ...Option) (*Network, error) {
	return nn.New(id, layers, learningRate, opts...)
}

// Default returns a freshly initialized network with the built-in
// architecture for 28×28 grayscale digits.
func Default(opts ...Option) *Network {
	return nn.Default(opts...)
}

// WithSeed initializes weights from a deterministic source.
func WithSeed(seed int64) Option {
	return nn.WithSeed(seed)
}

// Layers

// NewInput creates an input layer of x×y×d.
func NewInput(x, y, d int, opts ...LayerOption) *Layer {
	return nn.NewInput(x, y, d, opts...)
}

// NewFilter creates a convolutional layer whose output is x×y×d.
func NewFilter(x, y, d int, opts ...LayerOption) *Layer {
	return nn.NewFilter(x, y, d, opts...)
}

// PoolKind selects the reduction of a Pooling layer.
type PoolKind = matrix.PoolKind

// Pooling reductions.
const (
	PoolMax     = matrix.PoolMax
	PoolMin     = matrix.PoolMin
	PoolAverage = matrix.PoolAverage
)

// NewPooling creates a pooling layer whose output is x×y×d.
func NewPooling(x, y, d int, kind PoolKind, opts ...LayerOption) *Layer {
	return nn.NewPooling(x, y, d, kind, opts...)
}

// NewNeurons creates a fully connected layer.
func NewNeurons(units int, opts ...LayerOption) *Layer {
	return nn.NewNeurons(units, opts...)
}

// NewOutput creates the terminal layer.
func NewOutput(units int, opts ...LayerOption) *Layer {
	return nn.NewOutput(units, opts...)
}

// Activations

// Activation is the scalar function a layer applies to the data it pushes
// into its successor.
type Activation = nn.Activation

// Supported activations.
const (
	Identity  = nn.Identity
	Sigmoid   = nn.Sigmoid
	Tanh      = nn.Tanh
	ReLU      = nn.ReLU
	LeakyReLU = nn.LeakyReLU
	SoftPlus  = nn.SoftPlus
	Softmax   = nn.Softmax
)

// WithActivation sets a layer's activation.
func WithActivation(a Activation) LayerOption {
	return nn.WithActivation(a)
}

// Persistence

// NewDirStore stores snapshots as <root>/<id>.born files.
func NewDirStore(root string) Store {
	return store.NewDir(root)
}

// NewMemoryStore keeps snapshots in memory.
func NewMemoryStore() Store {
	return store.NewMemory()
}

// Load rebuilds a network from the snapshot stored under id.
func Load(s Store, id string, opts ...Option) (*Network, error) {
	return nn.Load(s, id, opts...)
}

// LoadOrDefault loads the snapshot stored under id, falling back to Default
// together with the error that caused the fallback.
func LoadOrDefault(s Store, id string, opts ...Option) (*Network, error) {
	return nn.LoadOrDefault(s, id, opts...)
}

// Data

// FromValues builds an n×m×d tensor from values laid out channel by channel,
// row by row.
func FromValues(n, m, d int, values []float64) (*Tensor, error) {
	return tensor.FromValues(n, m, d, values)
}

// Column builds a target column.
func Column(values ...float64) *Matrix {
	return matrix.FromColumn(values)
}
