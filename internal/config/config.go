// Package config reads run configuration from YAML.
//
// Example:
//
//	id: mnist
//	learning_rate: 0.05
//	layers:
//	  - {kind: input, size: [28, 28, 1], activation: sigmoid}
//	  - {kind: filter, size: [24, 24, 8]}
//	  - {kind: pooling, size: [12, 12, 8], pooling: average}
//	  - {kind: neurons, units: 1152, activation: sigmoid}
//	  - {kind: output, units: 10}
//	data:
//	  train: data/mnist_train.csv
//	  test: data/mnist_test.csv
//	training:
//	  epochs: 1
//	store:
//	  dir: weights
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/convnet/internal/dataset"
	"github.com/born-ml/convnet/internal/nn"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is a complete run configuration.
type Config struct {
	ID           string        `yaml:"id"`
	LearningRate float64       `yaml:"learning_rate"`
	Seed         int64         `yaml:"seed,omitempty"`
	Layers       []LayerConfig `yaml:"layers"`
	Data         DataConfig    `yaml:"data"`
	Training     TrainConfig   `yaml:"training"`
	Store        StoreConfig   `yaml:"store"`
	Search       SearchConfig  `yaml:"search"`
}

// LayerConfig describes one layer. Input, Filter and Pooling use Size
// ([x, y, d]); Neurons and Output use Units.
type LayerConfig struct {
	Kind       string `yaml:"kind"`
	Size       []int  `yaml:"size,omitempty,flow"`
	Units      int    `yaml:"units,omitempty"`
	Activation string `yaml:"activation,omitempty"`
	Pooling    string `yaml:"pooling,omitempty"`
}

// DataConfig locates sample files.
type DataConfig struct {
	Train      string `yaml:"train"`
	Test       string `yaml:"test"`
	MaxSamples int    `yaml:"max_samples,omitempty"`
}

// TrainConfig controls a training run.
type TrainConfig struct {
	Epochs int `yaml:"epochs"`
}

// StoreConfig locates saved networks.
type StoreConfig struct {
	Dir string `yaml:"dir"`
}

// SearchConfig controls a hyper-parameter search. An empty Architectures
// list searches the top-level layers only.
type SearchConfig struct {
	Architectures [][]LayerConfig `yaml:"architectures,omitempty"`
	LRFrom        float64         `yaml:"lr_from"`
	LRTo          float64         `yaml:"lr_to"`
	LRCount       int             `yaml:"lr_count"`
	EpochsFrom    int             `yaml:"epochs_from"`
	EpochsTo      int             `yaml:"epochs_to"`
	Log           string          `yaml:"log,omitempty"`
}

// Default returns the configuration of the built-in architecture.
func Default() Config {
	return Config{
		ID:           nn.DefaultID,
		LearningRate: nn.DefaultLearningRate,
		Layers:       FromLayers(nn.DefaultLayers()),
		Data: DataConfig{
			Train: "data/mnist_train.csv",
			Test:  "data/mnist_test.csv",
		},
		Training: TrainConfig{Epochs: 1},
		Store:    StoreConfig{Dir: "weights"},
		Search: SearchConfig{
			LRFrom:     0.01,
			LRTo:       0.1,
			LRCount:    3,
			EpochsFrom: 1,
			EpochsTo:   1,
			Log:        "log.txt",
		},
	}
}

// Load reads a YAML file. Fields absent from the file keep their Default
// values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown fields
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the fields Build and the CLI depend on. Layer chains are
// checked by Build.
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("%w: learning_rate %v must be positive", ErrInvalid, c.LearningRate)
	}
	if len(c.Layers) < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalid, len(c.Layers))
	}
	if c.Training.Epochs < 0 {
		return fmt.Errorf("%w: training.epochs %d is negative", ErrInvalid, c.Training.Epochs)
	}
	if c.Data.MaxSamples < 0 {
		return fmt.Errorf("%w: data.max_samples %d is negative", ErrInvalid, c.Data.MaxSamples)
	}
	s := c.Search
	if s.LRFrom < 0 || s.LRTo < s.LRFrom || s.LRCount < 0 {
		return fmt.Errorf("%w: search learning rates [%v, %v] x %d", ErrInvalid, s.LRFrom, s.LRTo, s.LRCount)
	}
	if s.EpochsFrom < 0 || s.EpochsTo < s.EpochsFrom {
		return fmt.Errorf("%w: search epochs [%d, %d]", ErrInvalid, s.EpochsFrom, s.EpochsTo)
	}
	return nil
}

// Build creates a freshly initialized network from the configuration.
func (c Config) Build(opts ...nn.Option) (*nn.Network, error) {
	layers, err := BuildLayers(c.Layers)
	if err != nil {
		return nil, err
	}
	if c.Seed != 0 {
		opts = append([]nn.Option{nn.WithSeed(c.Seed)}, opts...)
	}
	return nn.New(c.ID, layers, c.LearningRate, opts...)
}

// DatasetSpec returns the sample shape the configured network consumes.
func (c Config) DatasetSpec() (dataset.Spec, error) {
	if len(c.Layers) < 2 {
		return dataset.Spec{}, fmt.Errorf("%w: no layers", ErrInvalid)
	}
	in, err := BuildLayer(c.Layers[0])
	if err != nil {
		return dataset.Spec{}, err
	}
	out, err := BuildLayer(c.Layers[len(c.Layers)-1])
	if err != nil {
		return dataset.Spec{}, err
	}
	return dataset.Spec{X: in.SizeX(), Y: in.SizeY(), D: in.SizeD(), Classes: out.Units()}, nil
}
