// Package dataset loads labeled samples for training and testing.
//
// Pixel values are mapped from 0..255 into 0.01..1.0 and labels become
// one-hot target columns with a floor of 0.01 and a peak of 0.99, so the
// logistic output never has to reach 0 or 1.
package dataset

import (
	"errors"
	"fmt"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/born-ml/convnet/internal/tensor"
)

// Target levels of a one-hot column.
const (
	TargetOff = 0.01
	TargetOn  = 0.99
)

// ErrInvalidSample is returned for malformed input rows.
var ErrInvalidSample = errors.New("invalid sample")

// Spec describes the samples of a dataset.
type Spec struct {
	X, Y, D int // input shape
	Classes int
}

// MNIST is the shape of 28×28 grayscale digits.
var MNIST = Spec{X: 28, Y: 28, D: 1, Classes: 10}

// Shape returns the input shape.
func (s Spec) Shape() tensor.Shape {
	return tensor.Shape{N: s.X, M: s.Y, D: s.D}
}

// Validate checks that every dimension is positive.
func (s Spec) Validate() error {
	if err := s.Shape().Validate(); err != nil {
		return fmt.Errorf("dataset spec: %w", err)
	}
	if s.Classes <= 0 {
		return fmt.Errorf("dataset spec: %d classes", s.Classes)
	}
	return nil
}

// Normalize maps a raw 0..255 value into 0.01..1.0.
func Normalize(v float64) float64 {
	return v/255*0.99 + 0.01
}

// Target returns the one-hot column for label.
func Target(classes, label int) *matrix.Matrix {
	m := matrix.Filled(1, classes, TargetOff)
	m.Set(0, label, TargetOn)
	return m
}

// Sample is one labeled input.
type Sample struct {
	Input  *tensor.Tensor
	Target *matrix.Matrix
	Label  int
}

// NewSample builds a sample from raw values laid out channel by channel,
// row by row.
func NewSample(spec Spec, label int, raw []float64) (Sample, error) {
	if label < 0 || label >= spec.Classes {
		return Sample{}, fmt.Errorf("%w: label %d out of range [0, %d)", ErrInvalidSample, label, spec.Classes)
	}
	if len(raw) != spec.Shape().NumElements() {
		return Sample{}, fmt.Errorf("%w: %d values, want %d", ErrInvalidSample, len(raw), spec.Shape().NumElements())
	}
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = Normalize(v)
	}
	input, err := tensor.FromValues(spec.X, spec.Y, spec.D, values)
	if err != nil {
		return Sample{}, err
	}
	return Sample{Input: input, Target: Target(spec.Classes, label), Label: label}, nil
}

// Set is an ordered collection of samples. It satisfies nn.Dataset.
type Set struct {
	Spec    Spec
	Samples []Sample
}

// Len returns the number of samples.
func (s *Set) Len() int { return len(s.Samples) }

// Sample returns the input and target of sample i.
func (s *Set) Sample(i int) (*tensor.Tensor, *matrix.Matrix) {
	return s.Samples[i].Input, s.Samples[i].Target
}

// Head returns a set sharing the first n samples (all of them if n <= 0 or
// n exceeds the length).
func (s *Set) Head(n int) *Set {
	if n <= 0 || n > len(s.Samples) {
		n = len(s.Samples)
	}
	return &Set{Spec: s.Spec, Samples: s.Samples[:n]}
}

// Split divides the set into a leading part holding (1 - ratio) of the
// samples and a trailing part holding the rest.
func (s *Set) Split(ratio float64) (*Set, *Set) {
	at := int(float64(len(s.Samples)) * (1 - ratio))
	at = max(0, min(at, len(s.Samples)))
	return &Set{Spec: s.Spec, Samples: s.Samples[:at]},
		&Set{Spec: s.Spec, Samples: s.Samples[at:]}
}

// Labels counts the samples of every class.
func (s *Set) Labels() []int {
	counts := make([]int, s.Spec.Classes)
	for _, smp := range s.Samples {
		counts[smp.Label]++
	}
	return counts
}
