package nn

import (
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/born-ml/convnet/internal/tensor"
)

// Activation is the scalar function a layer applies to the data it pushes
// into its successor.
type Activation int

const (
	// Identity leaves values unchanged. It is the default.
	Identity Activation = iota
	// Sigmoid applies 1 / (1 + exp(-x)).
	Sigmoid
	// Tanh applies the hyperbolic tangent.
	Tanh
	// ReLU applies max(0, x).
	ReLU
	// LeakyReLU applies max(0.001x, x).
	LeakyReLU
	// SoftPlus applies ln(1 + exp(x)).
	SoftPlus
	// Softmax normalizes a whole channel: exp(x) / Σ exp.
	Softmax
)

const leakySlope = 0.001

var activationNames = map[Activation]string{
	Identity:  "none",
	Sigmoid:   "sigmoid",
	Tanh:      "tanh",
	ReLU:      "relu",
	LeakyReLU: "leaky_relu",
	SoftPlus:  "soft_plus",
	Softmax:   "softmax",
}

// String returns the configuration name of a.
func (a Activation) String() string {
	if s, ok := activationNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

// ParseActivation maps a configuration name to an Activation. Matching is
// case-insensitive; "" and "identity" mean Identity, "l_relu" and "soft_max"
// are accepted aliases.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "identity":
		return Identity, nil
	case "sigmoid":
		return Sigmoid, nil
	case "tanh":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	case "leaky_relu", "l_relu":
		return LeakyReLU, nil
	case "soft_plus", "softplus":
		return SoftPlus, nil
	case "softmax", "soft_max":
		return Softmax, nil
	}
	return Identity, fmt.Errorf("unknown activation %q", name)
}

// Apply evaluates a at x. For Softmax it returns the unnormalized exp(x).
func (a Activation) Apply(x float64) float64 {
	switch a {
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	case ReLU:
		return math.Max(0, x)
	case LeakyReLU:
		return math.Max(leakySlope*x, x)
	case SoftPlus:
		return math.Log1p(math.Exp(x))
	case Softmax:
		return math.Exp(x)
	default:
		return x
	}
}

// ApplyMatrix returns a new matrix with a applied to every cell.
func (a Activation) ApplyMatrix(m *matrix.Matrix) (*matrix.Matrix, error) {
	out := m.Clone().Apply(a.Apply)
	if a != Softmax {
		return out, nil
	}
	sum := out.Total()
	if sum == 0 {
		return nil, ErrSoftmaxZeroSum
	}
	return out.Scale(1 / sum), nil
}

// ApplyTensor returns a new tensor with a applied to every channel.
func (a Activation) ApplyTensor(t *tensor.Tensor) (*tensor.Tensor, error) {
	if a == Identity {
		return t.Clone(), nil
	}
	out := t.Clone()
	for i := 0; i < out.D(); i++ {
		c, err := a.ApplyMatrix(out.Channel(i))
		if err != nil {
			return nil, err
		}
		if err := out.SetChannel(i, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}
