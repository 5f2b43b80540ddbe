package nn

import (
	"math"
	"testing"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivationApply(t *testing.T) {
	tests := []struct {
		act  Activation
		x    float64
		want float64
	}{
		{Identity, -3, -3},
		{Sigmoid, 0, 0.5},
		{Sigmoid, 2, 1 / (1 + math.Exp(-2))},
		{Tanh, 1, math.Tanh(1)},
		{ReLU, -2, 0},
		{ReLU, 2, 2},
		{LeakyReLU, -2, -0.002},
		{LeakyReLU, 3, 3},
		{SoftPlus, 0, math.Ln2},
		{Softmax, 1, math.E},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.act.Apply(tt.x), 1e-12, "%v(%v)", tt.act, tt.x)
	}
}

func TestSoftmaxMatrix(t *testing.T) {
	out, err := Softmax.ApplyMatrix(matrix.FromColumn([]float64{0, 0, math.Log(2)}))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, out.At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, out.At(0, 1), 1e-12)
	assert.InDelta(t, 0.5, out.At(0, 2), 1e-12)
	assert.InDelta(t, 1.0, out.Total(), 1e-12)

	_, err = Softmax.ApplyMatrix(matrix.FromColumn([]float64{-1000, -2000}))
	assert.ErrorIs(t, err, ErrSoftmaxZeroSum)
}

func TestApplyMatrixLeavesInput(t *testing.T) {
	in := matrix.FromColumn([]float64{-1, 1})
	out, err := ReLU.ApplyMatrix(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, out.Values())
	assert.Equal(t, []float64{-1, 1}, in.Values())
}

func TestParseActivation(t *testing.T) {
	for name, want := range map[string]Activation{
		"":          Identity,
		"none":      Identity,
		"Sigmoid":   Sigmoid,
		"tanh":      Tanh,
		"relu":      ReLU,
		"l_relu":    LeakyReLU,
		"softplus":  SoftPlus,
		"soft_max":  Softmax,
		" softmax ": Softmax,
	} {
		got, err := ParseActivation(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for a := range activationNames {
		got, err := ParseActivation(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseActivation("swish")
	assert.Error(t, err)
}
