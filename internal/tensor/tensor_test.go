package tensor

import (
	"testing"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	s := Shape{N: 4, M: 3, D: 2}
	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, 12, s.Plane())
	assert.Equal(t, "4x3x2", s.String())
	assert.NoError(t, s.Validate())
	assert.Error(t, Shape{N: 4, M: 0, D: 1}.Validate())

	back, err := ShapeFromInts(s.Ints())
	require.NoError(t, err)
	assert.True(t, s.Equal(back))

	_, err = ShapeFromInts([]int{1, 2})
	assert.Error(t, err)
}

func TestSetChannel(t *testing.T) {
	x := New(2, 2, 2)
	require.NoError(t, x.SetChannel(1, matrix.MustParse("1,2|3,4")))
	assert.Equal(t, 4.0, x.At(1, 1, 1))
	assert.Equal(t, 0.0, x.At(1, 1, 0))

	err := x.SetChannel(0, matrix.New(3, 2))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCloneIsDeep(t *testing.T) {
	x := New(2, 2, 1)
	y := x.Clone()
	y.Set(0, 0, 0, 5)
	assert.Equal(t, 0.0, x.At(0, 0, 0))
	assert.False(t, Equal(x, y))
	y.Set(0, 0, 0, 0)
	assert.True(t, Equal(x, y))
}
