package tensor

import (
	"math/rand"
	"testing"

	"github.com/born-ml/convnet/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenAndExpand(t *testing.T) {
	x, err := FromValues(2, 2, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)

	col := x.FlattenToColumn()
	assert.Equal(t, 1, col.N())
	assert.Equal(t, 8, col.M())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, col.Column(0))

	row := x.FlattenToRow()
	assert.Equal(t, 8, row.N())
	assert.Equal(t, 1, row.M())

	assert.Equal(t, Shape{N: 1, M: 1, D: 8}, x.FlattenToDepth().Shape())

	back, err := ExpandFromLine(FromMatrix(col), 2, 2, 2)
	require.NoError(t, err)
	assert.True(t, Equal(x, back))

	back, err = ExpandFromLine(FromMatrix(row), 2, 2, 2)
	require.NoError(t, err)
	assert.True(t, Equal(x, back))

	_, err = ExpandFromLine(FromMatrix(col), 3, 3, 1)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = ExpandFromLine(x, 2, 2, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestUpsample(t *testing.T) {
	x, err := FromMatrices(matrix.MustParse("1,2|3,4"), matrix.MustParse("5|6"))
	assert.Error(t, err)
	assert.Nil(t, x)

	x, err = FromMatrices(matrix.MustParse("1,2|3,4"), matrix.MustParse("0,0|0,1"))
	require.NoError(t, err)
	up := x.Upsample(2, 2)
	assert.Equal(t, Shape{N: 4, M: 4, D: 2}, up.Shape())
	assert.True(t, matrix.Equal(matrix.MustParse("1,1,2,2|1,1,2,2|3,3,4,4|3,3,4,4"), up.Channel(0)))
	assert.True(t, matrix.Equal(matrix.MustParse("0,0,0,0|0,0,0,0|0,0,1,1|0,0,1,1"), up.Channel(1)))
}

func TestReplaceAndAppend(t *testing.T) {
	x := New(3, 3, 1)
	require.NoError(t, x.Replace(1, 1, FromMatrix(matrix.MustParse("1,2|3,4"))))
	assert.True(t, matrix.Equal(matrix.MustParse("0,0,0|0,1,2|0,3,4"), x.Channel(0)))

	require.NoError(t, x.Append(matrix.Filled(3, 3, 1)))
	assert.Equal(t, 2, x.D())
	assert.ErrorIs(t, x.Append(matrix.New(2, 2)), ErrShapeMismatch)
	assert.ErrorIs(t, x.Replace(0, 0, New(1, 1, 1)), ErrShapeMismatch)
}

func TestReshape(t *testing.T) {
	x, err := FromVector([]float64{1, 2, 3, 4, 5, 6, 7, 8}, AxisY)
	require.NoError(t, err)
	r, err := x.Reshape(Shape{N: 2, M: 2, D: 2})
	require.NoError(t, err)
	assert.Equal(t, 7.0, r.At(0, 1, 1))

	_, err = x.Reshape(Shape{N: 3, M: 3, D: 1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestExpandInvertsFlatten(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 40; i++ {
		s := Shape{N: 1 + rng.Intn(5), M: 1 + rng.Intn(5), D: 1 + rng.Intn(4)}
		x := Random(s, -5, 5, rng)

		back, err := ExpandFromLine(FromMatrix(x.FlattenToRow()), s.N, s.M, s.D)
		require.NoError(t, err)
		require.Truef(t, Equal(x, back), "iteration %d shape %v", i, s)

		back, err = ExpandFromLine(FromMatrix(x.FlattenToColumn()), s.N, s.M, s.D)
		require.NoError(t, err)
		require.Truef(t, Equal(x, back), "iteration %d shape %v", i, s)
	}
}
