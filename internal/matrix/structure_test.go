package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplace(t *testing.T) {
	a := MustParse("1,2,3|4,5,6|7,8,9")
	require.NoError(t, a.Replace(0, 0, MustParse("1,0|0,1")))
	requireMatrix(t, "1,0,3|0,1,6|7,8,9", a)

	a = MustParse("1,2,3,1|4,5,6,1|7,8,9,1|1,1,1,1")
	require.NoError(t, a.Replace(2, 2, MustParse("0,0|0,0")))
	requireMatrix(t, "1,2,3,1|4,5,6,1|7,8,0,0|1,1,0,0", a)

	assert.ErrorIs(t, a.Replace(3, 3, MustParse("0,0|0,0")), ErrShapeMismatch)
}

func TestExpandAndErase(t *testing.T) {
	a := MustParse("1,2|3,4")
	requireMatrix(t, "1,2,0|3,4,0|0,0,0", a.Expand(1, 1))
	requireMatrix(t, "1,2,0,0|3,4,0,0", a.Expand(2, 0))
	requireMatrix(t, "1|3", a.Erase(1, 0))
}

func TestUpsample(t *testing.T) {
	requireMatrix(t, "1,1,2,2|1,1,2,2|3,3,4,4|3,3,4,4", MustParse("1,2|3,4").Upsample(2, 2))
	requireMatrix(t, "1,1,1,2,2,2", MustParse("1,2").Upsample(3, 1))
}

func TestRemove(t *testing.T) {
	base := "1,2,3|4,5,6|7,8,9"
	requireMatrix(t, "1,2|4,5|7,8", MustParse(base).RemoveColumns(2, 2))
	requireMatrix(t, "4,5,6|7,8,9", MustParse(base).RemoveRows(0, 0))
	requireMatrix(t, "7,8,9", MustParse(base).RemoveRows(0, 1))
	requireMatrix(t, "1|4|7", MustParse(base).RemoveColumns(1, 2))
}

func TestSubMatrix(t *testing.T) {
	a := MustParse("1,2,3|4,5,6|7,8,9")
	requireMatrix(t, "5,6|8,9", a.SubMatrix(1, 1, 2, 2))
	requireMatrix(t, "1,2,3|4,5,6|7,8,9", a.SubMatrix(0, 0, 3, 3))
}

func TestJoin(t *testing.T) {
	a := MustParse("1,2,3|4,5,6|7,8,9")

	right, err := a.JoinRight(MustParse("1|2|3"))
	require.NoError(t, err)
	requireMatrix(t, "1,2,3,1|4,5,6,2|7,8,9,3", right)

	bottom, err := a.JoinBottom(MustParse("1,2,3"))
	require.NoError(t, err)
	requireMatrix(t, "1,2,3|4,5,6|7,8,9|1,2,3", bottom)

	_, err = a.JoinRight(MustParse("1|2"))
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = a.JoinBottom(MustParse("1,2"))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestResizeAndRescale(t *testing.T) {
	a := MustParse("1,2|3,4")

	r, err := a.Resize(4, 4)
	require.NoError(t, err)
	requireMatrix(t, "1,1,2,2|1,1,2,2|3,3,4,4|3,3,4,4", r)

	up, err := a.Rescale(2)
	require.NoError(t, err)
	requireMatrix(t, "1,1,2,2|1,1,2,2|3,3,4,4|3,3,4,4", up)

	down, err := MustParse("1,1,2,2|1,1,2,2|3,3,4,4|3,3,4,4").Rescale(0.5)
	require.NoError(t, err)
	requireMatrix(t, "1,2|3,4", down)

	_, err = a.Rescale(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
