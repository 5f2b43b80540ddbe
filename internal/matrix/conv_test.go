package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvolve(t *testing.T) {
	ones := func(n int) *Matrix { return Filled(n, n, 1) }

	tests := []struct {
		name  string
		input *Matrix
		k     *Matrix
		opts  ConvOptions
		want  *Matrix
	}{
		{"3x3 ones", ones(3), ones(2), ConvOptions{}, Filled(2, 2, 4)},
		{"5x5 ones", ones(5), ones(2), ConvOptions{}, Filled(4, 4, 4)},
		{"kernel covers input", ones(7), ones(7), ConvOptions{}, Filled(1, 1, 49)},
		{"ramp", MustParse("1,2,3|1,2,3|1,2,3"), ones(2), ConvOptions{}, MustParse("6,10|6,10")},
		{
			"asymmetric kernel",
			MustParse("1,2,2,4|6,3,1,3|1,2,3,4|1,1,1,1"), MustParse("5,4|2,1"), ConvOptions{},
			MustParse("28,25,31|46,26,27|16,25,34"),
		},
		{
			"zero padding",
			ones(3), ones(2), ConvOptions{PadX: 1, PadY: 1},
			MustParse("1,2,2,1|2,4,4,2|2,4,4,2|1,2,2,1"),
		},
		{
			"mean padding",
			ones(3), ones(2), ConvOptions{PadX: 1, PadY: 1, Fill: FillMean},
			Filled(4, 4, 4),
		},
		{
			"stride",
			MustParse("1,1,1,1|2,2,2,2|3,3,3,3|4,4,4,4"), MustParse("2,2|1,1"), ConvOptions{StrideX: 2, StrideY: 2},
			MustParse("8,8|20,20"),
		},
		{
			"padding and stride",
			MustParse("1,1,1,1|2,2,2,2|3,3,3,3|4,4,4,4"), MustParse("2,2|1,1"),
			ConvOptions{PadX: 1, PadY: 1, StrideX: 3, StrideY: 3},
			MustParse("1,2|10,20"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.Convolve(tt.k, tt.opts)
			require.NoError(t, err)
			require.Truef(t, Equal(tt.want, got), "want:\n%vgot:\n%v", tt.want, got)
		})
	}
}

func TestConvolveWideZeroPadding(t *testing.T) {
	got, err := Filled(3, 3, 1).Convolve(Filled(2, 2, 1), ConvOptions{PadX: 2, PadY: 2})
	require.NoError(t, err)
	want := New(6, 6)
	require.NoError(t, want.Replace(1, 1, MustParse("1,2,2,1|2,4,4,2|2,4,4,2|1,2,2,1")))
	assert.True(t, Equal(want, got))

	got, err = MustParse("4,2|2,3").Convolve(Filled(2, 2, 2), ConvOptions{PadX: 3, PadY: 3})
	require.NoError(t, err)
	want = New(7, 7)
	require.NoError(t, want.Replace(2, 2, MustParse("8,12,4|12,22,10|4,10,6")))
	assert.True(t, Equal(want, got))
}

func TestConvolveErrors(t *testing.T) {
	_, err := Filled(2, 2, 1).Convolve(Filled(3, 1, 1), ConvOptions{})
	assert.ErrorIs(t, err, ErrKernelTooLarge)

	_, err = Filled(2, 2, 1).Convolve(Filled(1, 1, 1), ConvOptions{StrideX: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConvOutputSize(t *testing.T) {
	n, m := ConvOutputSize(28, 28, 5, 5, ConvOptions{})
	assert.Equal(t, 24, n)
	assert.Equal(t, 24, m)

	n, m = ConvOutputSize(4, 4, 2, 2, ConvOptions{PadX: 1, PadY: 1, StrideX: 3, StrideY: 3})
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, m)
}

func TestPool(t *testing.T) {
	a := MustParse("1,-2,3,0|4,5,-6,-1|0,0,2,2|0,-8,2,2")

	got, err := a.Pool(PoolMax, 2)
	require.NoError(t, err)
	requireMatrix(t, "5,3|0,2", got)

	got, err = a.Pool(PoolMin, 2)
	require.NoError(t, err)
	requireMatrix(t, "-2,-6|-8,2", got)

	got, err = a.Pool(PoolAverage, 2)
	require.NoError(t, err)
	requireMatrix(t, "2,-1|-2,2", got)

	neg, err := Filled(2, 2, -3).Pool(PoolMax, 2)
	require.NoError(t, err)
	requireMatrix(t, "-3", neg)

	_, err = Filled(3, 4, 1).Pool(PoolMax, 2)
	assert.ErrorIs(t, err, ErrIndivisible)
	_, err = a.Pool(PoolAverage, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = a.Pool(PoolKind(7), 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPadExpand(t *testing.T) {
	z, err := MustParse("1,2|3,4").PadExpand(1, FillZero, 3)
	require.NoError(t, err)
	requireMatrix(t, "0,0,0,0|0,1,2,0|0,3,4,0|0,0,0,0", z)

	m, err := Filled(2, 2, 5).PadExpand(2, FillMean, 3)
	require.NoError(t, err)
	assert.True(t, Equal(Filled(6, 6, 5), m))

	_, err = Filled(2, 2, 5).PadExpand(1, FillMean, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
