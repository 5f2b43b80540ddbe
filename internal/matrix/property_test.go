package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomDim returns a dimension in [1, 6].
func randomDim(rng *rand.Rand) int { return 1 + rng.Intn(6) }

func TestMatMulAssociative(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		m, k, l, n := randomDim(rng), randomDim(rng), randomDim(rng), randomDim(rng)
		a := Random(k, m, -1, 1, rng)
		b := Random(l, k, -1, 1, rng)
		c := Random(n, l, -1, 1, rng)

		ab, err := MatMul(a, b)
		require.NoError(t, err)
		left, err := MatMul(ab, c)
		require.NoError(t, err)

		bc, err := MatMul(b, c)
		require.NoError(t, err)
		right, err := MatMul(a, bc)
		require.NoError(t, err)

		require.Truef(t, Equal(left, right), "iteration %d:\n%v\n%v", i, left, right)
	}
}

func TestTransposeInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for i := 0; i < 50; i++ {
		a := Random(randomDim(rng), randomDim(rng), -10, 10, rng)
		require.Truef(t, Equal(a, a.Transposed().Transposed()), "iteration %d:\n%v", i, a)
	}
}

func TestSumDiffRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 50; i++ {
		n, m := randomDim(rng), randomDim(rng)
		a := Random(n, m, -10, 10, rng)
		b := Random(n, m, -10, 10, rng)

		s, err := Sum(a, b)
		require.NoError(t, err)
		d, err := Diff(s, b)
		require.NoError(t, err)
		require.Truef(t, Equal(a, d), "iteration %d:\n%v\n%v", i, a, d)

		c := a.Clone()
		require.NoError(t, c.Add(b))
		require.NoError(t, c.Sub(b))
		require.True(t, Equal(a, c))
	}
}
