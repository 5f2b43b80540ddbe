package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/convnet/internal/tensor"
)

// uniformInit creates weights drawn from U(-1/sqrt(fanOut), 1/sqrt(fanOut)).
func uniformInit(shape tensor.Shape, fanOut int, rng *rand.Rand) *tensor.Tensor {
	bound := 1 / math.Sqrt(float64(fanOut))
	t := tensor.Zeros(shape)
	for d := 0; d < shape.D; d++ {
		for y := 0; y < shape.M; y++ {
			for x := 0; x < shape.N; x++ {
				t.Set(x, y, d, (rng.Float64()*2.0-1.0)*bound)
			}
		}
	}
	return t
}

// newRand returns the default weight source.
func newRand() *rand.Rand {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return rand.New(rand.NewSource(rand.Int63()))
}
