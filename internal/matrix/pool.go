package matrix

import (
	"fmt"
	"math"
)

// PoolKind selects the block reduction used by Pool.
type PoolKind int

const (
	PoolMax PoolKind = iota
	PoolMin
	PoolAverage
)

// String returns the lower-case pooling name.
func (p PoolKind) String() string {
	switch p {
	case PoolMax:
		return "max"
	case PoolMin:
		return "min"
	case PoolAverage:
		return "average"
	default:
		return fmt.Sprintf("PoolKind(%d)", int(p))
	}
}

// Pool reduces every non-overlapping size×size block to one cell. Both
// dimensions must be divisible by size.
func (a *Matrix) Pool(kind PoolKind, size int) (*Matrix, error) {
	if size < 1 {
		return nil, fmt.Errorf("pool: %w: size %d", ErrInvalidArgument, size)
	}
	if kind != PoolMax && kind != PoolMin && kind != PoolAverage {
		return nil, fmt.Errorf("pool: %w: %v", ErrInvalidArgument, kind)
	}
	if a.n%size != 0 || a.m%size != 0 {
		return nil, fmt.Errorf("pool: %w: %dx%d by %d", ErrIndivisible, a.n, a.m, size)
	}

	out := New(a.n/size, a.m/size)
	for y := 0; y < out.m; y++ {
		for x := 0; x < out.n; x++ {
			var acc float64
			switch kind {
			case PoolMax:
				acc = math.Inf(-1)
			case PoolMin:
				acc = math.Inf(1)
			}
			for j := y * size; j < (y+1)*size; j++ {
				for i := x * size; i < (x+1)*size; i++ {
					v := a.data[j*a.n+i]
					switch kind {
					case PoolMax:
						acc = math.Max(acc, v)
					case PoolMin:
						acc = math.Min(acc, v)
					case PoolAverage:
						acc += v
					}
				}
			}
			if kind == PoolAverage {
				acc /= float64(size * size)
			}
			out.data[y*out.n+x] = acc
		}
	}
	return out, nil
}
