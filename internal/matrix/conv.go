package matrix

import "fmt"

// Fill selects how cells outside the input are treated by Convolve and PadExpand.
type Fill int

const (
	// FillZero treats out-of-bounds cells as zero.
	FillZero Fill = iota
	// FillMean substitutes out-of-bounds cells with the mean of the
	// in-bounds cells covered by the same window.
	FillMean
)

// String returns the fill name.
func (f Fill) String() string {
	switch f {
	case FillZero:
		return "zero"
	case FillMean:
		return "mean"
	default:
		return fmt.Sprintf("Fill(%d)", int(f))
	}
}

// ConvOptions configures Convolve. Zero strides are treated as 1.
type ConvOptions struct {
	PadX, PadY       int
	Fill             Fill
	StrideX, StrideY int
}

func (o ConvOptions) normalized() (ConvOptions, error) {
	if o.StrideX == 0 {
		o.StrideX = 1
	}
	if o.StrideY == 0 {
		o.StrideY = 1
	}
	if o.StrideX < 0 || o.StrideY < 0 || o.PadX < 0 || o.PadY < 0 {
		return o, fmt.Errorf("%w: stride %dx%d, padding %dx%d", ErrInvalidArgument, o.StrideX, o.StrideY, o.PadX, o.PadY)
	}
	return o, nil
}

// ConvOutputSize returns the output dimensions of convolving an n×m input
// with a kn×km kernel.
func ConvOutputSize(n, m, kn, km int, opts ConvOptions) (int, int) {
	if opts.StrideX <= 0 {
		opts.StrideX = 1
	}
	if opts.StrideY <= 0 {
		opts.StrideY = 1
	}
	return (n-kn+2*opts.PadX)/opts.StrideX + 1, (m-km+2*opts.PadY)/opts.StrideY + 1
}

// Convolve slides k over a (cross-correlation, no kernel flip):
//
//	out[x,y] = Σ a[x*sx-px+i, y*sy-py+j] * k[i,j]
//
// The output has (N-k.N+2*PadX)/StrideX+1 columns and
// (M-k.M+2*PadY)/StrideY+1 rows.
func (a *Matrix) Convolve(k *Matrix, opts ConvOptions) (*Matrix, error) {
	if k.n > a.n || k.m > a.m {
		return nil, fmt.Errorf("convolve: %w: kernel %dx%d, input %dx%d", ErrKernelTooLarge, k.n, k.m, a.n, a.m)
	}
	opts, err := opts.normalized()
	if err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}

	outN, outM := ConvOutputSize(a.n, a.m, k.n, k.m, opts)
	out := New(outN, outM)
	for y := 0; y < outM; y++ {
		y0 := y*opts.StrideY - opts.PadY
		for x := 0; x < outN; x++ {
			x0 := x*opts.StrideX - opts.PadX
			var acc, inSum, outK float64
			inCount := 0
			for j := 0; j < k.m; j++ {
				yy := y0 + j
				for i := 0; i < k.n; i++ {
					xx := x0 + i
					kv := k.data[j*k.n+i]
					if xx < 0 || xx >= a.n || yy < 0 || yy >= a.m {
						outK += kv
						continue
					}
					v := a.data[yy*a.n+xx]
					acc += v * kv
					inSum += v
					inCount++
				}
			}
			if opts.Fill == FillMean && inCount > 0 && outK != 0 {
				acc += inSum / float64(inCount) * outK
			}
			out.data[y*outN+x] = acc
		}
	}
	return out, nil
}

// PadExpand returns a copy surrounded by pad rows and columns on every side.
// With FillMean each border cell, ring by ring from the inside out, takes the
// mean of the already filled cells within a window×window neighbourhood.
// window must be odd.
func (a *Matrix) PadExpand(pad int, fill Fill, window int) (*Matrix, error) {
	if pad <= 0 {
		return nil, fmt.Errorf("pad expand: %w: padding %d", ErrInvalidArgument, pad)
	}
	if window%2 == 0 || window < 1 {
		return nil, fmt.Errorf("pad expand: %w: window %d must be odd", ErrInvalidArgument, window)
	}
	out := New(a.n+2*pad, a.m+2*pad)
	if err := out.Replace(pad, pad, a); err != nil {
		return nil, err
	}
	if fill != FillMean {
		return out, nil
	}

	filled := make([]bool, len(out.data))
	for y := pad; y < pad+a.m; y++ {
		for x := pad; x < pad+a.n; x++ {
			filled[y*out.n+x] = true
		}
	}
	r := window / 2
	for ring := pad - 1; ring >= 0; ring-- {
		for _, c := range ringCells(out.n, out.m, ring) {
			var sum float64
			count := 0
			for yy := max(0, c[1]-r); yy <= min(out.m-1, c[1]+r); yy++ {
				for xx := max(0, c[0]-r); xx <= min(out.n-1, c[0]+r); xx++ {
					if filled[yy*out.n+xx] {
						sum += out.data[yy*out.n+xx]
						count++
					}
				}
			}
			i := c[1]*out.n + c[0]
			if count > 0 {
				out.data[i] = sum / float64(count)
			}
			filled[i] = true
		}
	}
	return out, nil
}

// ringCells lists the cells at distance ring from the border of an n×m grid,
// clockwise from the top-left corner.
func ringCells(n, m, ring int) [][2]int {
	x0, y0, x1, y1 := ring, ring, n-1-ring, m-1-ring
	var cells [][2]int
	for x := x0; x <= x1; x++ {
		cells = append(cells, [2]int{x, y0})
	}
	for y := y0 + 1; y <= y1; y++ {
		cells = append(cells, [2]int{x1, y})
	}
	if y1 > y0 {
		for x := x1 - 1; x >= x0; x-- {
			cells = append(cells, [2]int{x, y1})
		}
	}
	if x1 > x0 {
		for y := y1 - 1; y > y0; y-- {
			cells = append(cells, [2]int{x0, y})
		}
	}
	return cells
}
