package matrix

import "fmt"

// SubMatrix returns a copy of the w×h window whose top-left cell is (x, y).
func (a *Matrix) SubMatrix(x, y, w, h int) *Matrix {
	out := New(w, h)
	for j := 0; j < h; j++ {
		copy(out.data[j*w:(j+1)*w], a.data[(y+j)*a.n+x:(y+j)*a.n+x+w])
	}
	return out
}

// Replace overwrites the window starting at (x, y) with b.
func (a *Matrix) Replace(x, y int, b *Matrix) error {
	if x < 0 || y < 0 || x+b.n > a.n || y+b.m > a.m {
		return fmt.Errorf("replace: %w: %dx%d at (%d,%d) in %dx%d", ErrShapeMismatch, b.n, b.m, x, y, a.n, a.m)
	}
	for j := 0; j < b.m; j++ {
		copy(a.data[(y+j)*a.n+x:], b.data[j*b.n:(j+1)*b.n])
	}
	return nil
}

// Expand returns a copy grown by addN zero columns on the right and addM
// zero rows at the bottom.
func (a *Matrix) Expand(addN, addM int) *Matrix {
	out := New(a.n+addN, a.m+addM)
	for y := 0; y < a.m; y++ {
		copy(out.data[y*out.n:], a.data[y*a.n:(y+1)*a.n])
	}
	return out
}

// Erase returns a copy without the last removeN columns and removeM rows.
func (a *Matrix) Erase(removeN, removeM int) *Matrix {
	return a.SubMatrix(0, 0, a.n-removeN, a.m-removeM)
}

// RemoveRows returns a copy without rows start..end inclusive.
func (a *Matrix) RemoveRows(start, end int) *Matrix {
	removed := end - start + 1
	out := New(a.n, a.m-removed)
	copy(out.data, a.data[:start*a.n])
	copy(out.data[start*a.n:], a.data[(end+1)*a.n:])
	return out
}

// RemoveColumns returns a copy without columns start..end inclusive.
func (a *Matrix) RemoveColumns(start, end int) *Matrix {
	removed := end - start + 1
	out := New(a.n-removed, a.m)
	for y := 0; y < a.m; y++ {
		row := a.data[y*a.n : (y+1)*a.n]
		dst := out.data[y*out.n : (y+1)*out.n]
		copy(dst, row[:start])
		copy(dst[start:], row[end+1:])
	}
	return out
}

// JoinRight returns [a | b]. Both must have the same height.
func (a *Matrix) JoinRight(b *Matrix) (*Matrix, error) {
	if a.m != b.m {
		return nil, fmt.Errorf("join right: %w: height %d vs %d", ErrShapeMismatch, a.m, b.m)
	}
	out := a.Expand(b.n, 0)
	if err := out.Replace(a.n, 0, b); err != nil {
		return nil, err
	}
	return out, nil
}

// JoinBottom returns a stacked above b. Both must have the same width.
func (a *Matrix) JoinBottom(b *Matrix) (*Matrix, error) {
	if a.n != b.n {
		return nil, fmt.Errorf("join bottom: %w: width %d vs %d", ErrShapeMismatch, a.n, b.n)
	}
	out := a.Expand(0, b.m)
	copy(out.data[a.n*a.m:], b.data)
	return out, nil
}

// Upsample returns a copy where each cell is repeated kx times horizontally
// and ky times vertically.
func (a *Matrix) Upsample(kx, ky int) *Matrix {
	out := New(a.n*kx, a.m*ky)
	for y := 0; y < out.m; y++ {
		for x := 0; x < out.n; x++ {
			out.data[y*out.n+x] = a.data[(y/ky)*a.n+x/kx]
		}
	}
	return out
}

// Resize returns a width×height copy sampled by nearest neighbour.
func (a *Matrix) Resize(width, height int) (*Matrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resize: %w: %dx%d", ErrInvalidArgument, width, height)
	}
	out := New(width, height)
	sx := float64(a.n) / float64(width)
	sy := float64(a.m) / float64(height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.data[y*width+x] = a.At(int(float64(x)*sx), int(float64(y)*sy))
		}
	}
	return out, nil
}

// Rescale returns a copy rescaled by factor s. Factors below one average
// non-overlapping blocks of int(1/s) cells; factors above one repeat cells.
func (a *Matrix) Rescale(s float64) (*Matrix, error) {
	switch {
	case s <= 0:
		return nil, fmt.Errorf("rescale: %w: factor %g", ErrInvalidArgument, s)
	case s == 1:
		return a.Clone(), nil
	case s < 1:
		size := int(1 / s)
		k := Filled(size, size, 1/float64(size*size))
		return a.Convolve(k, ConvOptions{Fill: FillZero, StrideX: size, StrideY: size})
	}
	return a.Resize(int(float64(a.n)*s), int(float64(a.m)*s))
}
