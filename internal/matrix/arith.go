package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// AddScalar adds v to every cell in place and returns a.
func (a *Matrix) AddScalar(v float64) *Matrix {
	floats.AddConst(v, a.data)
	return a
}

// SubScalar subtracts v from every cell in place and returns a.
func (a *Matrix) SubScalar(v float64) *Matrix {
	floats.AddConst(-v, a.data)
	return a
}

// Scale multiplies every cell by v in place and returns a.
func (a *Matrix) Scale(v float64) *Matrix {
	floats.Scale(v, a.data)
	return a
}

// Negative flips the sign of every cell in place and returns a.
func (a *Matrix) Negative() *Matrix {
	return a.Scale(-1)
}

// Apply replaces every cell with fn(cell) in place and returns a.
func (a *Matrix) Apply(fn func(float64) float64) *Matrix {
	for i, v := range a.data {
		a.data[i] = fn(v)
	}
	return a
}

// Add adds b to a cell by cell in place.
func (a *Matrix) Add(b *Matrix) error {
	if !a.SameShape(b) {
		return shapeError("add", a, b)
	}
	floats.Add(a.data, b.data)
	return nil
}

// Sub subtracts b from a cell by cell in place.
func (a *Matrix) Sub(b *Matrix) error {
	if !a.SameShape(b) {
		return shapeError("sub", a, b)
	}
	floats.Sub(a.data, b.data)
	return nil
}

// Sum returns a + b.
func Sum(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, shapeError("sum", a, b)
	}
	out := New(a.n, a.m)
	floats.AddTo(out.data, a.data, b.data)
	return out, nil
}

// Diff returns a - b.
func Diff(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, shapeError("diff", a, b)
	}
	out := New(a.n, a.m)
	floats.SubTo(out.data, a.data, b.data)
	return out, nil
}

// Total returns the sum of all cells.
func (a *Matrix) Total() float64 {
	return floats.Sum(a.data)
}

// Average returns the mean of all cells, or 0 for an empty matrix.
func (a *Matrix) Average() float64 {
	if len(a.data) == 0 {
		return 0
	}
	return floats.Sum(a.data) / float64(len(a.data))
}

// MatMul returns the matrix product a × b. It requires a.N == b.M and
// produces a matrix of b.N columns and a.M rows.
func MatMul(a, b *Matrix) (*Matrix, error) {
	if a.n != b.m {
		return nil, shapeError("matmul", a, b)
	}
	out := New(b.n, a.m)
	for y := 0; y < a.m; y++ {
		dst := out.data[y*out.n : (y+1)*out.n]
		for k := 0; k < a.n; k++ {
			av := a.data[y*a.n+k]
			if av == 0 {
				continue
			}
			floats.AddScaled(dst, av, b.data[k*b.n:(k+1)*b.n])
		}
	}
	return out, nil
}

// Hadamard returns the element-wise product of two identically shaped matrices.
func Hadamard(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, shapeError("hadamard", a, b)
	}
	out := New(a.n, a.m)
	floats.MulTo(out.data, a.data, b.data)
	return out, nil
}

// Multiply selects the product by shape: the matrix product when a.N == b.M,
// otherwise the element-wise product when the shapes are identical.
//
// Square operands of equal size always take the matrix product. Callers that
// need a specific product should use MatMul or Hadamard directly.
func Multiply(a, b *Matrix) (*Matrix, error) {
	switch {
	case a.n == b.m:
		return MatMul(a, b)
	case a.SameShape(b):
		return Hadamard(a, b)
	default:
		return nil, shapeError("multiply", a, b)
	}
}

func shapeError(op string, a, b *Matrix) error {
	return fmt.Errorf("%s: %w: %dx%d vs %dx%d", op, ErrShapeMismatch, a.n, a.m, b.n, b.m)
}
