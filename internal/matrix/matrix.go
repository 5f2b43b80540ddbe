// Package matrix implements the dense 2D matrix used by the network engine.
//
// A Matrix has width N (columns, indexed by x) and height M (rows, indexed
// by y). Cells are addressed as (x, y) and stored row-major.
package matrix

import (
	"fmt"
	"math"
	"math/rand"
)

// Epsilon is the per-cell tolerance used by Equal.
const Epsilon = 1e-3

// Matrix is a dense float64 matrix of N columns and M rows.
type Matrix struct {
	n, m int
	data []float64
}

// New creates a zero-filled matrix with n columns and m rows.
func New(n, m int) *Matrix {
	if n < 0 || m < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions %dx%d", n, m))
	}
	return &Matrix{n: n, m: m, data: make([]float64, n*m)}
}

// Filled creates an n×m matrix with every cell set to v.
func Filled(n, m int, v float64) *Matrix {
	a := New(n, m)
	for i := range a.data {
		a.data[i] = v
	}
	return a
}

// Random creates an n×m matrix with cells drawn uniformly from [from, to).
func Random(n, m int, from, to float64, rng *rand.Rand) *Matrix {
	a := New(n, m)
	for i := range a.data {
		a.data[i] = from + rng.Float64()*(to-from)
	}
	return a
}

// Identity creates the n×n identity matrix.
func Identity(n int) *Matrix {
	a := New(n, n)
	for i := 0; i < n; i++ {
		a.data[i*n+i] = 1
	}
	return a
}

// FromColumn creates a column vector (N = 1) holding values.
func FromColumn(values []float64) *Matrix {
	a := New(1, len(values))
	copy(a.data, values)
	return a
}

// FromRow creates a row vector (M = 1) holding values.
func FromRow(values []float64) *Matrix {
	a := New(len(values), 1)
	copy(a.data, values)
	return a
}

// FromValues creates an n×m matrix from row-major values.
func FromValues(n, m int, values []float64) (*Matrix, error) {
	if len(values) != n*m {
		return nil, fmt.Errorf("%w: %d values for %dx%d matrix", ErrShapeMismatch, len(values), n, m)
	}
	a := New(n, m)
	copy(a.data, values)
	return a, nil
}

// FromRows creates a matrix from a slice of rows. All rows must have equal length.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	a := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != a.n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, y, len(row), a.n)
		}
		copy(a.data[y*a.n:], row)
	}
	return a, nil
}

// N returns the width (number of columns).
func (a *Matrix) N() int { return a.n }

// M returns the height (number of rows).
func (a *Matrix) M() int { return a.m }

// At returns the cell at column x, row y.
func (a *Matrix) At(x, y int) float64 {
	return a.data[y*a.n+x]
}

// Set stores v at column x, row y.
func (a *Matrix) Set(x, y int, v float64) {
	a.data[y*a.n+x] = v
}

// Clone returns a deep copy.
func (a *Matrix) Clone() *Matrix {
	b := New(a.n, a.m)
	copy(b.data, a.data)
	return b
}

// Values returns a row-major copy of all cells.
func (a *Matrix) Values() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)
	return out
}

// Row returns a copy of row y.
func (a *Matrix) Row(y int) []float64 {
	out := make([]float64, a.n)
	copy(out, a.data[y*a.n:(y+1)*a.n])
	return out
}

// Column returns a copy of column x.
func (a *Matrix) Column(x int) []float64 {
	out := make([]float64, a.m)
	for y := 0; y < a.m; y++ {
		out[y] = a.data[y*a.n+x]
	}
	return out
}

// SetRow overwrites row y with values.
func (a *Matrix) SetRow(y int, values []float64) error {
	if len(values) != a.n {
		return fmt.Errorf("%w: row of %d values for width %d", ErrShapeMismatch, len(values), a.n)
	}
	copy(a.data[y*a.n:], values)
	return nil
}

// SetColumn overwrites column x with values.
func (a *Matrix) SetColumn(x int, values []float64) error {
	if len(values) != a.m {
		return fmt.Errorf("%w: column of %d values for height %d", ErrShapeMismatch, len(values), a.m)
	}
	for y, v := range values {
		a.data[y*a.n+x] = v
	}
	return nil
}

// SameShape reports whether a and b have equal dimensions.
func (a *Matrix) SameShape(b *Matrix) bool {
	return a.n == b.n && a.m == b.m
}

// IsVector reports whether a is a column vector (N = 1).
func (a *Matrix) IsVector() bool { return a.n == 1 }

// IsTransposedVector reports whether a is a row vector (M = 1).
func (a *Matrix) IsTransposedVector() bool { return a.m == 1 }

// IsSquare reports whether N == M.
func (a *Matrix) IsSquare() bool { return a.n == a.m }

// Equal reports whether a and b have the same shape and every pair of
// cells differs by at most Epsilon.
func Equal(a, b *Matrix) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.SameShape(b) {
		return false
	}
	for i := range a.data {
		if math.Abs(a.data[i]-b.data[i]) > Epsilon {
			return false
		}
	}
	return true
}

// ArgMax returns the row index of the largest value in the first column.
// Ties resolve to the lowest index.
func (a *Matrix) ArgMax() int {
	best := 0
	for y := 1; y < a.m; y++ {
		if a.data[y*a.n] > a.data[best*a.n] {
			best = y
		}
	}
	return best
}

// ArgMin returns the row index of the smallest value in the first column.
func (a *Matrix) ArgMin() int {
	best := 0
	for y := 1; y < a.m; y++ {
		if a.data[y*a.n] < a.data[best*a.n] {
			best = y
		}
	}
	return best
}
