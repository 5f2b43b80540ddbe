package matrix

import "fmt"

// Transposed returns a new matrix with rows and columns exchanged.
func (a *Matrix) Transposed() *Matrix {
	out := New(a.m, a.n)
	for y := 0; y < a.m; y++ {
		for x := 0; x < a.n; x++ {
			out.data[x*out.n+y] = a.data[y*a.n+x]
		}
	}
	return out
}

// Transpose exchanges rows and columns in place and returns a.
func (a *Matrix) Transpose() *Matrix {
	t := a.Transposed()
	a.n, a.m, a.data = t.n, t.m, t.data
	return a
}

// SwapRows exchanges rows r1 and r2.
func (a *Matrix) SwapRows(r1, r2 int) {
	if r1 == r2 {
		return
	}
	for x := 0; x < a.n; x++ {
		i, j := r1*a.n+x, r2*a.n+x
		a.data[i], a.data[j] = a.data[j], a.data[i]
	}
}

// SwapColumns exchanges columns c1 and c2.
func (a *Matrix) SwapColumns(c1, c2 int) {
	if c1 == c2 {
		return
	}
	for y := 0; y < a.m; y++ {
		i, j := y*a.n+c1, y*a.n+c2
		a.data[i], a.data[j] = a.data[j], a.data[i]
	}
}

// SetDiagonal sets every cell (i, i) to v.
func (a *Matrix) SetDiagonal(v float64) *Matrix {
	for i := 0; i < min(a.n, a.m); i++ {
		a.data[i*a.n+i] = v
	}
	return a
}

// TriangularDown reduces a in place so every cell below the main diagonal
// is zero. Rows are swapped when a pivot is zero; the number of swaps is
// returned.
func (a *Matrix) TriangularDown() int {
	swaps := 0
	size := min(a.n, a.m)
	for p := 0; p < size; p++ {
		for r := p + 1; r < size; r++ {
			below := a.At(p, r)
			if below == 0 {
				continue
			}
			if a.At(p, p) == 0 {
				a.SwapRows(p, r)
				swaps++
				below = a.At(p, r)
				if below == 0 {
					continue
				}
			}
			f := -below / a.At(p, p)
			a.Set(p, r, 0)
			for x := p + 1; x < a.n; x++ {
				a.Set(x, r, a.At(x, r)+a.At(x, p)*f)
			}
		}
	}
	return swaps
}

// TriangularUp clears every cell above the main diagonal using the rows
// below it. Only columns right of each pivot are combined, so the result is
// a full reduction when a is already lower-zero (see TriangularDown).
func (a *Matrix) TriangularUp() int {
	swaps := 0
	size := min(a.n, a.m)
	for p := 1; p < size; p++ {
		for r := p - 1; r >= 0; r-- {
			above := a.At(p, r)
			if above == 0 {
				continue
			}
			if a.At(p, p) == 0 {
				a.SwapRows(p, r)
				swaps++
				above = a.At(p, r)
				if above == 0 {
					continue
				}
			}
			f := -above / a.At(p, p)
			a.Set(p, r, 0)
			for x := p + 1; x < a.n; x++ {
				a.Set(x, r, a.At(x, r)+a.At(x, p)*f)
			}
		}
	}
	return swaps
}

// DiagonalProduct returns the product of the main diagonal.
func (a *Matrix) DiagonalProduct() float64 {
	size := min(a.n, a.m)
	if size == 0 {
		return 0
	}
	p := 1.0
	for i := 0; i < size; i++ {
		p *= a.data[i*a.n+i]
	}
	return p
}

// Determinant returns det(a) computed by triangular reduction of a copy.
func (a *Matrix) Determinant() (float64, error) {
	if !a.IsSquare() {
		return 0, fmt.Errorf("determinant: %w: %dx%d", ErrNotSquare, a.n, a.m)
	}
	b := a.Clone()
	swaps := b.TriangularDown()
	d := b.DiagonalProduct()
	if swaps%2 != 0 {
		d = -d
	}
	return d, nil
}

// ToUnit reduces a in place to unit diagonal form: triangular down, then
// triangular up, then every row divided by its diagonal cell.
func (a *Matrix) ToUnit() *Matrix {
	a.TriangularDown()
	a.TriangularUp()
	for i := 0; i < min(a.n, a.m); i++ {
		d := a.data[i*a.n+i]
		if d == 0 || d == 1 {
			continue
		}
		row := a.data[i*a.n : (i+1)*a.n]
		for x := range row {
			row[x] /= d
		}
	}
	return a
}

// Inverse returns a⁻¹ by Gauss-Jordan elimination on [a | I].
func (a *Matrix) Inverse() (*Matrix, error) {
	if !a.IsSquare() {
		return nil, fmt.Errorf("inverse: %w: %dx%d", ErrNotSquare, a.n, a.m)
	}
	b, err := a.JoinRight(Identity(a.n))
	if err != nil {
		return nil, err
	}
	b.ToUnit()
	for i := 0; i < a.m; i++ {
		if b.At(i, i) == 0 {
			return nil, fmt.Errorf("inverse: %w", ErrSingular)
		}
	}
	return b.SubMatrix(a.n, 0, a.n, a.m), nil
}
