package tensor

import "fmt"

// Shape represents the dimensions of a tensor: width N, height M and depth D.
type Shape struct {
	N, M, D int
}

// NumElements returns the total number of cells.
func (s Shape) NumElements() int {
	return s.N * s.M * s.D
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range []int{s.N, s.M, s.D} {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s == other
}

// Plane returns the number of cells in one channel.
func (s Shape) Plane() int {
	return s.N * s.M
}

// String formats the shape as NxMxD.
func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.N, s.M, s.D)
}

// Ints returns the shape as [D, M, N], outermost dimension first.
func (s Shape) Ints() []int {
	return []int{s.D, s.M, s.N}
}

// ShapeFromInts is the inverse of Shape.Ints.
func ShapeFromInts(dims []int) (Shape, error) {
	if len(dims) != 3 {
		return Shape{}, fmt.Errorf("shape needs 3 dimensions, got %d", len(dims))
	}
	s := Shape{N: dims[2], M: dims[1], D: dims[0]}
	return s, s.Validate()
}
