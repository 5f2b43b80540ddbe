package matrix

import "errors"

// Common errors.
var (
	ErrShapeMismatch   = errors.New("matrix shapes do not match")
	ErrNotSquare       = errors.New("matrix is not square")
	ErrSingular        = errors.New("matrix is singular")
	ErrKernelTooLarge  = errors.New("kernel is larger than input")
	ErrIndivisible     = errors.New("dimension not divisible by pooling size")
	ErrInvalidArgument = errors.New("invalid argument")
)
