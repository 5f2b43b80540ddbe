package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: snapshot may be corrupted")
	ErrOffsetOverlap      = errors.New("record offsets overlap")
	ErrOutOfBounds        = errors.New("record extends beyond data section")
	ErrTooManyRecords     = errors.New("too many records in snapshot")
	ErrInvalidRecordName  = errors.New("invalid record name")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrDataTooLarge       = errors.New("data section exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnsupportedDType   = errors.New("unsupported record dtype")
	ErrTruncated          = errors.New("snapshot is truncated")
	ErrRecordNotFound     = errors.New("record not found")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // e.g. "offset_overlap", "out_of_bounds"
	Record  string // primary record involved
	Record2 string // secondary record (overlaps)
	Details string
	Err     error // matching sentinel, if any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Record2 != "" {
		return fmt.Sprintf("%s: records %q and %q: %s", e.Type, e.Record, e.Record2, e.Details)
	}
	if e.Record != "" {
		return fmt.Sprintf("%s: record %q: %s", e.Type, e.Record, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns the sentinel error so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
