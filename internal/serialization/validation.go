package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB
	MaxDataSize      = 1 << 32           // 4GB
	MaxRecordCount   = 100_000
	MaxRecordNameLen = 4096
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks names and counts but not offsets.
	ValidationNormal
	// ValidationNone skips validation. Use only with trusted input.
	ValidationNone
)

// ValidateRecordOffsets checks for overlapping record regions and
// out-of-bounds access.
func ValidateRecordOffsets(records []RecordMeta, dataSize int64) error {
	if len(records) > MaxRecordCount {
		return &ValidationError{
			Type:    "too_many_records",
			Details: fmt.Sprintf("got %d, max %d", len(records), MaxRecordCount),
			Err:     ErrTooManyRecords,
		}
	}

	sorted := make([]RecordMeta, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, r := range sorted {
		if r.Offset < 0 || r.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Record:  r.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", r.Offset, r.Size),
				Err:     ErrOutOfBounds,
			}
		}
		if r.Offset+r.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Record:  r.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", r.Offset, r.Size, dataSize),
				Err:     ErrOutOfBounds,
			}
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if r.Offset+r.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Record:  r.Name,
					Record2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						r.Offset, r.Offset+r.Size, next.Offset, next.Offset+next.Size),
					Err: ErrOffsetOverlap,
				}
			}
		}
	}
	return nil
}

// ValidateRecordName rejects names that are empty, too long, or contain path
// separators, ".." or NUL bytes.
func ValidateRecordName(name string) error {
	invalid := func(details string) error {
		return &ValidationError{Type: "invalid_name", Record: name, Details: details, Err: ErrInvalidRecordName}
	}
	switch {
	case name == "":
		return invalid("empty name")
	case len(name) > MaxRecordNameLen:
		return invalid(fmt.Sprintf("length %d > max %d", len(name), MaxRecordNameLen))
	case strings.Contains(name, ".."):
		return invalid("contains '..'")
	case strings.ContainsAny(name, "/\\"):
		return invalid("contains path separator (/ or \\)")
	case strings.Contains(name, "\x00"):
		return invalid("contains null byte")
	}
	return nil
}

// ValidateHeader performs header validation at the requested level.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}
	if len(h.Records) > MaxRecordCount {
		return &ValidationError{
			Type:    "too_many_records",
			Details: fmt.Sprintf("got %d, max %d", len(h.Records), MaxRecordCount),
			Err:     ErrTooManyRecords,
		}
	}
	seen := make(map[string]struct{}, len(h.Records))
	for _, r := range h.Records {
		if err := ValidateRecordName(r.Name); err != nil {
			return err
		}
		if _, dup := seen[r.Name]; dup {
			return &ValidationError{Type: "duplicate_name", Record: r.Name, Details: "appears twice", Err: ErrInvalidRecordName}
		}
		seen[r.Name] = struct{}{}
	}
	if level == ValidationStrict {
		return ValidateRecordOffsets(h.Records, dataSize)
	}
	return nil
}
