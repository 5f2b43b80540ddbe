package serialization

import (
	"errors"
	"strings"
	"testing"
)

// TestValidateRecordOffsets_NoOverlap verifies that valid records pass validation.
func TestValidateRecordOffsets_NoOverlap(t *testing.T) {
	records := []RecordMeta{
		{Name: "0.weights", Offset: 0, Size: 80},
		{Name: "0.biases", Offset: 80, Size: 8},
		{Name: "2.weights", Offset: 88, Size: 160},
	}
	if err := ValidateRecordOffsets(records, 248); err != nil {
		t.Errorf("Expected no error for valid records, got: %v", err)
	}
}

// TestValidateRecordOffsets_Errors covers overlap and bounds failures.
func TestValidateRecordOffsets_Errors(t *testing.T) {
	tests := []struct {
		name     string
		records  []RecordMeta
		dataSize int64
		wantType string
		wantErr  error
	}{
		{
			name: "overlap",
			records: []RecordMeta{
				{Name: "a", Offset: 0, Size: 16},
				{Name: "b", Offset: 8, Size: 16},
			},
			dataSize: 32,
			wantType: "offset_overlap",
			wantErr:  ErrOffsetOverlap,
		},
		{
			name:     "beyond data section",
			records:  []RecordMeta{{Name: "a", Offset: 8, Size: 16}},
			dataSize: 16,
			wantType: "out_of_bounds",
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "negative offset",
			records:  []RecordMeta{{Name: "a", Offset: -8, Size: 8}},
			dataSize: 16,
			wantType: "negative_offset",
			wantErr:  ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordOffsets(tt.records, tt.dataSize)
			if err == nil {
				t.Fatalf("Expected error, got nil")
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T", err)
			}
			if validationErr.Type != tt.wantType {
				t.Errorf("Expected %s error, got %s", tt.wantType, validationErr.Type)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected errors.Is(%v), got %v", tt.wantErr, err)
			}
		})
	}
}

// TestValidateRecordName rejects names that could escape a directory.
func TestValidateRecordName(t *testing.T) {
	valid := []string{"0.weights", "5.biases", "layer_1"}
	for _, name := range valid {
		if err := ValidateRecordName(name); err != nil {
			t.Errorf("ValidateRecordName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "../etc/passwd", "a/b", "a\\b", "a\x00b", strings.Repeat("x", MaxRecordNameLen+1)}
	for _, name := range invalid {
		err := ValidateRecordName(name)
		if !errors.Is(err, ErrInvalidRecordName) {
			t.Errorf("ValidateRecordName(%q) = %v, want ErrInvalidRecordName", name, err)
		}
	}
}

// TestValidateHeader_Levels checks that offset validation only runs in strict mode.
func TestValidateHeader_Levels(t *testing.T) {
	h := &Header{Records: []RecordMeta{{Name: "a", Offset: 0, Size: 64}}}

	if err := ValidateHeader(h, 8, ValidationStrict); err == nil {
		t.Error("Expected strict validation to fail")
	}
	if err := ValidateHeader(h, 8, ValidationNormal); err != nil {
		t.Errorf("Expected normal validation to pass, got %v", err)
	}

	h.Records = append(h.Records, RecordMeta{Name: "a", Offset: 64, Size: 0})
	if err := ValidateHeader(h, 64, ValidationNormal); err == nil {
		t.Error("Expected duplicate names to fail")
	}
	if err := ValidateHeader(h, 64, ValidationNone); err != nil {
		t.Errorf("Expected no validation, got %v", err)
	}
}
