package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// ReaderOptions configures ReadFrom.
type ReaderOptions struct {
	SkipChecksumValidation bool            // faster but less safe
	ValidationLevel        ValidationLevel // zero value is ValidationStrict
}

// Snapshot is a decoded snapshot.
type Snapshot struct {
	Header   Header
	Checksum [32]byte
	records  map[string]Record
}

// RecordNames returns the record names in file order.
func (s *Snapshot) RecordNames() []string {
	names := make([]string, len(s.Header.Records))
	for i, r := range s.Header.Records {
		names[i] = r.Name
	}
	return names
}

// Record returns the named record.
func (s *Snapshot) Record(name string) (Record, error) {
	r, ok := s.records[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrRecordNotFound, name)
	}
	return r, nil
}

// ReadFrom reads and validates one snapshot from r.
func ReadFrom(r io.Reader, opts ReaderOptions) (*Snapshot, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("failed to read fixed header: %w", truncated(err))
	}
	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}
	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}
	if dataSize > MaxDataSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrDataTooLarge, dataSize)
	}

	snap := &Snapshot{}
	copy(snap.Checksum[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", truncated(err))
	}
	if err := json.Unmarshal(headerBytes, &snap.Header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	if padding := alignPadding(int64(FixedHeaderSize) + int64(headerSize)); padding > 0 {
		if _, err := io.CopyN(io.Discard, r, padding); err != nil {
			return nil, fmt.Errorf("failed to skip padding: %w", truncated(err))
		}
	}

	// The buffer grows with the bytes actually present so a corrupt size
	// cannot force a large allocation up front.
	//nolint:gosec // G115: dataSize is bounded by MaxDataSize
	data, err := io.ReadAll(io.LimitReader(r, int64(dataSize)))
	if err != nil {
		return nil, fmt.Errorf("failed to read record data: %w", err)
	}
	if uint64(len(data)) != dataSize {
		return nil, fmt.Errorf("failed to read record data: %w: got %d of %d bytes", ErrTruncated, len(data), dataSize)
	}
	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(data), snap.Checksum); err != nil {
			return nil, err
		}
	}
	//nolint:gosec // G115: dataSize is bounded by MaxDataSize
	if err := ValidateHeader(&snap.Header, int64(dataSize), opts.ValidationLevel); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	snap.records = make(map[string]Record, len(snap.Header.Records))
	for _, meta := range snap.Header.Records {
		rec, err := decodeRecord(meta, data)
		if err != nil {
			return nil, err
		}
		snap.records[meta.Name] = rec
	}
	return snap, nil
}

func decodeRecord(meta RecordMeta, data []byte) (Record, error) {
	if meta.DType != DTypeFloat64 {
		return Record{}, fmt.Errorf("record %q: %w: %s", meta.Name, ErrUnsupportedDType, meta.DType)
	}
	rec := Record{Name: meta.Name, Shape: append([]int(nil), meta.Shape...)}
	if int64(rec.NumElements()*float64Size) != meta.Size {
		return Record{}, fmt.Errorf("record %q: shape %v does not match size %d", meta.Name, meta.Shape, meta.Size)
	}
	if meta.Offset < 0 || meta.Offset+meta.Size > int64(len(data)) {
		return Record{}, fmt.Errorf("record %q: %w", meta.Name, ErrOutOfBounds)
	}
	raw := data[meta.Offset : meta.Offset+meta.Size]
	rec.Data = make([]float64, rec.NumElements())
	for i := range rec.Data {
		rec.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*float64Size:]))
	}
	return rec, nil
}

func truncated(err error) error {
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return ErrTruncated
	}
	return err
}
