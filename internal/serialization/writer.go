package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
)

// Version is the program version recorded in new snapshots.
const Version = "0.1.0"

// Writer writes snapshots to an underlying stream.
type Writer struct {
	w      io.Writer
	closed bool
}

// NewWriter creates a snapshot writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes header and records. Record metadata, the format version, the
// creation time and a fresh snapshot id are filled in by the writer.
func (w *Writer) Write(header Header, records []Record) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	var offset int64
	header.FormatVersion = FormatVersion
	if header.Version == "" {
		header.Version = Version
	}
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	header.SnapshotID = uuid.NewString()
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}
	header.Records = make([]RecordMeta, 0, len(records))
	for _, r := range records {
		if err := ValidateRecordName(r.Name); err != nil {
			return err
		}
		if r.NumElements() != len(r.Data) {
			return fmt.Errorf("record %q: shape %v holds %d values, got %d", r.Name, r.Shape, r.NumElements(), len(r.Data))
		}
		size := int64(len(r.Data) * float64Size)
		header.Records = append(header.Records, RecordMeta{
			Name:   r.Name,
			DType:  DTypeFloat64,
			Shape:  append([]int(nil), r.Shape...),
			Offset: offset,
			Size:   size,
		})
		offset += size
	}

	data := make([]byte, offset)
	var pos int
	for _, r := range records {
		for _, v := range r.Data {
			binary.LittleEndian.PutUint64(data[pos:], math.Float64bits(v))
			pos += float64Size
		}
	}
	checksum := ComputeChecksum(data)

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if header.Network != nil {
		flags |= FlagHasNetwork
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := w.w.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if padding := alignPadding(int64(FixedHeaderSize + len(headerJSON))); padding > 0 {
		if _, err := w.w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("failed to write record data: %w", err)
	}
	return nil
}

// Close marks the writer closed. If the underlying stream is an io.Closer it
// is closed too.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WriteTo writes one snapshot to w without closing it.
func WriteTo(w io.Writer, header Header, records []Record) error {
	return NewWriter(w).Write(header, records)
}

func alignPadding(pos int64) int64 {
	return (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
}
