package serialization

import "time"

// Format constants.
const (
	MagicBytes      = "BORN"
	FormatVersion   = 2
	HeaderAlignment = 64   // Align record data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
	DTypeFloat64    = "float64"
	float64Size     = 8
)

// Flags stored in the fixed header.
const (
	FlagHasMetadata uint32 = 1 << 2 // custom metadata included
	FlagHasNetwork  uint32 = 1 << 3 // network description included
)

// Header is the JSON header of a snapshot.
type Header struct {
	FormatVersion int               `json:"format_version"`
	Version       string            `json:"version"`     // version of the writing program
	ModelType     string            `json:"model_type"`  // e.g. "Network"
	CreatedAt     time.Time         `json:"created_at"`  // when the snapshot was written
	SnapshotID    string            `json:"snapshot_id"` // unique per write
	Records       []RecordMeta      `json:"records"`
	Metadata      map[string]string `json:"metadata"`
	Network       *NetworkMeta      `json:"network,omitempty"`
}

// NetworkMeta describes the architecture a snapshot was taken from.
type NetworkMeta struct {
	ID           string      `json:"id"`
	LearningRate float64     `json:"learning_rate"`
	Layers       []LayerMeta `json:"layers"`
}

// LayerMeta describes one layer of a network.
type LayerMeta struct {
	Kind       string `json:"kind"`
	N          int    `json:"n"`
	M          int    `json:"m"`
	D          int    `json:"d"`
	Activation string `json:"activation,omitempty"`
	Pooling    string `json:"pooling,omitempty"`
}

// RecordMeta describes a record in the data section.
type RecordMeta struct {
	Name   string `json:"name"`   // e.g. "3.weights"
	DType  string `json:"dtype"`  // always "float64"
	Shape  []int  `json:"shape"`  // outermost dimension first
	Offset int64  `json:"offset"` // bytes from start of data section
	Size   int64  `json:"size"`   // bytes
}

// Record is a named array of float64 values with a shape.
type Record struct {
	Name  string
	Shape []int
	Data  []float64
}

// NumElements returns the product of the record's shape.
func (r Record) NumElements() int {
	n := 1
	for _, d := range r.Shape {
		n *= d
	}
	return n
}
