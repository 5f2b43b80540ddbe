// Package serialization implements the binary snapshot format used to persist
// trained networks.
//
//	Format Structure:
//	  [0x00-0x03: Magic "BORN"]
//	  [0x04-0x07: Version (uint32 LE)]
//	  [0x08-0x0B: Flags (uint32 LE)]
//	  [0x0C-0x0F: Reserved]
//	  [0x10-0x17: Header Size (uint64 LE)]
//	  [0x18-0x1F: Data Size (uint64 LE)]
//	  [0x20-0x3F: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Padding to a 64-byte boundary]
//	  [Data: float64 records, little-endian]
//
// Records are written in the order given, so equal inputs produce equal
// bytes apart from the creation time and snapshot id.
//
// Example usage:
//
//	var buf bytes.Buffer
//	err := serialization.WriteTo(&buf, header, records)
//	...
//	snap, err := serialization.ReadFrom(&buf, serialization.ReaderOptions{})
//	weights, err := snap.Record("0.weights")
package serialization
