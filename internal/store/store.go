// Package store persists network snapshots under string ids.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Extension is appended to ids by Dir.
const Extension = ".born"

// ErrNotFound is returned when no snapshot exists for an id.
var ErrNotFound = errors.New("snapshot not found")

// ErrInvalidID is returned for ids that cannot name a snapshot.
var ErrInvalidID = errors.New("invalid snapshot id")

// Writer receives one snapshot. Close commits it, replacing any previous
// snapshot under the same id. Abort discards it and leaves the previous
// snapshot untouched. Only the first of Close or Abort has an effect.
type Writer interface {
	io.WriteCloser
	Abort() error
}

// Store is a keyed blob store for snapshots.
type Store interface {
	// Create opens the snapshot id for writing. Nothing is visible to Open
	// until the returned writer is closed.
	Create(id string) (Writer, error)
	// Open opens the snapshot id for reading.
	Open(id string) (io.ReadCloser, error)
}

// ValidateID rejects empty ids and ids containing path separators or "..".
func ValidateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") || strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Dir stores each snapshot as <Root>/<id>.born.
type Dir struct {
	Root string
}

// NewDir returns a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// Path returns the file that holds snapshot id.
func (d *Dir) Path(id string) string {
	return filepath.Join(d.Root, id+Extension)
}

// Create implements Store. Data is written to a temporary file that is
// renamed into place on Close and removed on Abort.
func (d *Dir) Create(id string) (Writer, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(d.Root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	f, err := os.CreateTemp(d.Root, id+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &atomicFile{File: f, target: d.Path(id)}, nil
}

// Open implements Store.
func (d *Dir) Open(id string) (io.ReadCloser, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	f, err := os.Open(d.Path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

type atomicFile struct {
	*os.File
	target string
	done   bool
}

func (f *atomicFile) Close() error {
	if f.done {
		return nil
	}
	f.done = true
	if err := f.File.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), f.target); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

func (f *atomicFile) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	closeErr := f.File.Close()
	if err := os.Remove(f.Name()); err != nil {
		return fmt.Errorf("failed to remove partial snapshot: %w", err)
	}
	return closeErr
}

// Memory keeps snapshots in process memory. It is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Create implements Store.
func (m *Memory) Create(id string) (Writer, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	return &memoryWriter{store: m, id: id}, nil
}

// Open implements Store.
func (m *Memory) Open(id string) (io.ReadCloser, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Len returns the number of stored snapshots.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

type memoryWriter struct {
	bytes.Buffer
	store *Memory
	id    string
	done  bool
}

func (w *memoryWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	w.store.blobs[w.id] = append([]byte(nil), w.Bytes()...)
	return nil
}

func (w *memoryWriter) Abort() error {
	w.done = true
	w.Reset()
	return nil
}
