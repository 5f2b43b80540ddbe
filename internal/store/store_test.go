package store

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, s Store) {
	t.Helper()

	_, err := s.Open("net")
	require.ErrorIs(t, err, ErrNotFound)

	w, err := s.Create("net")
	require.NoError(t, err)
	_, err = io.WriteString(w, "first")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = s.Create("net")
	require.NoError(t, err)
	_, err = io.WriteString(w, "second")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := s.Open("net")
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	roundTrip(t, m)
	assert.Equal(t, 1, m.Len())
}

func TestDir(t *testing.T) {
	root := t.TempDir() + "/weights"
	d := NewDir(root)
	roundTrip(t, d)

	_, err := os.Stat(d.Path("net"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func abortKeepsPrevious(t *testing.T, s Store) {
	t.Helper()

	w, err := s.Create("net")
	require.NoError(t, err)
	_, err = io.WriteString(w, "good")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = s.Create("net")
	require.NoError(t, err)
	_, err = io.WriteString(w, "partial")
	require.NoError(t, err)
	require.NoError(t, w.Abort())
	require.NoError(t, w.Close(), "close after abort commits nothing")

	r, err := s.Open("net")
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "good", string(b))

	w, err = s.Create("fresh")
	require.NoError(t, err)
	require.NoError(t, w.Abort())
	_, err = s.Open("fresh")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAbort(t *testing.T) {
	m := NewMemory()
	abortKeepsPrevious(t, m)
	assert.Equal(t, 1, m.Len())
}

func TestDirAbort(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root)
	abortKeepsPrevious(t, d)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "aborted temporary files are removed")
	assert.Equal(t, "net"+Extension, entries[0].Name())
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("default"))
	assert.NoError(t, ValidateID("mnist-0.01"))
	for _, id := range []string{"", "a/b", `a\b`, "..", "../x"} {
		assert.ErrorIs(t, ValidateID(id), ErrInvalidID, id)
	}

	_, err := NewMemory().Create("a/b")
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = NewDir(t.TempDir()).Open("")
	assert.ErrorIs(t, err, ErrInvalidID)
}
