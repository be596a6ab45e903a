package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory(map[string]string{"seed": "1"})

	v, ok := m.Get("seed")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	require.NoError(t, m.Set("seed", "2"))
	v, _ = m.Get("seed")
	assert.Equal(t, "2", v)
}

func TestMemorySeedIsCopied(t *testing.T) {
	seed := map[string]string{"k": "v"}
	m := NewMemory(seed)
	seed["k"] = "changed"

	v, _ := m.Get("k")
	assert.Equal(t, "v", v)
}

func TestFileRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	f := NewFile(dir, nil)

	_, ok := f.Get("roadmap-progress")
	assert.False(t, ok, "missing file reads as absent")

	require.NoError(t, f.Set("roadmap-progress", `["a","b"]`))

	v, ok := f.Get("roadmap-progress")
	require.True(t, ok)
	assert.Equal(t, `["a","b"]`, v)

	data, err := os.ReadFile(filepath.Join(dir, "roadmap-progress.json"))
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(data))
}

func TestFileSetOverwrites(t *testing.T) {
	f := NewFile(t.TempDir(), nil)
	require.NoError(t, f.Set("k", "first value that is long"))
	require.NoError(t, f.Set("k", "short"))

	v, ok := f.Get("k")
	require.True(t, ok)
	assert.Equal(t, "short", v)
}

func TestFileSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir, nil)
	require.NoError(t, f.Set("k", "v"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileInvalidKeys(t *testing.T) {
	f := NewFile(t.TempDir(), nil)
	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, f.Set(key, "v"), ErrInvalidKey)
			_, ok := f.Get(key)
			assert.False(t, ok)
		})
	}
}
