package limits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCounterStore_RoundTrip(t *testing.T) {
	store := NewFileCounterStore(t.TempDir())

	require.NoError(t, store.Save(Counter{Date: "2026-08-31", Count: 1}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Counter{Date: "2026-08-31", Count: 1}, loaded)
}

func TestFileCounterStore_MissingFileIsZero(t *testing.T) {
	store := NewFileCounterStore(t.TempDir())

	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, Counter{}, loaded)
}

func TestFileCounterStore_CorruptFileStartsOver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guest_usage.json"), []byte("{not json"), 0o644))

	store := NewFileCounterStore(dir)
	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, Counter{}, loaded)
}

func TestFileCounterStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "voiceai")
	store := NewFileCounterStore(dir)

	require.NoError(t, store.Save(Counter{Date: "2026-08-31", Count: 1}))

	_, err := os.Stat(filepath.Join(dir, "guest_usage.json"))
	assert.NoError(t, err)
}
