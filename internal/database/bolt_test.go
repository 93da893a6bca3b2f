package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltKVStore(t *testing.T) {
	t.Parallel()

	store, err := NewBoltKVStore(filepath.Join(t.TempDir(), "test.db"), "spool")
	require.NoError(t, err)
	defer store.Close()

	missing, err := store.ReadKey([]byte("nope"))
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.UpdateKey([]byte("sp/2"), []byte("second")))
	require.NoError(t, store.UpdateKey([]byte("sp/1"), []byte("first")))

	data, err := store.ReadKey([]byte("sp/1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("sp/1"), []byte("sp/2")}, keys)

	require.NoError(t, store.DeleteKey([]byte("sp/1")))
	require.NoError(t, store.DeleteKey([]byte("sp/1")))

	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("sp/2")}, keys)
}

func TestBoltKVStoreReadSurvivesUpdate(t *testing.T) {
	t.Parallel()

	store, err := NewBoltKVStore(filepath.Join(t.TempDir(), "test.db"), "spool")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.UpdateKey([]byte("sp/1"), []byte("first")))

	data, err := store.ReadKey([]byte("sp/1"))
	require.NoError(t, err)

	// Values read earlier must stay intact after the store mutates and
	// bbolt remaps its pages.
	for i := 0; i < 100; i++ {
		require.NoError(t, store.UpdateKey([]byte("sp/2"), make([]byte, 4096)))
	}

	assert.Equal(t, []byte("first"), data)
}
