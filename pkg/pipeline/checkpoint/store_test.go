package checkpoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory builds a fresh store for the shared conformance tests.
type storeFactory func(t *testing.T) Store

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"sqlite": func(t *testing.T) Store {
			store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "checkpoints.db"))
			require.NoError(t, err)
			return store
		},
	}
}

// TestStore_SaveLoad verifies both implementations round-trip data.
func TestStore_SaveLoad(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "describe", []byte("payload")))

			data, err := store.Load("run-1", "describe")
			require.NoError(t, err)
			assert.Equal(t, []byte("payload"), data)
		})
	}
}

// TestStore_SaveOverwrites verifies saving twice keeps the latest data and
// advances the sequence.
func TestStore_SaveOverwrites(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "generate", []byte("v1")))
			require.NoError(t, store.Save("run-1", "generate", []byte("v2")))

			data, err := store.Load("run-1", "generate")
			require.NoError(t, err)
			assert.Equal(t, []byte("v2"), data)

			infos, err := store.List("run-1")
			require.NoError(t, err)
			require.Len(t, infos, 1)
			assert.Equal(t, 2, infos[0].Sequence)
		})
	}
}

// TestStore_LoadMissing verifies missing checkpoints return ErrNotFound.
func TestStore_LoadMissing(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			_, err := store.Load("run-1", "ghost")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

// TestStore_ListOrdersBySequence verifies List returns ascending sequence
// order, latest last.
func TestStore_ListOrdersBySequence(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "describe", []byte("a")))
			require.NoError(t, store.Save("run-1", "generate", []byte("b")))
			require.NoError(t, store.Save("run-1", "validate", []byte("c")))

			infos, err := store.List("run-1")
			require.NoError(t, err)
			require.Len(t, infos, 3)
			assert.Equal(t, "describe", infos[0].NodeID)
			assert.Equal(t, "validate", infos[2].NodeID)
		})
	}
}

// TestStore_Delete verifies single-checkpoint deletion.
func TestStore_Delete(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "describe", []byte("a")))
			require.NoError(t, store.Delete("run-1", "describe"))

			_, err := store.Load("run-1", "describe")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

// TestStore_DeleteRun verifies whole-run deletion leaves other runs alone.
func TestStore_DeleteRun(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "describe", []byte("a")))
			require.NoError(t, store.Save("run-2", "describe", []byte("b")))
			require.NoError(t, store.DeleteRun("run-1"))

			infos, err := store.List("run-1")
			require.NoError(t, err)
			assert.Empty(t, infos)

			_, err = store.Load("run-2", "describe")
			assert.NoError(t, err)
		})
	}
}

// TestStore_UseAfterClose verifies closed stores reject operations.
func TestStore_UseAfterClose(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			require.NoError(t, store.Close())

			err := store.Save("run-1", "describe", []byte("a"))
			assert.Error(t, err)
		})
	}
}
