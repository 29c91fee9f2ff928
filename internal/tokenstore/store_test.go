package tokenstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStores_RoundTrip(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "tokens.json")),
	}

	for name, store := range stores {
		store := store
		t.Run(name, func(t *testing.T) {
			tokens, err := store.Load()
			require.NoError(t, err)
			require.True(t, tokens.Empty())

			require.NoError(t, store.Save(Tokens{Access: "a1", Refresh: "r1"}))
			tokens, err = store.Load()
			require.NoError(t, err)
			require.Equal(t, Tokens{Access: "a1", Refresh: "r1"}, tokens)

			require.NoError(t, store.SetAccess("a2"))
			tokens, err = store.Load()
			require.NoError(t, err)
			require.Equal(t, Tokens{Access: "a2", Refresh: "r1"}, tokens)

			require.NoError(t, store.Clear())
			tokens, err = store.Load()
			require.NoError(t, err)
			require.Equal(t, Tokens{}, tokens)

			// clearing twice is not an error
			require.NoError(t, store.Clear())
		})
	}
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(Tokens{Access: "seed", Refresh: "r"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.SetAccess("new")
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Load()
		}()
	}
	wg.Wait()

	tokens, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "new", tokens.Access)
	require.Equal(t, "r", tokens.Refresh)
}
