package assets

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuntStoreReplaceKeepsOrder(t *testing.T) {
	store, err := OpenBuntStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	as := assert.New(t)
	var many []string
	for i := 0; i < 12; i++ {
		many = append(many, fmt.Sprintf("z%02d.safetensors", 11-i))
	}
	require.NoError(t, store.Replace(many))

	names, err := store.Names()
	as.NoError(err)
	as.Equal(many, names)

	n, err := store.Count()
	as.NoError(err)
	as.Equal(12, n)

	require.NoError(t, store.Replace([]string{"only.pt"}))
	names, err = store.Names()
	as.NoError(err)
	as.Equal([]string{"only.pt"}, names)
}

func TestBuntStoreEmpty(t *testing.T) {
	store, err := OpenBuntStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	names, err := store.Names()
	assert.NoError(t, err)
	assert.Empty(t, names)

	n, err := store.Count()
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestBuntStoreSyncPersists(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.safetensors", "sub/b.pt")
	dbPath := filepath.Join(t.TempDir(), "assets.db")

	store, err := OpenBuntStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Sync(&DirSource{Root: root, Extensions: []string{".safetensors", ".pt"}}))
	require.NoError(t, store.Close())

	reopened, err := OpenBuntStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	names, err := reopened.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.safetensors", filepath.Join("sub", "b.pt")}, names)
}

type brokenSource struct{}

func (brokenSource) Names() ([]string, error) { return nil, fmt.Errorf("boom") }

func TestBuntStoreSyncError(t *testing.T) {
	store, err := OpenBuntStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Replace([]string{"keep.pt"}))
	assert.ErrorContains(t, store.Sync(brokenSource{}), "boom")

	names, _ := store.Names()
	assert.Equal(t, []string{"keep.pt"}, names)
}
