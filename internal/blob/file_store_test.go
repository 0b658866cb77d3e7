package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingKeyReturnsNil(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	b, err := store.Load("user_data.json")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("user_data.json", []byte(`{"day":3}`)))

	b, err := store.Load("user_data.json")
	require.NoError(t, err)
	assert.Equal(t, `{"day":3}`, string(b))
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("library_data.json", []byte(`{}`)))
	require.NoError(t, store.Delete("library_data.json"))
	require.NoError(t, store.Delete("library_data.json"))

	b, err := store.Load("library_data.json")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestFileStore_OverwriteReplacesBlob(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("journal_data.json", []byte(`[]`)))
	require.NoError(t, store.Save("journal_data.json", []byte(`[{"id":"e1"}]`)))

	b, err := store.Load("journal_data.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"e1"}]`, string(b))
}
