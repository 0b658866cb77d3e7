// Package blob persists independent JSON documents under logical keys.
// Keys partition unrelated documents (game state, journal, library); there is
// no cross-key atomicity.
package blob

// Store is the persistence collaborator consumed by the data stores.
type Store interface {
	// Load returns the raw blob for key, or nil with no error when the key
	// has never been written.
	Load(key string) ([]byte, error)
	// Save overwrites the blob for key.
	Save(key string, data []byte) error
	// Delete removes the blob for key. Deleting an absent key is not an
	// error.
	Delete(key string) error
}
