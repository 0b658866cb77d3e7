// Package library is the player's bookshelf. Books arrive from the binder,
// fragment synthesis, and the landlord's easter egg; once shelved they are
// never removed.
package library

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
)

// SaveKey is the blob key for the library save file.
const SaveKey = "library_data.json"

// Book is a shelved volume. Mystery books start locked behind fragment
// synthesis; read-only books cannot be edited in the binder afterwards.
type Book struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	Content    string `json:"content"`
	Cover      string `json:"cover,omitempty"`
	Date       int64  `json:"date"`
	IsMystery  bool   `json:"isMystery,omitempty"`
	IsReadOnly bool   `json:"isReadOnly,omitempty"`
	IsRare     bool   `json:"isRare,omitempty"`
	Price      int    `json:"price,omitempty"`
}

type saveDoc struct {
	Books []Book `json:"books"`
}

// Store owns the shelf and its persistence.
type Store struct {
	mu     sync.RWMutex
	blobs  blob.Store
	logger *log.Logger
	books  []Book
}

func NewStore(blobs blob.Store, logger *log.Logger) *Store {
	return &Store{blobs: blobs, logger: logger}
}

// Load reads the library save. An unreadable save starts an empty shelf.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = nil
	raw, err := s.blobs.Load(SaveKey)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	var doc saveDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Printf("library: unreadable save, starting empty: %v", err)
		return nil
	}
	s.books = doc.Books
	return nil
}

// Add shelves a book. Returns false when a book with the same id is
// already shelved; the existing copy stays untouched.
func (s *Store) Add(b Book) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == b.ID {
			return false
		}
	}
	s.books = append(s.books, b)
	s.saveLocked()
	return true
}

// Has reports whether a book id is on the shelf.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ID == id {
			return true
		}
	}
	return false
}

// Get returns a shelved book by id.
func (s *Store) Get(id string) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ID == id {
			return s.books[i], true
		}
	}
	return Book{}, false
}

// All returns the shelf, newest first.
func (s *Store) All() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]Book(nil), s.books...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Count returns the number of shelved books.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

func (s *Store) saveLocked() {
	b, err := json.MarshalIndent(saveDoc{Books: s.books}, "", "  ")
	if err != nil {
		s.logger.Printf("library: marshal save: %v", err)
		return
	}
	if err := s.blobs.Save(SaveKey, b); err != nil {
		s.logger.Printf("library: save: %v", err)
	}
}
