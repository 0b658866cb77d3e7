// Package binder is the bookbinding desk: the player assembles a
// manuscript from pieces of writing and publishes it to the library.
package binder

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/journal"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/library"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/notify"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

// SaveKey is the blob key for the in-progress manuscript.
const SaveKey = "binder_data.json"

var ErrTooShort = errors.New("binder: manuscript below minimum length")

// Manuscript is the work in progress on the desk.
type Manuscript struct {
	Title   string `json:"title"`
	Cover   string `json:"cover,omitempty"`
	Content string `json:"content"`
}

// Store persists the manuscript and publishes finished books.
type Store struct {
	mu       sync.RWMutex
	blobs    blob.Store
	user     *userdata.Store
	books    *library.Store
	cfg      *config.Config
	logger   *log.Logger
	notifier notify.Publisher
	now      func() time.Time
	doc      Manuscript
}

func NewStore(blobs blob.Store, user *userdata.Store, books *library.Store, cfg *config.Config, logger *log.Logger) *Store {
	return &Store{
		blobs:  blobs,
		user:   user,
		books:  books,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Store) SetNotifier(p notify.Publisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = p
}

// SetNow overrides the clock source.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load reads the manuscript save. An unreadable save starts a blank desk.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = Manuscript{}
	raw, err := s.blobs.Load(SaveKey)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, &s.doc); err != nil {
		s.logger.Printf("binder: unreadable save, starting blank: %v", err)
		s.doc = Manuscript{}
	}
	return nil
}

// Manuscript returns the work in progress.
func (s *Store) Manuscript() Manuscript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// SetTitle names the work in progress.
func (s *Store) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Title = strings.TrimSpace(title)
	s.saveLocked()
}

// SetCover picks the cover art.
func (s *Store) SetCover(cover string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Cover = cover
	s.saveLocked()
}

// UpdateManuscript replaces the manuscript text.
func (s *Store) UpdateManuscript(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Content = content
	s.saveLocked()
}

// AppendFragment adds a piece of writing to the end of the manuscript,
// separated by a blank line.
func (s *Store) AppendFragment(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Content == "" {
		s.doc.Content = text
	} else {
		s.doc.Content += "\n\n" + text
	}
	s.saveLocked()
}

// Publish turns the manuscript into a shelved book, awards ink for its
// length, and clears the desk. Manuscripts under the minimum length are
// refused with the desk intact.
func (s *Store) Publish() (library.Book, error) {
	s.mu.Lock()
	doc := s.doc
	length := journal.CountWords(doc.Content)
	if length < s.cfg.Rewards.MinManuscriptLen {
		s.mu.Unlock()
		return library.Book{}, ErrTooShort
	}
	title := doc.Title
	if title == "" {
		title = "Untitled"
	}
	book := library.Book{
		ID:      "book_" + uuid.NewString(),
		Title:   title,
		Content: doc.Content,
		Cover:   doc.Cover,
		Date:    s.now().UnixMilli(),
	}
	s.doc = Manuscript{}
	s.saveLocked()
	notifier := s.notifier
	s.mu.Unlock()

	s.books.Add(book)
	ink := 0
	if d := s.cfg.Rewards.PublishDivisor; d > 0 {
		ink = length / d
	}
	if ink > 0 {
		s.user.AddInk(ink)
	}
	s.user.UnlockAchievement(userdata.AchFirstBook)
	if notifier != nil {
		notifier.Publish(notify.Event{Type: notify.EventBookPublished, Payload: book.ID})
	}
	return book, nil
}

func (s *Store) saveLocked() {
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		s.logger.Printf("binder: marshal save: %v", err)
		return
	}
	if err := s.blobs.Save(SaveKey, b); err != nil {
		s.logger.Printf("binder: save: %v", err)
	}
}
