// Package journal holds the player's diary entries. Entries live in their
// own save file; word totals and ink rewards write through to the user
// state so the two stay consistent across sessions.
package journal

import (
	"encoding/json"
	"errors"
	"log"
	"sort"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

// SaveKey is the blob key for the journal save file.
const SaveKey = "journal_data.json"

var ErrNotFound = errors.New("journal: entry not found")

// Entry is a single diary entry. SavedWordCount is the word count credited
// to the running total at confirm time; it is nil for unconfirmed entries.
type Entry struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Timestamp      int64    `json:"timestamp"`
	CreatedAt      int64    `json:"createdAt"`
	Content        string   `json:"content"`
	NotebookIDs    []string `json:"notebookIds"`
	Tags           []string `json:"tags"`
	IsConfirmed    bool     `json:"isConfirmed"`
	IsDeleted      bool     `json:"isDeleted"`
	DeletedAt      int64    `json:"deletedAt,omitempty"`
	SavedWordCount *int     `json:"savedWordCount,omitempty"`
}

type saveDoc struct {
	Entries []Entry `json:"entries"`
}

// CountWords counts non-whitespace runes. The game's "words" are closer to
// characters; CJK text has no spaces to split on.
func CountWords(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Store owns the entry list and its persistence.
type Store struct {
	mu      sync.RWMutex
	blobs   blob.Store
	user    *userdata.Store
	cfg     *config.Config
	logger  *log.Logger
	now     func() time.Time
	entries []Entry
}

func NewStore(blobs blob.Store, user *userdata.Store, cfg *config.Config, logger *log.Logger) *Store {
	return &Store{
		blobs:  blobs,
		user:   user,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// SetNow overrides the clock source.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load reads the journal save. Unreadable saves fall back to an empty
// journal; individual entries are repaired rather than dropped.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	raw, err := s.blobs.Load(SaveKey)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	var doc saveDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Printf("journal: unreadable save, starting empty: %v", err)
		return nil
	}
	changed := false
	for i := range doc.Entries {
		if repairEntry(&doc.Entries[i]) {
			changed = true
		}
	}
	s.entries = doc.Entries
	if changed {
		s.saveLocked()
	}
	return nil
}

// repairEntry normalizes the optional fields older saves omit.
func repairEntry(e *Entry) bool {
	changed := false
	if e.NotebookIDs == nil {
		e.NotebookIDs = []string{userdata.InboxNotebookID}
		changed = true
	}
	if e.Tags == nil {
		e.Tags = []string{}
		changed = true
	}
	if e.CreatedAt == 0 && e.Timestamp != 0 {
		e.CreatedAt = e.Timestamp
		changed = true
	}
	return changed
}

func (s *Store) saveLocked() {
	b, err := json.MarshalIndent(saveDoc{Entries: s.entries}, "", "  ")
	if err != nil {
		s.logger.Printf("journal: marshal save: %v", err)
		return
	}
	if err := s.blobs.Save(SaveKey, b); err != nil {
		s.logger.Printf("journal: save: %v", err)
	}
}

// Create adds an unconfirmed entry. Entries with no notebook go to the
// inbox.
func (s *Store) Create(content string, notebookIDs []string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(notebookIDs) == 0 {
		notebookIDs = []string{userdata.InboxNotebookID}
	}
	e := Entry{
		ID:          "entry_" + uuid.NewString(),
		Date:        now.Format("2006-01-02"),
		Time:        now.Format("15:04"),
		Timestamp:   now.UnixMilli(),
		CreatedAt:   now.UnixMilli(),
		Content:     content,
		NotebookIDs: append([]string(nil), notebookIDs...),
		Tags:        []string{},
	}
	s.entries = append(s.entries, e)
	s.saveLocked()
	return e
}

// Update rewrites an entry's content. For a confirmed entry the word total
// tracks the edit: the previously credited count is replaced by the new one.
func (s *Store) Update(id, content string) error {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil {
		s.mu.Unlock()
		return ErrNotFound
	}
	e.Content = content
	var delta int
	if e.IsConfirmed && e.SavedWordCount != nil {
		words := CountWords(content)
		delta = words - *e.SavedWordCount
		e.SavedWordCount = &words
	}
	s.saveLocked()
	s.mu.Unlock()

	if delta != 0 {
		s.user.UpdateWordCount(delta)
	}
	return nil
}

// Confirm seals an entry: its words join the running total and ink is
// awarded. Confirming twice is refused, so the reward cannot be farmed.
func (s *Store) Confirm(id string) (int, error) {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil {
		s.mu.Unlock()
		return 0, ErrNotFound
	}
	if e.IsConfirmed {
		s.mu.Unlock()
		return 0, nil
	}
	words := CountWords(e.Content)
	e.IsConfirmed = true
	e.SavedWordCount = &words
	s.saveLocked()
	s.mu.Unlock()

	ink := 0
	if d := s.cfg.Rewards.ConfirmDivisor; d > 0 {
		ink = words / d
	}
	if words > 0 {
		s.user.UpdateWordCount(words)
	}
	if ink > 0 {
		s.user.AddInk(ink)
	}
	s.user.UnlockAchievement(userdata.AchFirstDiary)
	return ink, nil
}

// ToggleNotebook adds or removes a notebook from an entry. An entry left
// with no notebooks falls back to the inbox.
func (s *Store) ToggleNotebook(entryID, notebookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findLocked(entryID)
	if e == nil {
		return ErrNotFound
	}
	kept := e.NotebookIDs[:0]
	removed := false
	for _, id := range e.NotebookIDs {
		if id == notebookID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	e.NotebookIDs = kept
	if !removed {
		e.NotebookIDs = append(e.NotebookIDs, notebookID)
	}
	if len(e.NotebookIDs) == 0 {
		e.NotebookIDs = []string{userdata.InboxNotebookID}
	}
	s.saveLocked()
	return nil
}

// DetachNotebook strips a deleted notebook from every entry. Orphaned
// entries move to the inbox.
func (s *Store) DetachNotebook(notebookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range s.entries {
		e := &s.entries[i]
		kept := e.NotebookIDs[:0]
		for _, id := range e.NotebookIDs {
			if id == notebookID {
				changed = true
				continue
			}
			kept = append(kept, id)
		}
		e.NotebookIDs = kept
		if len(e.NotebookIDs) == 0 {
			e.NotebookIDs = []string{userdata.InboxNotebookID}
		}
	}
	if changed {
		s.saveLocked()
	}
}

// Delete moves an entry to the trash. The word total keeps the credited
// count until the entry is destroyed for good.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findLocked(id)
	if e == nil {
		return ErrNotFound
	}
	if !e.IsDeleted {
		e.IsDeleted = true
		e.DeletedAt = s.now().UnixMilli()
		s.saveLocked()
	}
	return nil
}

// Restore brings a trashed entry back.
func (s *Store) Restore(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findLocked(id)
	if e == nil {
		return ErrNotFound
	}
	if e.IsDeleted {
		e.IsDeleted = false
		e.DeletedAt = 0
		s.saveLocked()
	}
	return nil
}

// HardDelete destroys an entry. A confirmed entry's credited words leave
// the running total with it.
func (s *Store) HardDelete(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.entries {
		if s.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	var delta int
	if e := s.entries[idx]; e.IsConfirmed && e.SavedWordCount != nil {
		delta = -*e.SavedWordCount
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.saveLocked()
	s.mu.Unlock()

	if delta != 0 {
		s.user.UpdateWordCount(delta)
	}
	return nil
}

// Get returns an entry by id, trashed or not.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.findLocked(id); e != nil {
		return *e, true
	}
	return Entry{}, false
}

// All returns live entries, newest first.
func (s *Store) All() []Entry {
	return s.filtered(false)
}

// Trash returns deleted entries, most recently deleted first.
func (s *Store) Trash() []Entry {
	out := s.filtered(true)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DeletedAt > out[j].DeletedAt
	})
	return out
}

// ByNotebook returns live entries belonging to a notebook, newest first.
func (s *Store) ByNotebook(notebookID string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.IsDeleted {
			continue
		}
		for _, id := range e.NotebookIDs {
			if id == notebookID {
				out = append(out, e)
				break
			}
		}
	}
	sortNewestFirst(out)
	return out
}

// ConfirmedWordTotal sums the credited words of confirmed, live entries.
// Entries confirmed before counts were persisted fall back to a fresh count.
func (s *Store) ConfirmedWordTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for i := range s.entries {
		e := &s.entries[i]
		if !e.IsConfirmed || e.IsDeleted {
			continue
		}
		if e.SavedWordCount != nil {
			total += *e.SavedWordCount
		} else {
			total += CountWords(e.Content)
		}
	}
	return total
}

func (s *Store) filtered(deleted bool) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.IsDeleted == deleted {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
}

func (s *Store) findLocked(id string) *Entry {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return &s.entries[i]
		}
	}
	return nil
}
