package userdata

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/notify"
)

// SaveKey is the logical blob key for the game state document.
const SaveKey = "user_data.json"

// Store owns the single mutable State. Gameplay runs effectively
// single-threaded, but handlers are served concurrently, so access is
// guarded anyway. Every mutator follows validate -> mutate -> persist;
// failures are boolean refusals, never panics.
type Store struct {
	mu       sync.RWMutex
	blobs    blob.Store
	cfg      *config.Config
	logger   *log.Logger
	notifier notify.Publisher

	state   *State
	newUser bool
}

func NewStore(blobs blob.Store, cfg *config.Config, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		blobs:  blobs,
		cfg:    cfg,
		logger: logger,
		state:  defaultState(),
	}
}

// SetNotifier attaches the event hub. Optional; without it unlock events
// are simply not broadcast.
func (s *Store) SetNotifier(p notify.Publisher) {
	s.mu.Lock()
	s.notifier = p
	s.mu.Unlock()
}

// Load reads the persisted state, falling back to defaults when the blob is
// missing (new player) or unreadable (corrupt saves are logged, never fatal),
// then runs the repair pass and persists once if anything changed.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = defaultState()
	s.newUser = false

	raw, err := s.blobs.Load(SaveKey)
	if err != nil {
		return err
	}
	if raw == nil {
		s.logger.Printf("userdata: no save found, starting fresh")
		s.newUser = true
	} else {
		st, err := decodeState(raw)
		if err != nil {
			s.logger.Printf("userdata: %v, falling back to defaults", err)
		} else {
			s.state = st
		}
	}

	if normalize(s.state, s.cfg, time.Now().UnixMilli()) {
		s.saveLocked()
	}
	return nil
}

// IsNewUser reports whether the last Load found no save at all.
func (s *Store) IsNewUser() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newUser
}

// Reset reinitializes defaults, clearing layout, inventory, and all
// progress, and persists the fresh state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = defaultState()
	normalize(s.state, s.cfg, time.Now().UnixMilli())
	s.saveLocked()
}

// saveLocked writes through to the blob store. Persistence is
// fire-and-forget from the mutators' perspective: a failed write is logged
// and the in-memory state remains authoritative.
func (s *Store) saveLocked() {
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		s.logger.Printf("userdata: marshal state: %v", err)
		return
	}
	if err := s.blobs.Save(SaveKey, b); err != nil {
		s.logger.Printf("userdata: save state: %v", err)
	}
}

func (s *Store) publish(e notify.Event) {
	if s.notifier != nil {
		s.notifier.Publish(e)
	}
}

// Snapshot returns a deep copy for read-only consumers.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := *s.state
	st.Inventory = append([]string(nil), s.state.Inventory...)
	st.Layout = append([]PlacedItem(nil), s.state.Layout...)
	st.Fragments = append([]string(nil), s.state.Fragments...)
	st.Notebooks = append([]Notebook(nil), s.state.Notebooks...)
	st.ReadMails = append([]int(nil), s.state.ReadMails...)
	st.Achievements = append([]string(nil), s.state.Achievements...)
	st.UnlockedScripts = append([]string(nil), s.state.UnlockedScripts...)
	st.MailReplies = make(map[string]string, len(s.state.MailReplies))
	for k, v := range s.state.MailReplies {
		st.MailReplies[k] = v
	}
	if s.state.HasWatchedIntro != nil {
		v := *s.state.HasWatchedIntro
		st.HasWatchedIntro = &v
	}
	return st
}

// ---- ink & words ----

// AddInk credits ink. Negative amounts occur only through internal refund
// flows; the running total is still floored at zero.
func (s *Store) AddInk(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Ink += amount
	if s.state.Ink < 0 {
		s.state.Ink = 0
	}
	s.saveLocked()
}

// ConsumeInk spends ink, refusing (no mutation, no save) when the balance
// is short.
func (s *Store) ConsumeInk(amount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Ink < amount {
		return false
	}
	s.state.Ink -= amount
	s.saveLocked()
	return true
}

func (s *Store) Ink() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Ink
}

// UpdateWordCount applies a word-count delta, clamped so the career total
// never goes negative. A zero delta is a pure no-op (no save).
func (s *Store) UpdateWordCount(delta int) {
	if delta == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TotalWords += delta
	if s.state.TotalWords < 0 {
		s.state.TotalWords = 0
	}
	s.saveLocked()
}

func (s *Store) TotalWords() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TotalWords
}

// ---- day & start date ----

func (s *Store) Day() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Day
}

func (s *Store) NextDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Day++
	s.saveLocked()
}

// SetDay moves the day counter forward. The counter is monotonic: a value
// at or below the current day (clock rolled back) is refused.
func (s *Store) SetDay(day int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if day <= s.state.Day {
		return false
	}
	s.state.Day = day
	s.saveLocked()
	return true
}

func (s *Store) StartDate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.StartDate
}

// StampStartDate records the save's creation time once; later calls are
// no-ops.
func (s *Store) StampStartDate(millis int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.StartDate != 0 {
		return false
	}
	s.state.StartDate = millis
	s.saveLocked()
	return true
}

// ---- draft ----

func (s *Store) Draft() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Draft
}

func (s *Store) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Draft = text
	s.saveLocked()
}

// ---- inventory ----

// AddItem appends to the inventory multiset. Duplicates stack; callers that
// want uniqueness (the shop) check HasItem first.
func (s *Store) AddItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Inventory = append(s.state.Inventory, itemID)
	s.saveLocked()
}

func (s *Store) HasItem(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsString(s.state.Inventory, itemID)
}

// CountItem returns how many copies of an item are owned (placed or not).
func (s *Store) CountItem(itemID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, id := range s.state.Inventory {
		if id == itemID {
			n++
		}
	}
	return n
}

func (s *Store) Inventory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.state.Inventory...)
}

// ---- fragments ----

// AddFragment inserts a fragment id. The return value is part of the
// contract: callers use "newly added" to decide whether to show the
// discovery popup.
func (s *Store) AddFragment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if containsString(s.state.Fragments, id) {
		return false
	}
	s.state.Fragments = append(s.state.Fragments, id)
	s.saveLocked()
	return true
}

func (s *Store) HasFragment(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsString(s.state.Fragments, id)
}

func (s *Store) Fragments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.state.Fragments...)
}

// ---- scripts ----

// UnlockScript records a story script as seen; returns whether it was new.
func (s *Store) UnlockScript(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if containsString(s.state.UnlockedScripts, id) {
		return false
	}
	s.state.UnlockedScripts = append(s.state.UnlockedScripts, id)
	s.saveLocked()
	return true
}

func (s *Store) UnlockedScripts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.state.UnlockedScripts...)
}

// ---- one-way flags ----

func (s *Store) IntroWatched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasWatchedIntro != nil && *s.state.HasWatchedIntro
}

func (s *Store) MarkIntroWatched() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.HasWatchedIntro != nil && *s.state.HasWatchedIntro {
		return
	}
	watched := true
	s.state.HasWatchedIntro = &watched
	s.saveLocked()
}

func (s *Store) HasFoundMysteryBook() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasFoundMysteryBook
}

func (s *Store) MarkMysteryBookFound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.HasFoundMysteryBook {
		return
	}
	s.state.HasFoundMysteryBook = true
	s.saveLocked()
}

func (s *Store) HasReceivedEasterEggBook() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasReceivedEasterEggBook
}

func (s *Store) MarkEasterEggBookReceived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.HasReceivedEasterEggBook {
		return
	}
	s.state.HasReceivedEasterEggBook = true
	s.saveLocked()
}
