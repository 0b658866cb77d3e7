// Package fragment drives the torn-page collection loop: pages unlock at
// word milestones or while exploring, and a complete set synthesizes into
// a mystery book on the shelf.
package fragment

import (
	"log"
	"time"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/library"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/notify"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

// Service ties fragment definitions to the player's collection.
type Service struct {
	cfg      *config.Config
	user     *userdata.Store
	books    *library.Store
	notifier notify.Publisher
	logger   *log.Logger
	now      func() time.Time
}

func NewService(cfg *config.Config, user *userdata.Store, books *library.Store, logger *log.Logger) *Service {
	return &Service{
		cfg:    cfg,
		user:   user,
		books:  books,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) SetNotifier(p notify.Publisher) {
	s.notifier = p
}

// SetNow overrides the clock source.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// Definition looks up a fragment's static data.
func (s *Service) Definition(id string) (config.Fragment, bool) {
	for _, f := range s.cfg.Fragments {
		if f.ID == id {
			return f, true
		}
	}
	return config.Fragment{}, false
}

// Definitions returns every known fragment.
func (s *Service) Definitions() []config.Fragment {
	return append([]config.Fragment(nil), s.cfg.Fragments...)
}

// Owned returns the ids of collected fragments.
func (s *Service) Owned() []string {
	return s.user.Fragments()
}

// Unlock adds a fragment to the collection. Returns whether it was newly
// collected. A new fragment may complete a recipe, so synthesis runs right
// after.
func (s *Service) Unlock(id string) bool {
	if _, ok := s.Definition(id); !ok {
		s.logger.Printf("fragment: unlock of unknown fragment %q ignored", id)
		return false
	}
	if !s.user.AddFragment(id) {
		return false
	}
	s.publish(notify.Event{Type: notify.EventFragmentFound, Payload: id})
	s.CheckSynthesis()
	return true
}

// CheckMilestones unlocks every fragment whose word threshold the running
// total has passed. Returns the ids unlocked by this call.
func (s *Service) CheckMilestones(totalWords int) []string {
	var unlocked []string
	for _, m := range s.cfg.Milestones {
		if totalWords >= m.Threshold && s.Unlock(m.FragmentID) {
			unlocked = append(unlocked, m.FragmentID)
		}
	}
	return unlocked
}

// CheckSynthesis shelves the book of every recipe whose fragments are all
// held. Already-shelved books are skipped, so re-running is harmless.
func (s *Service) CheckSynthesis() []string {
	var made []string
	for _, r := range s.cfg.Synthesis {
		if s.books.Has(r.BookID) {
			continue
		}
		if !s.holdsAll(r.RequiredFragments) {
			continue
		}
		s.books.Add(library.Book{
			ID:         r.BookID,
			Title:      r.Title,
			Content:    r.FullContent,
			Cover:      r.Cover,
			Date:       s.now().UnixMilli(),
			IsMystery:  true,
			IsReadOnly: true,
		})
		s.user.MarkMysteryBookFound()
		s.publish(notify.Event{Type: notify.EventBookSynthesized, Payload: r.BookID})
		made = append(made, r.BookID)
	}
	return made
}

func (s *Service) holdsAll(ids []string) bool {
	for _, id := range ids {
		if !s.user.HasFragment(id) {
			return false
		}
	}
	return true
}

func (s *Service) publish(e notify.Event) {
	if s.notifier != nil {
		s.notifier.Publish(e)
	}
}
