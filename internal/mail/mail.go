// Package mail delivers the landlord's daily letters. There is one letter
// per calendar day of the story; replies are kept and, once every letter
// has an answer, bound into a hidden book.
package mail

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/library"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/notify"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

// EasterEggBookID is the hidden book compiled from the player's replies.
const EasterEggBookID = "book_easter_egg_21"

// ArchiveItem is one row of the mailbox listing. Days past the letter
// schedule still render as empty slots.
type ArchiveItem struct {
	Day       int    `json:"day"`
	Title     string `json:"title,omitempty"`
	Sender    string `json:"sender,omitempty"`
	HasLetter bool   `json:"hasLetter"`
	Read      bool   `json:"read"`
	Replied   bool   `json:"replied"`
}

// Service resolves letters against the player's progress.
type Service struct {
	cfg      *config.Config
	user     *userdata.Store
	books    *library.Store
	logger   *log.Logger
	notifier notify.Publisher
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

// Letter returns the letter scheduled for a day.
func (s *Service) Letter(day int) (config.Letter, bool) {
	for _, l := range s.cfg.Mail.Letters {
		if l.Day == day {
			return l, true
		}
	}
	return config.Letter{}, false
}

// Prompt returns the reflection question paired with a day's letter.
func (s *Service) Prompt(day int) (config.Prompt, bool) {
	for _, p := range s.cfg.Mail.Prompts {
		if p.Day == day {
			return p, true
		}
	}
	return config.Prompt{}, false
}

// TodayLetter returns the letter for the player's current day.
func (s *Service) TodayLetter() (config.Letter, bool) {
	return s.Letter(s.user.Day())
}

// Archive lists every day up to the current one, newest first. Days beyond
// the letter schedule appear as empty slots so the mailbox still fills,
// but it stops growing once the campaign's total days have elapsed.
func (s *Service) Archive() []ArchiveItem {
	day := s.user.Day()
	if limit := s.cfg.Mail.TotalDays; limit > 0 && day > limit {
		day = limit
	}
	items := make([]ArchiveItem, 0, day)
	for d := day; d >= 1; d-- {
		item := ArchiveItem{Day: d}
		if l, ok := s.Letter(d); ok {
			item.HasLetter = true
			item.Title = l.Title
			item.Sender = l.Sender
		}
		item.Read = s.user.HasReadMail(d)
		_, item.Replied = s.user.MailReply(d)
		items = append(items, item)
	}
	return items
}

// MarkRead records that a day's letter was opened. Reading the tenth
// letter unlocks the pen pal achievement.
func (s *Service) MarkRead(day int) bool {
	if _, ok := s.Letter(day); !ok {
		return false
	}
	newly := s.user.MarkMailRead(day)
	if s.user.ReadMailCount() >= 10 {
		s.user.UnlockAchievement(userdata.AchTenLetters)
	}
	return newly
}

// SaveReply stores the player's answer to a day's letter. Once every
// scheduled letter has a reply, the replies are bound into a hidden book.
func (s *Service) SaveReply(day int, content string) bool {
	if _, ok := s.Letter(day); !ok {
		return false
	}
	s.user.SaveMailReply(day, content)
	s.checkEasterEgg()
	return true
}

// checkEasterEgg compiles the reply book exactly once.
func (s *Service) checkEasterEgg() {
	if s.user.HasReceivedEasterEggBook() || len(s.cfg.Mail.Letters) == 0 {
		return
	}
	for _, l := range s.cfg.Mail.Letters {
		if _, ok := s.user.MailReply(l.Day); !ok {
			return
		}
	}
	days := make([]int, 0, len(s.cfg.Mail.Letters))
	for _, l := range s.cfg.Mail.Letters {
		days = append(days, l.Day)
	}
	sort.Ints(days)
	var b strings.Builder
	for _, d := range days {
		reply, _ := s.user.MailReply(d)
		fmt.Fprintf(&b, "## Day %d\n\n%s\n\n", d, reply)
	}
	s.books.Add(library.Book{
		ID:         EasterEggBookID,
		Title:      "21",
		Content:    strings.TrimSpace(b.String()),
		Date:       s.now().UnixMilli(),
		IsRare:     true,
		IsReadOnly: true,
	})
	s.user.MarkEasterEggBookReceived()
	if s.notifier != nil {
		s.notifier.Publish(notify.Event{Type: notify.EventBookSynthesized, Payload: EasterEggBookID})
	}
	s.logger.Printf("mail: every letter answered, reply book compiled")
}
