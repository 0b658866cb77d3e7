package userdata

import "github.com/666feiyu666/Ithaca-Journal-win/internal/notify"

// Achievement describes an unlockable badge.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

const (
	AchFirstDecoration = "ach_home"
	AchFirstDiary      = "ach_diary"
	AchFirstBook       = "ach_author"
	AchTenLetters      = "ach_pineapple"
)

// Achievements is the badge catalog.
var Achievements = map[string]Achievement{
	AchFirstDecoration: {Title: "Settling In", Description: "Decorated the room for the first time", Icon: "🏠"},
	AchFirstDiary:      {Title: "Dear Diary", Description: "Wrote down a thought for the first time", Icon: "✍️"},
	AchFirstBook:       {Title: "Author", Description: "Published a book for the first time", Icon: "📘"},
	AchTenLetters:      {Title: "Pen Pal", Description: "Read ten letters from the landlord", Icon: "🍍"},
}

// UnlockAchievement records an achievement; returns whether it was newly
// unlocked. A first unlock is broadcast to the UI shell; the broadcast has
// no delivery guarantee, which is fine because the unlock itself is durable.
func (s *Store) UnlockAchievement(id string) bool {
	s.mu.Lock()
	if containsString(s.state.Achievements, id) {
		s.mu.Unlock()
		return false
	}
	s.state.Achievements = append(s.state.Achievements, id)
	s.saveLocked()
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.Publish(notify.Event{Type: notify.EventAchievementUnlocked, Payload: id})
	}
	return true
}

func (s *Store) HasAchievement(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsString(s.state.Achievements, id)
}

func (s *Store) AchievementIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.state.Achievements...)
}
