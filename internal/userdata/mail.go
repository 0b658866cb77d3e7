package userdata

import "strconv"

// HasReadMail reports whether the letter for a given day was opened.
func (s *Store) HasReadMail(day int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsInt(s.state.ReadMails, day)
}

// MarkMailRead records a letter as read; returns whether it was newly read.
func (s *Store) MarkMailRead(day int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if containsInt(s.state.ReadMails, day) {
		return false
	}
	s.state.ReadMails = append(s.state.ReadMails, day)
	s.saveLocked()
	return true
}

func (s *Store) ReadMailCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.ReadMails)
}

// SaveMailReply stores the player's reflection for a day's letter,
// overwriting any previous text.
func (s *Store) SaveMailReply(day int, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MailReplies[strconv.Itoa(day)] = content
	s.saveLocked()
}

func (s *Store) MailReply(day int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reply, ok := s.state.MailReplies[strconv.Itoa(day)]
	return reply, ok
}

// MailReplies returns every recorded reply keyed by day number. Keys that
// are not day numbers (hand-edited saves) are skipped.
func (s *Store) MailReplies() map[int]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]string, len(s.state.MailReplies))
	for k, v := range s.state.MailReplies {
		day, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[day] = v
	}
	return out
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
