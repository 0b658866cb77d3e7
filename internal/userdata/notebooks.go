package userdata

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateNotebook adds a user notebook. Ids are never reused, so they are
// random rather than derived from the name.
func (s *Store) CreateNotebook(name string) Notebook {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled Notebook"
	}
	nb := Notebook{
		ID:        "nb_" + uuid.NewString(),
		Name:      name,
		Icon:      s.cfg.Notebooks.DefaultIcon,
		IsDefault: false,
		CreatedAt: time.Now().UnixMilli(),
	}
	s.state.Notebooks = append(s.state.Notebooks, nb)
	s.saveLocked()
	return nb
}

func (s *Store) RenameNotebook(id, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notebooks {
		if s.state.Notebooks[i].ID == id {
			s.state.Notebooks[i].Name = name
			s.saveLocked()
			return true
		}
	}
	return false
}

// DeleteNotebook removes a notebook. The default inbox is protected: the
// call refuses without mutating.
func (s *Store) DeleteNotebook(id string) bool {
	if id == InboxNotebookID {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notebooks {
		if s.state.Notebooks[i].ID == id {
			s.state.Notebooks = append(s.state.Notebooks[:i], s.state.Notebooks[i+1:]...)
			s.saveLocked()
			return true
		}
	}
	return false
}

func (s *Store) Notebook(id string) (Notebook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, nb := range s.state.Notebooks {
		if nb.ID == id {
			return nb, true
		}
	}
	return Notebook{}, false
}

func (s *Store) Notebooks() []Notebook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notebook(nil), s.state.Notebooks...)
}
