package userdata

// PlaceFurniture creates a placed item with a fresh uid and appends it to
// the room layout. Availability bookkeeping (owned vs placed counts) is a
// derived, UI-side computation, not checked here.
func (s *Store) PlaceFurniture(itemID string, x, y float64, direction int) PlacedItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if direction != -1 {
		direction = 1
	}
	item := PlacedItem{
		UID:       s.state.NextUID,
		ItemID:    itemID,
		X:         x,
		Y:         y,
		Direction: direction,
	}
	s.state.NextUID++
	s.state.Layout = append(s.state.Layout, item)
	s.saveLocked()
	return item
}

// UpdateFurniture moves an existing placed item. Unknown uids are a safe
// no-op.
func (s *Store) UpdateFurniture(uid int64, x, y float64, direction int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if direction != -1 {
		direction = 1
	}
	for i := range s.state.Layout {
		if s.state.Layout[i].UID == uid {
			s.state.Layout[i].X = x
			s.state.Layout[i].Y = y
			s.state.Layout[i].Direction = direction
			s.saveLocked()
			return true
		}
	}
	return false
}

// RemoveFurniture takes an item out of the room (back to the bag, from the
// player's point of view). Removal is idempotent.
func (s *Store) RemoveFurniture(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Layout[:0]
	removed := false
	for _, it := range s.state.Layout {
		if it.UID == uid {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	s.state.Layout = kept
	if removed {
		s.saveLocked()
	}
}

func (s *Store) Layout() []PlacedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]PlacedItem(nil), s.state.Layout...)
}

// PlacedCount returns how many copies of an item are currently in the room.
func (s *Store) PlacedCount(itemID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.state.Layout {
		if it.ItemID == itemID {
			n++
		}
	}
	return n
}
