package userdata

import (
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
)

// normalize repairs a loaded (or freshly defaulted) state into canonical
// shape. It is run on every load and must be a no-op the second time:
// the returned flag reports whether anything changed, which is also the
// signal to persist once at the end of the pass.
func normalize(st *State, cfg *config.Config, nowMillis int64) bool {
	changed := false

	if st.Day < 1 {
		st.Day = 1
		changed = true
	}
	if st.Ink < 0 {
		st.Ink = 0
		changed = true
	}
	if st.TotalWords < 0 {
		st.TotalWords = 0
		changed = true
	}

	if st.Inventory == nil {
		st.Inventory = []string{}
		changed = true
	}

	// Old saves predate the intro flag. Any sign of progress means the
	// intro was necessarily seen.
	if st.HasWatchedIntro == nil {
		watched := st.Day > 1 || st.Ink > 0 || st.TotalWords > 0
		st.HasWatchedIntro = &watched
		changed = true
	}

	// A nil layout means the room was never decorated (as opposed to
	// decorated and then emptied): grant the starter furniture.
	if st.Layout == nil {
		st.Layout = []PlacedItem{}
		for _, id := range cfg.StarterPack {
			if !containsString(st.Inventory, id) {
				st.Inventory = append(st.Inventory, id)
			}
		}
		changed = true
	}

	if st.Fragments == nil {
		st.Fragments = []string{}
		changed = true
	}
	if st.ReadMails == nil {
		st.ReadMails = []int{}
		changed = true
	}
	if st.Achievements == nil {
		st.Achievements = []string{}
		changed = true
	}
	if st.UnlockedScripts == nil {
		st.UnlockedScripts = []string{}
		changed = true
	}
	if st.MailReplies == nil {
		st.MailReplies = map[string]string{}
		changed = true
	}

	if ensureInbox(st, cfg, nowMillis) {
		changed = true
	}

	// Old saves carried timestamp-derived uids; seed the counter past the
	// highest one so uids are never reused.
	if st.NextUID == 0 {
		var max int64
		for _, it := range st.Layout {
			if it.UID > max {
				max = it.UID
			}
		}
		st.NextUID = max + 1
		changed = true
	}

	return changed
}

// ensureInbox guarantees the invariant: exactly one notebook with the inbox
// id, and it is the default.
func ensureInbox(st *State, cfg *config.Config, nowMillis int64) bool {
	changed := false

	if st.Notebooks == nil {
		st.Notebooks = []Notebook{}
		changed = true
	}

	inboxAt := -1
	for i := range st.Notebooks {
		if st.Notebooks[i].ID == InboxNotebookID {
			inboxAt = i
			break
		}
	}

	if inboxAt == -1 {
		st.Notebooks = append([]Notebook{{
			ID:        InboxNotebookID,
			Name:      cfg.Notebooks.InboxName,
			Icon:      cfg.Notebooks.DefaultIcon,
			IsDefault: true,
			CreatedAt: nowMillis,
		}}, st.Notebooks...)
		inboxAt = 0
		changed = true
	}

	for i := range st.Notebooks {
		isDefault := i == inboxAt
		if st.Notebooks[i].IsDefault != isDefault {
			st.Notebooks[i].IsDefault = isDefault
			changed = true
		}
	}

	return changed
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
