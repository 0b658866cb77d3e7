// Package userdata owns the canonical mutable game state and its
// load/repair/persist lifecycle. Every gameplay system reads and mutates
// through Store; each mutation is written through to the blob store
// immediately, so the save file always reflects the last completed action.
package userdata

import (
	"encoding/json"
	"errors"
	"fmt"
)

// InboxNotebookID is the protected default notebook. It always exists and
// can never be deleted.
const InboxNotebookID = "nb_inbox"

// ErrCorruptSave marks a persisted blob that cannot be interpreted as a
// state object. It is recovered internally by falling back to defaults.
var ErrCorruptSave = errors.New("corrupt save data")

// PlacedItem is a piece of furniture placed in the room. Coordinates are
// percentages of the room plane; Direction is 1 or -1 (mirrored).
type PlacedItem struct {
	UID       int64   `json:"uid"`
	ItemID    string  `json:"itemId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction int     `json:"direction"`
}

// Notebook groups journal entries. Exactly one notebook is the default
// inbox.
type Notebook struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt int64  `json:"createdAt"`
}

// State is the full persisted game state. Timestamps are unix milliseconds;
// StartDate 0 means the save has not been stamped yet.
//
// HasWatchedIntro is a pointer because the repair pass must distinguish
// "absent in an old save" from "explicitly false"; after normalization it is
// always non-nil.
type State struct {
	StartDate                int64             `json:"startDate"`
	Day                      int               `json:"day"`
	Ink                      int               `json:"ink"`
	Draft                    string            `json:"draft"`
	TotalWords               int               `json:"totalWords"`
	Inventory                []string          `json:"inventory"`
	Layout                   []PlacedItem      `json:"layout"`
	Fragments                []string          `json:"fragments"`
	Notebooks                []Notebook        `json:"notebooks"`
	ReadMails                []int             `json:"readMails"`
	Achievements             []string          `json:"achievements"`
	UnlockedScripts          []string          `json:"unlockedScripts"`
	MailReplies              map[string]string `json:"mailReplies"`
	HasWatchedIntro          *bool             `json:"hasWatchedIntro,omitempty"`
	HasFoundMysteryBook      bool              `json:"hasFoundMysteryBook"`
	HasReceivedEasterEggBook bool              `json:"hasReceivedEasterEggBook"`
	NextUID                  int64             `json:"nextUid"`
}

func defaultState() *State {
	// Layout is deliberately nil, not empty: "never decorated" is what
	// triggers the starter pack grant during normalization.
	return &State{
		Day: 1,
	}
}

// decodeState interprets a persisted blob field by field. Only a blob that
// is not a JSON object at all is an error; individual fields of the wrong
// shape are dropped and re-zeroed by the repair pass.
func decodeState(raw []byte) (*State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	st := &State{}
	get := func(key string, out any) {
		if v, ok := fields[key]; ok {
			_ = json.Unmarshal(v, out)
		}
	}

	get("startDate", &st.StartDate)
	get("day", &st.Day)
	get("ink", &st.Ink)
	get("draft", &st.Draft)
	get("totalWords", &st.TotalWords)
	get("inventory", &st.Inventory)
	get("layout", &st.Layout)
	get("fragments", &st.Fragments)
	get("notebooks", &st.Notebooks)
	get("readMails", &st.ReadMails)
	get("achievements", &st.Achievements)
	get("unlockedScripts", &st.UnlockedScripts)
	get("mailReplies", &st.MailReplies)
	get("hasWatchedIntro", &st.HasWatchedIntro)
	get("hasFoundMysteryBook", &st.HasFoundMysteryBook)
	get("hasReceivedEasterEggBook", &st.HasReceivedEasterEggBook)
	get("nextUid", &st.NextUID)

	return st, nil
}
