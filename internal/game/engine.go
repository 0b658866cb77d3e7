// Package game orchestrates the stores: day progression, the drag-commit
// protocol for room decoration, and the reward cascade around confirming
// an entry.
package game

import (
	"log"
	"time"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/binder"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/fragment"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/journal"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/library"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/notify"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/placement"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

// Engine wires the stores together. Handlers call the engine for anything
// that spans more than one store; single-store reads go straight through.
type Engine struct {
	Blobs     blob.Store
	User      *userdata.Store
	Journal   *journal.Store
	Books     *library.Store
	Binder    *binder.Store
	Fragments *fragment.Service
	Policy    placement.Policy
	Clock     Clock
	Logger    *log.Logger

	notifier notify.Publisher
}

// PolicyFromConfig maps the room tuning into the placement rule set.
func PolicyFromConfig(cfg *config.Config) placement.Policy {
	return placement.Policy{
		GridSize: cfg.Room.GridSize,
		Wall: placement.WallZone{
			MinX:    cfg.Room.Wall.MinX,
			MaxX:    cfg.Room.Wall.MaxX,
			MaxY:    cfg.Room.Wall.MaxY,
			CenterX: cfg.Room.Wall.CenterX,
			Slope:   cfg.Room.Wall.CeilingSlope,
		},
		Floor: placement.FloorZone{
			CenterX:   cfg.Room.Floor.CenterX,
			CenterY:   cfg.Room.Floor.CenterY,
			RadiusX:   cfg.Room.Floor.RadiusX,
			RadiusY:   cfg.Room.Floor.RadiusY,
			Threshold: cfg.Room.Floor.Threshold,
		},
	}
}

func (e *Engine) SetNotifier(p notify.Publisher) {
	e.notifier = p
}

// SyncDay reconciles the in-game day with the wall clock. The first launch
// stamps the start date and stays on day 1; afterwards the day is the
// calendar distance from the start date plus one. The day never moves
// backwards, so a machine clock jumping into the past changes nothing.
func (e *Engine) SyncDay() (int, bool) {
	now := e.Clock.Now()
	if e.User.StampStartDate(now.UnixMilli()) {
		e.Logger.Printf("game: start date stamped, day 1 begins")
		return e.User.Day(), false
	}
	start := time.UnixMilli(e.User.StartDate()).In(now.Location())
	day := calendarDays(start, now) + 1
	if !e.User.SetDay(day) {
		return e.User.Day(), false
	}
	e.Logger.Printf("game: day advanced to %d", day)
	e.publish(notify.Event{Type: notify.EventDayChanged, Payload: day})
	return day, true
}

// calendarDays counts midnight boundaries between two instants.
func calendarDays(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(to.Sub(from) / (24 * time.Hour))
}

// BackfillWordCount rebuilds a zeroed word total from confirmed entries.
// Older saves lost the running total; the per-entry snapshots survive, so
// the sum can be restored. Returns the restored total, 0 when nothing was
// done.
func (e *Engine) BackfillWordCount() int {
	if e.User.TotalWords() != 0 {
		return 0
	}
	total := e.Journal.ConfirmedWordTotal()
	if total == 0 {
		return 0
	}
	e.User.UpdateWordCount(total)
	e.Logger.Printf("game: word total backfilled to %d", total)
	return total
}

// ConfirmEntry confirms a journal entry and settles everything downstream:
// ink reward, word milestones, fragment synthesis.
func (e *Engine) ConfirmEntry(entryID string) (int, []string, error) {
	ink, err := e.Journal.Confirm(entryID)
	if err != nil {
		return 0, nil, err
	}
	unlocked := e.Fragments.CheckMilestones(e.User.TotalWords())
	return ink, unlocked, nil
}

// DragRequest is one finished drag gesture from the room view. UID zero
// means the item came from the inventory tray rather than the room.
type DragRequest struct {
	UID       int64           `json:"uid,omitempty"`
	ItemID    string          `json:"itemId"`
	Kind      placement.Kind  `json:"kind"`
	PointerX  float64         `json:"pointerX"`
	PointerY  float64         `json:"pointerY"`
	Room      placement.Rect  `json:"room"`
	Item      placement.Size  `json:"item"`
	Recycle   placement.Rect  `json:"recycle"`
	Direction int             `json:"direction"`
}

// DragResult reports how the gesture settled.
type DragResult struct {
	Zone    placement.Zone       `json:"zone"`
	Snapped placement.Point      `json:"snapped"`
	Placed  *userdata.PlacedItem `json:"placed,omitempty"`
	Removed bool                 `json:"removed"`
}

// CommitDrag settles a drag gesture. Dropping on the recycle tray removes
// a room item (or cancels a tray drag); a valid drop places or moves; an
// invalid drop changes nothing and the client springs the item back.
func (e *Engine) CommitDrag(req DragRequest) DragResult {
	snapped := e.Policy.SnapToGrid(req.PointerX, req.PointerY, req.Room, req.Item)
	zone := e.Policy.ClassifyZone(req.PointerX, req.PointerY, snapped, req.Kind, req.Recycle)
	res := DragResult{Zone: zone, Snapped: snapped}

	switch zone {
	case placement.ZoneRecycle:
		if req.UID != 0 {
			e.User.RemoveFurniture(req.UID)
			res.Removed = true
		}
	case placement.ZoneValid:
		if req.UID == 0 {
			placed := e.User.PlaceFurniture(req.ItemID, snapped.X, snapped.Y, req.Direction)
			e.User.UnlockAchievement(userdata.AchFirstDecoration)
			res.Placed = &placed
		} else if e.User.UpdateFurniture(req.UID, snapped.X, snapped.Y, req.Direction) {
			dir := req.Direction
			if dir != -1 {
				dir = 1
			}
			placed := userdata.PlacedItem{UID: req.UID, ItemID: req.ItemID, X: snapped.X, Y: snapped.Y, Direction: dir}
			res.Placed = &placed
		}
	}
	return res
}

// ResetAll wipes every save file and reloads the stores, returning the
// game to a first-launch state.
func (e *Engine) ResetAll() error {
	for _, key := range []string{journal.SaveKey, library.SaveKey, binder.SaveKey} {
		if err := e.Blobs.Delete(key); err != nil {
			return err
		}
	}
	e.User.Reset()
	if err := e.Journal.Load(); err != nil {
		return err
	}
	if err := e.Books.Load(); err != nil {
		return err
	}
	if err := e.Binder.Load(); err != nil {
		return err
	}
	e.Logger.Printf("game: all saves reset")
	return nil
}

func (e *Engine) publish(ev notify.Event) {
	if e.notifier != nil {
		e.notifier.Publish(ev)
	}
}
