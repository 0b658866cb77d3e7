package userdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/notify"
)

func TestInk_ConsumeRefusesOverdraft(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddInk(30)

	ok := s.ConsumeInk(50)

	assert.False(t, ok)
	assert.Equal(t, 30, s.Ink())
}

func TestInk_ConsumeExactBalance(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddInk(30)

	assert.True(t, s.ConsumeInk(30))
	assert.Equal(t, 0, s.Ink())
}

func TestInk_AddNegativeClampsAtZero(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddInk(5)
	s.AddInk(-100)

	assert.Equal(t, 0, s.Ink())
}

func TestWordCount_FloorsAtZero(t *testing.T) {
	s, _ := newTestStore(t)
	s.UpdateWordCount(10)
	s.UpdateWordCount(-25)

	assert.Equal(t, 0, s.TotalWords())
}

func TestWordCount_ZeroDeltaIsNoop(t *testing.T) {
	s, blobs := newTestStore(t)
	before, err := blobs.Load(SaveKey)
	require.NoError(t, err)

	s.UpdateWordCount(0)

	after, err := blobs.Load(SaveKey)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestFragments_SecondAddIsRejected(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.AddFragment("frag_ithaca_01"))
	assert.False(t, s.AddFragment("frag_ithaca_01"))
	assert.Equal(t, []string{"frag_ithaca_01"}, s.Fragments())
}

func TestInventory_IsMultiset(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddItem("item_plant_01")
	s.AddItem("item_plant_01")

	assert.Equal(t, 2, s.CountItem("item_plant_01"))
	assert.True(t, s.HasItem("item_plant_01"))
	assert.False(t, s.HasItem("item_plant_99"))
}

func TestFurniture_PlaceAssignsFreshUIDs(t *testing.T) {
	s, _ := newTestStore(t)

	a := s.PlaceFurniture("item_desk_default", 50, 65, 1)
	b := s.PlaceFurniture("item_desk_default", 30, 70, -1)

	assert.NotEqual(t, a.UID, b.UID)
	assert.Greater(t, b.UID, a.UID)
	assert.Len(t, s.Layout(), 2)
}

func TestFurniture_DirectionNormalized(t *testing.T) {
	s, _ := newTestStore(t)

	p := s.PlaceFurniture("item_chair_default", 40, 60, 0)
	assert.Equal(t, 1, p.Direction)

	p = s.PlaceFurniture("item_chair_default", 40, 60, -3)
	assert.Equal(t, -1, p.Direction)
}

func TestFurniture_UpdateMovesOnlyTarget(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.PlaceFurniture("item_desk_default", 50, 65, 1)
	b := s.PlaceFurniture("item_rug_default", 30, 70, 1)

	ok := s.UpdateFurniture(a.UID, 10, 20, -1)
	require.True(t, ok)

	layout := s.Layout()
	require.Len(t, layout, 2)
	for _, it := range layout {
		switch it.UID {
		case a.UID:
			assert.Equal(t, 10.0, it.X)
			assert.Equal(t, 20.0, it.Y)
			assert.Equal(t, -1, it.Direction)
		case b.UID:
			assert.Equal(t, 30.0, it.X)
			assert.Equal(t, 70.0, it.Y)
		}
	}
}

func TestFurniture_UpdateUnknownUID(t *testing.T) {
	s, _ := newTestStore(t)
	assert.False(t, s.UpdateFurniture(12345, 0, 0, 1))
}

func TestFurniture_RemoveIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.PlaceFurniture("item_desk_default", 50, 65, 1)

	s.RemoveFurniture(p.UID)
	s.RemoveFurniture(p.UID)

	assert.Empty(t, s.Layout())
}

func TestFurniture_UIDNotReusedAfterRemove(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.PlaceFurniture("item_desk_default", 50, 65, 1)
	s.RemoveFurniture(a.UID)

	b := s.PlaceFurniture("item_desk_default", 50, 65, 1)
	assert.Greater(t, b.UID, a.UID)
}

func TestNotebooks_InboxCannotBeDeleted(t *testing.T) {
	s, _ := newTestStore(t)

	assert.False(t, s.DeleteNotebook(InboxNotebookID))

	nb, ok := s.Notebook(InboxNotebookID)
	require.True(t, ok)
	assert.True(t, nb.IsDefault)
}

func TestNotebooks_CreateRenameDelete(t *testing.T) {
	s, _ := newTestStore(t)

	nb := s.CreateNotebook("Travel")
	assert.NotEmpty(t, nb.ID)
	assert.NotEqual(t, InboxNotebookID, nb.ID)
	assert.False(t, nb.IsDefault)

	require.True(t, s.RenameNotebook(nb.ID, "Voyages"))
	got, ok := s.Notebook(nb.ID)
	require.True(t, ok)
	assert.Equal(t, "Voyages", got.Name)

	require.True(t, s.DeleteNotebook(nb.ID))
	_, ok = s.Notebook(nb.ID)
	assert.False(t, ok)
}

func TestNotebooks_CreateDefaultsName(t *testing.T) {
	s, _ := newTestStore(t)
	nb := s.CreateNotebook("   ")
	assert.Equal(t, "Untitled Notebook", nb.Name)
}

func TestDay_SetDayIsMonotonic(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.SetDay(5))
	assert.False(t, s.SetDay(5))
	assert.False(t, s.SetDay(3))
	assert.Equal(t, 5, s.Day())

	s.NextDay()
	assert.Equal(t, 6, s.Day())
}

func TestStartDate_StampsOnce(t *testing.T) {
	s, _ := newTestStore(t)

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).UnixMilli()
	assert.True(t, s.StampStartDate(first))
	assert.False(t, s.StampStartDate(first+1000))
	assert.Equal(t, first, s.StartDate())
}

func TestAchievements_UnlockOnceAndNotify(t *testing.T) {
	s, _ := newTestStore(t)
	hub := notify.NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()
	s.SetNotifier(hub)

	assert.True(t, s.UnlockAchievement(AchFirstDecoration))
	assert.False(t, s.UnlockAchievement(AchFirstDecoration))
	assert.True(t, s.HasAchievement(AchFirstDecoration))

	select {
	case e := <-events:
		assert.Equal(t, notify.EventAchievementUnlocked, e.Type)
	default:
		t.Fatal("expected an achievement event")
	}
	select {
	case <-events:
		t.Fatal("second unlock must not publish")
	default:
	}
}

func TestScripts_UnlockOnce(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.UnlockScript("script_elvish"))
	assert.False(t, s.UnlockScript("script_elvish"))
	assert.Equal(t, []string{"script_elvish"}, s.UnlockedScripts())
}

func TestLatches_AreOneWay(t *testing.T) {
	s, _ := newTestStore(t)

	assert.False(t, s.IntroWatched())
	s.MarkIntroWatched()
	assert.True(t, s.IntroWatched())

	assert.False(t, s.HasFoundMysteryBook())
	s.MarkMysteryBookFound()
	assert.True(t, s.HasFoundMysteryBook())

	assert.False(t, s.HasReceivedEasterEggBook())
	s.MarkEasterEggBookReceived()
	assert.True(t, s.HasReceivedEasterEggBook())
}

func TestMail_ReadAndReplies(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.MarkMailRead(1))
	assert.False(t, s.MarkMailRead(1))
	assert.True(t, s.HasReadMail(1))
	assert.Equal(t, 1, s.ReadMailCount())

	s.SaveMailReply(1, "dear captain")
	got, ok := s.MailReply(1)
	require.True(t, ok)
	assert.Equal(t, "dear captain", got)

	all := s.MailReplies()
	assert.Equal(t, map[int]string{1: "dear captain"}, all)
}

func TestDraft_RoundTrips(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetDraft("unsent thoughts")
	assert.Equal(t, "unsent thoughts", s.Draft())
}

func TestReset_ReturnsToFreshState(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddInk(100)
	s.SetDay(9)
	s.PlaceFurniture("item_desk_default", 50, 65, 1)

	s.Reset()

	assert.Equal(t, 0, s.Ink())
	assert.Equal(t, 1, s.Day())
	assert.Empty(t, s.Layout())
	nbs := s.Notebooks()
	require.Len(t, nbs, 1)
	assert.Equal(t, InboxNotebookID, nbs[0].ID)
}

func TestSnapshot_IsIsolatedCopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddItem("item_plant_01")

	snap := s.Snapshot()
	snap.Inventory = append(snap.Inventory, "item_mutation")

	assert.NotContains(t, s.Inventory(), "item_mutation")
}
