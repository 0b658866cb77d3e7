package mail

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/library"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

func testConfig(letterDays int) *config.Config {
	cfg := &config.Config{}
	for d := 1; d <= letterDays; d++ {
		cfg.Mail.Letters = append(cfg.Mail.Letters, config.Letter{
			Day:     d,
			Title:   fmt.Sprintf("Letter %d", d),
			Sender:  "The Landlord",
			Content: "...",
		})
		cfg.Mail.Prompts = append(cfg.Mail.Prompts, config.Prompt{
			Day:  d,
			Text: "How was your day?",
		})
	}
	cfg.ApplyDefaults()
	return cfg
}

func newTestService(t *testing.T, letterDays int) (*Service, *userdata.Store, *library.Store) {
	t.Helper()
	logger := log.New(os.Stderr, "", 0)
	cfg := testConfig(letterDays)
	blobs := blob.NewMemoryStore()
	user := userdata.NewStore(blobs, cfg, logger)
	require.NoError(t, user.Load())
	books := library.NewStore(blobs, logger)
	require.NoError(t, books.Load())
	return NewService(cfg, user, books, logger), user, books
}

func TestTodayLetter_FollowsCurrentDay(t *testing.T) {
	svc, user, _ := newTestService(t, 5)

	l, ok := svc.TodayLetter()
	require.True(t, ok)
	assert.Equal(t, 1, l.Day)

	user.SetDay(3)
	l, ok = svc.TodayLetter()
	require.True(t, ok)
	assert.Equal(t, 3, l.Day)
}

func TestTodayLetter_PastSchedule(t *testing.T) {
	svc, user, _ := newTestService(t, 5)
	user.SetDay(9)

	_, ok := svc.TodayLetter()
	assert.False(t, ok)
}

func TestArchive_NewestFirstWithPlaceholders(t *testing.T) {
	svc, user, _ := newTestService(t, 2)
	user.SetDay(4)
	svc.MarkRead(1)
	svc.SaveReply(1, "thanks")

	items := svc.Archive()
	require.Len(t, items, 4)

	assert.Equal(t, 4, items[0].Day)
	assert.False(t, items[0].HasLetter, "days past the schedule are empty slots")
	assert.Equal(t, 2, items[2].Day)
	assert.True(t, items[2].HasLetter)

	day1 := items[3]
	assert.True(t, day1.Read)
	assert.True(t, day1.Replied)
}

func TestArchive_CapsAtCampaignTotalDays(t *testing.T) {
	svc, user, _ := newTestService(t, 2)
	svc.cfg.Mail.TotalDays = 5
	user.SetDay(9)

	items := svc.Archive()
	require.Len(t, items, 5)
	assert.Equal(t, 5, items[0].Day)
	assert.Equal(t, 1, items[4].Day)
}

func TestMarkRead_OnceAndUnknownDay(t *testing.T) {
	svc, _, _ := newTestService(t, 3)

	assert.True(t, svc.MarkRead(1))
	assert.False(t, svc.MarkRead(1))
	assert.False(t, svc.MarkRead(99))
}

func TestMarkRead_TenthLetterUnlocksPenPal(t *testing.T) {
	svc, user, _ := newTestService(t, 12)
	user.SetDay(12)

	for d := 1; d <= 9; d++ {
		svc.MarkRead(d)
	}
	assert.False(t, user.HasAchievement(userdata.AchTenLetters))

	svc.MarkRead(10)
	assert.True(t, user.HasAchievement(userdata.AchTenLetters))
}

func TestSaveReply_CompilesEasterEggOnLastReply(t *testing.T) {
	svc, user, books := newTestService(t, 3)

	svc.SaveReply(1, "dear landlord")
	svc.SaveReply(2, "still raining")
	assert.False(t, books.Has(EasterEggBookID))

	svc.SaveReply(3, "found the pineapple")

	book, ok := books.Get(EasterEggBookID)
	require.True(t, ok)
	assert.Equal(t, "21", book.Title)
	assert.True(t, book.IsRare)
	assert.Contains(t, book.Content, "Day 1")
	assert.Contains(t, book.Content, "found the pineapple")
	assert.True(t, user.HasReceivedEasterEggBook())
}

func TestSaveReply_EasterEggCompilesOnce(t *testing.T) {
	svc, _, books := newTestService(t, 1)

	svc.SaveReply(1, "first answer")
	require.True(t, books.Has(EasterEggBookID))
	book, _ := books.Get(EasterEggBookID)

	svc.SaveReply(1, "revised answer")
	again, _ := books.Get(EasterEggBookID)
	assert.Equal(t, book.Content, again.Content)
}

func TestSaveReply_UnknownDayRefused(t *testing.T) {
	svc, user, _ := newTestService(t, 2)

	assert.False(t, svc.SaveReply(99, "into the void"))
	_, ok := user.MailReply(99)
	assert.False(t, ok)
}
