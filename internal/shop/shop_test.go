package shop

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

func newTestService(t *testing.T) (*Service, *userdata.Store) {
	t.Helper()
	logger := log.New(os.Stderr, "", 0)
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	blobs := blob.NewMemoryStore()
	user := userdata.NewStore(blobs, cfg, logger)
	require.NoError(t, user.Load())
	return NewService(cfg, user, logger), user
}

func TestBuy_HappyPath(t *testing.T) {
	svc, user := newTestService(t)
	user.AddInk(60)

	require.NoError(t, svc.Buy("item_plant_01")) // priced 50

	assert.Equal(t, 10, user.Ink())
	assert.True(t, user.HasItem("item_plant_01"))
}

func TestBuy_InsufficientInkLeavesBalance(t *testing.T) {
	svc, user := newTestService(t)
	user.AddInk(30)

	err := svc.Buy("item_plant_01")

	assert.ErrorIs(t, err, ErrInsufficientInk)
	assert.Equal(t, 30, user.Ink())
	assert.False(t, user.HasItem("item_plant_01"))
}

func TestBuy_AlreadyOwnedCheckedBeforePayment(t *testing.T) {
	svc, user := newTestService(t)
	user.AddInk(200)
	require.NoError(t, svc.Buy("item_plant_01"))

	err := svc.Buy("item_plant_01")

	assert.ErrorIs(t, err, ErrAlreadyOwned)
	assert.Equal(t, 150, user.Ink(), "refusal never touches ink")
	assert.Equal(t, 1, user.CountItem("item_plant_01"))
}

func TestBuy_UnknownItem(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Buy("item_nonsense"), ErrUnknownItem)
}

func TestBuy_StarterItemCountsAsOwned(t *testing.T) {
	svc, user := newTestService(t)
	user.AddInk(500)

	// Starter furniture is already in the inventory; the shop must refuse
	// to sell a second copy even if a catalog entry shares the id.
	svc.cfg.Shop = append(svc.cfg.Shop, config.ShopItem{ID: "item_desk_default", Name: "Desk", Price: 10})
	assert.ErrorIs(t, svc.Buy("item_desk_default"), ErrAlreadyOwned)
}
