// Package shop sells furniture for ink. Each catalog item can be owned at
// most once through the shop; gifted duplicates are the inventory's
// business, not ours.
package shop

import (
	"errors"
	"log"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

var (
	ErrUnknownItem     = errors.New("shop: unknown item")
	ErrAlreadyOwned    = errors.New("shop: item already owned")
	ErrInsufficientInk = errors.New("shop: not enough ink")
)

// Service checks purchases against the catalog and the player's ink.
type Service struct {
	cfg    *config.Config
	user   *userdata.Store
	logger *log.Logger
}

func NewService(cfg *config.Config, user *userdata.Store, logger *log.Logger) *Service {
	return &Service{cfg: cfg, user: user, logger: logger}
}

// Catalog returns the items for sale.
func (s *Service) Catalog() []config.ShopItem {
	return append([]config.ShopItem(nil), s.cfg.Shop...)
}

// Item looks up a catalog entry.
func (s *Service) Item(id string) (config.ShopItem, bool) {
	for _, it := range s.cfg.Shop {
		if it.ID == id {
			return it, true
		}
	}
	return config.ShopItem{}, false
}

// Buy purchases an item. The ownership check runs before payment, so a
// refused purchase never touches the player's ink.
func (s *Service) Buy(itemID string) error {
	item, ok := s.Item(itemID)
	if !ok {
		return ErrUnknownItem
	}
	if s.user.HasItem(itemID) {
		return ErrAlreadyOwned
	}
	if !s.user.ConsumeInk(item.Price) {
		return ErrInsufficientInk
	}
	s.user.AddItem(itemID)
	s.logger.Printf("shop: sold %s for %d ink", itemID, item.Price)
	return nil
}
