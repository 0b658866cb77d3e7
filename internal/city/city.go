// Package city handles trips outside the apartment. Visits are flavor
// first; occasionally one turns up a torn page.
package city

import (
	"errors"
	"log"
	"math/rand"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/fragment"
)

var ErrUnknownLocation = errors.New("city: unknown location")

// VisitResult is what a trip produced.
type VisitResult struct {
	Location      config.Location `json:"location"`
	FoundFragment string          `json:"foundFragment,omitempty"`
}

// Service rolls for fragment drops on each visit.
type Service struct {
	cfg       *config.Config
	fragments *fragment.Service
	logger    *log.Logger
	roll      func() float64
}

func NewService(cfg *config.Config, fragments *fragment.Service, logger *log.Logger) *Service {
	return &Service{
		cfg:       cfg,
		fragments: fragments,
		logger:    logger,
		roll:      rand.Float64,
	}
}

// SetRoll overrides the drop roll source.
func (s *Service) SetRoll(roll func() float64) {
	s.roll = roll
}

// Locations returns the places the player can visit.
func (s *Service) Locations() []config.Location {
	return append([]config.Location(nil), s.cfg.City.Locations...)
}

// Location looks up a place by id.
func (s *Service) Location(id string) (config.Location, bool) {
	for _, l := range s.cfg.City.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return config.Location{}, false
}

// Visit goes somewhere. With the configured probability the trip drops the
// exploration fragment; a fragment already collected never drops again.
func (s *Service) Visit(locationID string) (VisitResult, error) {
	loc, ok := s.Location(locationID)
	if !ok {
		return VisitResult{}, ErrUnknownLocation
	}
	res := VisitResult{Location: loc}
	if s.roll() < s.cfg.City.FragmentDropChance {
		if s.fragments.Unlock(s.cfg.City.DropFragmentID) {
			res.FoundFragment = s.cfg.City.DropFragmentID
			s.logger.Printf("city: fragment %s found at %s", res.FoundFragment, loc.ID)
		}
	}
	return res, nil
}
