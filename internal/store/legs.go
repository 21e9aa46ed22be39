package store

import (
	"sort"
	"strings"
	"sync"

	"bookingflow-service/internal/domain/entity"
)

// OfferLegStore holds the chosen fare offers for the active booking: one
// leg for a one-way, two (OUT, IN) for a round trip. Every downstream
// consumer reads ValidLegs; a leg missing either key is never bookable.
type OfferLegStore struct {
	mu   sync.RWMutex
	legs []entity.OfferLeg
}

func NewOfferLegStore() *OfferLegStore {
	return &OfferLegStore{}
}

// SetLegs replaces the whole set, keeping at most two entries
func (s *OfferLegStore) SetLegs(legs []entity.OfferLeg) {
	if len(legs) > 2 {
		legs = legs[:2]
	}
	copied := make([]entity.OfferLeg, len(legs))
	copy(copied, legs)

	s.mu.Lock()
	s.legs = copied
	s.mu.Unlock()
}

// Legs returns all stored entries, valid or not
func (s *OfferLegStore) Legs() []entity.OfferLeg {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]entity.OfferLeg, len(s.legs))
	copy(copied, s.legs)
	return copied
}

// ValidLegs returns only the resolvable entries
func (s *OfferLegStore) ValidLegs() []entity.OfferLeg {
	return entity.ValidLegs(s.Legs())
}

// Clear empties the set ("start over")
func (s *OfferLegStore) Clear() {
	s.mu.Lock()
	s.legs = nil
	s.mu.Unlock()
}

// RequestKey derives the cache key for a set of offers. It is a pure
// function of the defining fields: sorted "journeyKey|fareKey" pairs joined
// with ";". Invalid legs are excluded so partial data can never produce a
// colliding key, and re-selecting the same offers always reuses the cache.
func RequestKey(legs []entity.OfferLeg) string {
	pairs := make([]string, 0, len(legs))
	for _, leg := range entity.ValidLegs(legs) {
		pairs = append(pairs, leg.JourneyKey+"|"+leg.FareKey)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ";")
}
