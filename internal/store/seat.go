package store

import (
	"errors"

	"bookingflow-service/internal/domain/entity"
)

// ErrSeatOccupied is returned when a draft targets a seat another passenger
// already holds effectively (draft or saved) on the same journey
var ErrSeatOccupied = errors.New("seat occupied by another passenger")

// SeatSelectionStore holds per-passenger, per-journey seat choices with
// draft/saved promotion. The cross-passenger uniqueness invariant is
// enforced here: the effective view decides availability, so an unsaved
// draft already blocks the seat for everyone else on that journey.
type SeatSelectionStore struct {
	inner *DraftSavedStore[entity.SeatSelection]
}

func NewSeatSelectionStore() *SeatSelectionStore {
	return &SeatSelectionStore{
		inner: NewDraftSavedStore(func(a, b entity.SeatSelection) bool {
			return a.SeatCode == b.SeatCode
		}),
	}
}

// SetDraft overwrites the passenger's draft seat. The draft is rejected
// without any mutation when the seat is effectively held by another
// passenger on the same journey. The occupancy check and the write share
// one critical section, so two concurrent drafts of the same seat can
// never both succeed.
func (s *SeatSelectionStore) SetDraft(paxID, journeyKey string, seat entity.SeatSelection) error {
	return s.inner.SetDraftIf(paxID, journeyKey, seat, func(effective map[string]entity.SeatSelection) error {
		for owner, held := range effective {
			if owner != paxID && held.SeatCode != "" && held.SeatCode == seat.SeatCode {
				return ErrSeatOccupied
			}
		}
		return nil
	})
}

// OccupiedByOther returns the seat codes held effectively by any passenger
// other than paxID on the journey
func (s *SeatSelectionStore) OccupiedByOther(paxID, journeyKey string) map[string]bool {
	occupied := make(map[string]bool)
	for owner, seat := range s.inner.EffectiveByJourney(journeyKey) {
		if owner != paxID && seat.SeatCode != "" {
			occupied[seat.SeatCode] = true
		}
	}
	return occupied
}

func (s *SeatSelectionStore) Draft(paxID, journeyKey string) (entity.SeatSelection, bool) {
	return s.inner.Draft(paxID, journeyKey)
}

func (s *SeatSelectionStore) Saved(paxID, journeyKey string) (entity.SeatSelection, bool) {
	return s.inner.Saved(paxID, journeyKey)
}

func (s *SeatSelectionStore) Effective(paxID, journeyKey string) (entity.SeatSelection, bool) {
	return s.inner.Effective(paxID, journeyKey)
}

func (s *SeatSelectionStore) Confirm(paxID, journeyKey string) {
	s.inner.Confirm(paxID, journeyKey)
}

func (s *SeatSelectionStore) ReleaseDraft(paxID, journeyKey string) {
	s.inner.ReleaseDraft(paxID, journeyKey)
}

func (s *SeatSelectionStore) ReleaseSaved(paxID, journeyKey string) {
	s.inner.ReleaseSaved(paxID, journeyKey)
}

func (s *SeatSelectionStore) CanConfirm(paxID, journeyKey string) bool {
	return s.inner.CanConfirm(paxID, journeyKey)
}

func (s *SeatSelectionStore) CanRelease(paxID, journeyKey string) bool {
	return s.inner.CanRelease(paxID, journeyKey)
}

func (s *SeatSelectionStore) EffectiveByJourney(journeyKey string) map[string]entity.SeatSelection {
	return s.inner.EffectiveByJourney(journeyKey)
}

func (s *SeatSelectionStore) Reset() {
	s.inner.Reset()
}
