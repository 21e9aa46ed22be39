package store

import "sync"

// selectionKey scopes one selection to a passenger on one journey
type selectionKey struct {
	paxID      string
	journeyKey string
}

// DraftSavedStore keeps a draft and a saved value per (passenger, journey).
// The draft may be overwritten freely; Confirm promotes it to saved. The
// effective view prefers the draft, which is what availability checks and
// payload building read. One generic store backs seats, baggage and meals;
// only the payload type and its equality differ.
type DraftSavedStore[T any] struct {
	mu    sync.RWMutex
	draft map[selectionKey]T
	saved map[selectionKey]T
	equal func(a, b T) bool
}

// NewDraftSavedStore creates a store; equal decides whether a draft is a
// no-op against the saved value (drives CanConfirm)
func NewDraftSavedStore[T any](equal func(a, b T) bool) *DraftSavedStore[T] {
	return &DraftSavedStore[T]{
		draft: make(map[selectionKey]T),
		saved: make(map[selectionKey]T),
		equal: equal,
	}
}

// SetDraft unconditionally overwrites the draft slot; saved is untouched
func (s *DraftSavedStore[T]) SetDraft(paxID, journeyKey string, value T) {
	s.mu.Lock()
	s.draft[selectionKey{paxID, journeyKey}] = value
	s.mu.Unlock()
}

// SetDraftIf writes the draft only when check accepts the journey's current
// effective view. The check runs under the write lock, so the decision and
// the write are one atomic step; no concurrent draft can slip in between.
func (s *DraftSavedStore[T]) SetDraftIf(paxID, journeyKey string, value T, check func(effective map[string]T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if check != nil {
		if err := check(s.effectiveByJourneyLocked(journeyKey)); err != nil {
			return err
		}
	}
	s.draft[selectionKey{paxID, journeyKey}] = value
	return nil
}

// Draft returns the draft value for the key
func (s *DraftSavedStore[T]) Draft(paxID, journeyKey string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.draft[selectionKey{paxID, journeyKey}]
	return value, ok
}

// Saved returns the committed value for the key
func (s *DraftSavedStore[T]) Saved(paxID, journeyKey string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.saved[selectionKey{paxID, journeyKey}]
	return value, ok
}

// Effective returns the draft when present, else the saved value
func (s *DraftSavedStore[T]) Effective(paxID, journeyKey string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := selectionKey{paxID, journeyKey}
	if value, ok := s.draft[key]; ok {
		return value, true
	}
	value, ok := s.saved[key]
	return value, ok
}

// Confirm promotes the draft into saved and clears the draft. Confirming
// with no draft clears saved as well: "nothing selected" is committed.
func (s *DraftSavedStore[T]) Confirm(paxID, journeyKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := selectionKey{paxID, journeyKey}
	if value, ok := s.draft[key]; ok {
		s.saved[key] = value
		delete(s.draft, key)
		return
	}
	delete(s.saved, key)
}

// ReleaseDraft clears the draft only; calling it again is a no-op
func (s *DraftSavedStore[T]) ReleaseDraft(paxID, journeyKey string) {
	s.mu.Lock()
	delete(s.draft, selectionKey{paxID, journeyKey})
	s.mu.Unlock()
}

// ReleaseSaved clears the saved value only
func (s *DraftSavedStore[T]) ReleaseSaved(paxID, journeyKey string) {
	s.mu.Lock()
	delete(s.saved, selectionKey{paxID, journeyKey})
	s.mu.Unlock()
}

// CanConfirm reports whether confirming would change the committed state:
// a draft exists and differs from the saved value
func (s *DraftSavedStore[T]) CanConfirm(paxID, journeyKey string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := selectionKey{paxID, journeyKey}
	draft, hasDraft := s.draft[key]
	if !hasDraft {
		return false
	}
	saved, hasSaved := s.saved[key]
	if !hasSaved {
		return true
	}
	return !s.equal(draft, saved)
}

// CanRelease reports whether anything exists to release
func (s *DraftSavedStore[T]) CanRelease(paxID, journeyKey string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := selectionKey{paxID, journeyKey}
	_, hasDraft := s.draft[key]
	_, hasSaved := s.saved[key]
	return hasDraft || hasSaved
}

// EffectiveByJourney returns the effective value per passenger for one
// journey. It is derived from the full maps on every call, so availability
// checks always see the current state.
func (s *DraftSavedStore[T]) EffectiveByJourney(journeyKey string) map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effectiveByJourneyLocked(journeyKey)
}

func (s *DraftSavedStore[T]) effectiveByJourneyLocked(journeyKey string) map[string]T {
	result := make(map[string]T)
	for key, value := range s.saved {
		if key.journeyKey == journeyKey {
			result[key.paxID] = value
		}
	}
	for key, value := range s.draft {
		if key.journeyKey == journeyKey {
			result[key.paxID] = value
		}
	}
	return result
}

// Reset clears all draft and saved state
func (s *DraftSavedStore[T]) Reset() {
	s.mu.Lock()
	s.draft = make(map[selectionKey]T)
	s.saved = make(map[selectionKey]T)
	s.mu.Unlock()
}
