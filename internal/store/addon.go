package store

import "bookingflow-service/internal/domain/entity"

// AddOnStore holds ancillary bundles (baggage or meal) with the same
// draft/saved semantics as seats. Draft and confirm operate on the whole
// bundle; there is no per-slot split. Service-code filtering happens at
// payload build time, so selection accepts whatever the UI offers.
type AddOnStore struct {
	*DraftSavedStore[entity.ServiceBundle]
	Kind entity.ServiceKind
}

func NewAddOnStore(kind entity.ServiceKind) *AddOnStore {
	return &AddOnStore{
		DraftSavedStore: NewDraftSavedStore(entity.ServiceBundle.Equal),
		Kind:            kind,
	}
}
