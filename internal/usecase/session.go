package usecase

import (
	"context"
	"sync"
	"time"

	"bookingflow-service/internal/domain/entity"
	"bookingflow-service/internal/store"
	"bookingflow-service/pkg/logger"
	"bookingflow-service/pkg/metrics"

	"github.com/google/uuid"
)

// BookingSession holds all selection state for one booking: chosen offer
// legs, draft/saved seat and add-on choices per passenger, the keyed
// request caches for pricing and seat maps, and the passenger roster.
// Everything lives in memory for the lifetime of the session.
type BookingSession struct {
	ID        string
	Currency  string
	CreatedAt time.Time

	Legs     *store.OfferLegStore
	Seats    *store.SeatSelectionStore
	Baggage  *store.AddOnStore
	Meals    *store.AddOnStore
	Pricing  *store.RequestCache[interface{}]
	SeatMaps *store.RequestCache[interface{}]

	mu         sync.RWMutex
	passengers []entity.Passenger
	contact    entity.Contact
	lastSeen   time.Time
}

func newBookingSession(currency string, adults, children, infants int) *BookingSession {
	now := time.Now()
	return &BookingSession{
		ID:         uuid.NewString(),
		Currency:   currency,
		CreatedAt:  now,
		Legs:       store.NewOfferLegStore(),
		Seats:      store.NewSeatSelectionStore(),
		Baggage:    store.NewAddOnStore(entity.ServiceBaggage),
		Meals:      store.NewAddOnStore(entity.ServiceMeal),
		Pricing:    store.NewRequestCache[interface{}](),
		SeatMaps:   store.NewRequestCache[interface{}](),
		passengers: entity.BuildRoster(adults, children, infants),
		lastSeen:   now,
	}
}

// Passengers returns a copy of the roster
func (s *BookingSession) Passengers() []entity.Passenger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]entity.Passenger, len(s.passengers))
	copy(copied, s.passengers)
	return copied
}

// PaxIDs returns the roster IDs in order
func (s *BookingSession) PaxIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.passengers))
	for i, pax := range s.passengers {
		ids[i] = pax.PaxID
	}
	return ids
}

// HasPassenger reports whether paxID belongs to the roster
func (s *BookingSession) HasPassenger(paxID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pax := range s.passengers {
		if pax.PaxID == paxID {
			return true
		}
	}
	return false
}

// UpdateForm replaces the personal fields of one passenger
func (s *BookingSession) UpdateForm(paxID string, form entity.PassengerForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.passengers {
		if s.passengers[i].PaxID == paxID {
			s.passengers[i].Form = form
			return nil
		}
	}
	return ErrUnknownPassenger
}

// SetContact replaces the booking-level contact details
func (s *BookingSession) SetContact(contact entity.Contact) {
	s.mu.Lock()
	s.contact = contact
	s.mu.Unlock()
}

// Contact returns the booking-level contact details
func (s *BookingSession) Contact() entity.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contact
}

// Reset is "back to start": legs, selections, caches, forms and contact
// are cleared; the roster itself survives the session
func (s *BookingSession) Reset() {
	s.Legs.Clear()
	s.Seats.Reset()
	s.Baggage.Reset()
	s.Meals.Reset()
	s.Pricing.Reset()
	s.SeatMaps.Reset()

	s.mu.Lock()
	for i := range s.passengers {
		s.passengers[i].Form = entity.PassengerForm{}
	}
	s.contact = entity.Contact{}
	s.mu.Unlock()
}

func (s *BookingSession) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *BookingSession) expired(ttl time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.lastSeen) > ttl
}

// SessionManager owns the in-memory session set and expires idle sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*BookingSession
	ttl      time.Duration
	logger   logger.Logger
	metrics  *metrics.Metrics
}

func NewSessionManager(ttl time.Duration, log logger.Logger, m *metrics.Metrics) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*BookingSession),
		ttl:      ttl,
		logger:   log,
		metrics:  m,
	}
}

// Create starts a new booking session with the given passenger counts
func (m *SessionManager) Create(currency string, adults, children, infants int) *BookingSession {
	if adults <= 0 {
		adults = 1
	}
	session := newBookingSession(currency, adults, children, infants)

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SessionsCreated.Inc()
	}
	m.logger.Info("Booking session created", "sessionId", session.ID, "adults", adults, "children", children, "infants", infants)
	return session
}

// Get returns the session and refreshes its idle timer
func (m *SessionManager) Get(id string) (*BookingSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.touch()
	return session, nil
}

// Delete removes the session entirely
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep removes expired sessions and returns how many were dropped
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, session := range m.sessions {
		if session.expired(m.ttl) {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// StartSweeper expires idle sessions on a ticker until ctx is done
func (m *SessionManager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("Session sweeper stopped")
				return
			case <-ticker.C:
				if dropped := m.Sweep(); dropped > 0 {
					m.logger.Info("Expired booking sessions removed", "count", dropped)
				}
			}
		}
	}()
}
