package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookingflow-service/internal/domain/entity"
	"bookingflow-service/pkg/logger"
)

func newTestManager(ttl time.Duration) *SessionManager {
	return NewSessionManager(ttl, logger.NewNop(), nil)
}

func TestSessionManagerCreateBuildsRoster(t *testing.T) {
	m := newTestManager(time.Minute)
	session := m.Create("THB", 2, 1, 1)

	ids := session.PaxIDs()
	want := []string{"ADT-1", "ADT-2", "CHD-1", "INF-1"}
	if len(ids) != len(want) {
		t.Fatalf("roster = %v; want %v", ids, want)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("roster = %v; want %v", ids, want)
		}
	}
	if session.Currency != "THB" || session.ID == "" {
		t.Errorf("session = %+v; want currency and generated ID", session)
	}
}

func TestSessionManagerCreateForcesOneAdult(t *testing.T) {
	m := newTestManager(time.Minute)
	session := m.Create("THB", 0, 0, 0)
	if ids := session.PaxIDs(); len(ids) != 1 || ids[0] != "ADT-1" {
		t.Fatalf("roster = %v; want a single forced adult", ids)
	}
}

func TestSessionManagerGetUnknown(t *testing.T) {
	m := newTestManager(time.Minute)
	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v; want ErrSessionNotFound", err)
	}
}

func TestSessionUpdateFormUnknownPassenger(t *testing.T) {
	m := newTestManager(time.Minute)
	session := m.Create("THB", 1, 0, 0)
	if err := session.UpdateForm("ADT-9", entity.PassengerForm{}); !errors.Is(err, ErrUnknownPassenger) {
		t.Fatalf("err = %v; want ErrUnknownPassenger", err)
	}
}

func TestSessionResetClearsEverything(t *testing.T) {
	m := newTestManager(time.Minute)
	session := m.Create("THB", 1, 0, 0)

	session.Legs.SetLegs([]entity.OfferLeg{{JourneyKey: "J1", FareKey: "F1"}})
	if err := session.Seats.SetDraft("ADT-1", "J1", entity.SeatSelection{SeatCode: "12A"}); err != nil {
		t.Fatalf("draft: %v", err)
	}
	session.Seats.Confirm("ADT-1", "J1")
	if err := session.UpdateForm("ADT-1", completedForm("Anna")); err != nil {
		t.Fatalf("form: %v", err)
	}
	session.SetContact(entity.Contact{Email: "a@b.c", Phone: "1"})

	session.Reset()

	if len(session.Legs.Legs()) != 0 {
		t.Error("legs should be cleared")
	}
	if _, ok := session.Seats.Effective("ADT-1", "J1"); ok {
		t.Error("seat selections should be cleared")
	}
	if session.Contact() != (entity.Contact{}) {
		t.Error("contact should be cleared")
	}
	// The roster itself survives a reset, forms do not
	pax := session.Passengers()
	if len(pax) != 1 || pax[0].Form != (entity.PassengerForm{}) {
		t.Errorf("passengers after reset = %+v; want empty forms, roster intact", pax)
	}
}

func TestSessionManagerSweepDropsIdleSessions(t *testing.T) {
	m := newTestManager(time.Millisecond)
	session := m.Create("THB", 1, 0, 0)

	time.Sleep(10 * time.Millisecond)
	if dropped := m.Sweep(); dropped != 1 {
		t.Fatalf("dropped = %d; want 1", dropped)
	}
	if _, err := m.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v; want session gone after sweep", err)
	}
}

func TestSessionManagerGetRefreshesIdleTimer(t *testing.T) {
	m := newTestManager(50 * time.Millisecond)
	session := m.Create("THB", 1, 0, 0)

	time.Sleep(30 * time.Millisecond)
	if _, err := m.Get(session.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	// 60ms since creation but only 30ms since the last touch
	if dropped := m.Sweep(); dropped != 0 {
		t.Fatalf("dropped = %d; want touched session kept", dropped)
	}
}

func TestSessionManagerSweeperStopsOnCancel(t *testing.T) {
	m := newTestManager(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	m.StartSweeper(ctx, time.Millisecond)

	m.Create("THB", 1, 0, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()

	// The sweeper had time to run at least once
	m.mu.RLock()
	remaining := len(m.sessions)
	m.mu.RUnlock()
	if remaining != 0 {
		t.Fatalf("%d sessions left; want sweeper to have expired them", remaining)
	}
}
