package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bookingflow-service/internal/domain/entity"
	interfaceRepo "bookingflow-service/internal/interface/repository"
	"bookingflow-service/internal/store"
	"bookingflow-service/pkg/logger"
)

type fakeBookingAPI struct {
	mu           sync.Mutex
	priceCalls   int
	seatMapCalls int

	priceDoc   interface{}
	priceErr   error
	seatMapDoc interface{}
	seatMapErr map[string]error // keyed by journeyKey

	submitted *entity.BookingPayload
	submitErr error
	pnr       string
}

func (f *fakeBookingAPI) PriceDetails(ctx context.Context, offers []entity.OfferLeg, currency string, includeSeats bool) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priceCalls++
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	return f.priceDoc, nil
}

func (f *fakeBookingAPI) SeatMap(ctx context.Context, legs []entity.OfferLeg) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seatMapCalls++
	if len(legs) == 1 {
		if err, ok := f.seatMapErr[legs[0].JourneyKey]; ok {
			return nil, err
		}
	}
	return f.seatMapDoc, nil
}

func (f *fakeBookingAPI) SubmitHoldBooking(ctx context.Context, payload *entity.BookingPayload) (*entity.HoldBookingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = payload
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &entity.HoldBookingResponse{Data: map[string]interface{}{"pnr": f.pnr}}, nil
}

func newTestFlow(api *fakeBookingAPI) *BookingFlow {
	return NewBookingFlow(api, nil, nil, time.Minute, logger.NewNop(), nil)
}

func sessionWithLegs(legs ...entity.OfferLeg) *BookingSession {
	session := newBookingSession("THB", 1, 0, 0)
	session.Legs.SetLegs(legs)
	return session
}

func TestFetchPricingRequiresLegs(t *testing.T) {
	flow := newTestFlow(&fakeBookingAPI{})
	session := sessionWithLegs(entity.OfferLeg{JourneyKey: "J1"}) // no fareKey

	if _, err := flow.FetchPricing(context.Background(), session); !errors.Is(err, ErrNoLegsSelected) {
		t.Fatalf("err = %v; want ErrNoLegsSelected", err)
	}
}

func TestFetchPricingCachesPerKey(t *testing.T) {
	api := &fakeBookingAPI{priceDoc: map[string]interface{}{"totalAmount": 1000.0}}
	flow := newTestFlow(api)
	session := sessionWithLegs(entity.OfferLeg{JourneyKey: "J1", FareKey: "F1"})

	for i := 0; i < 3; i++ {
		if _, err := flow.FetchPricing(context.Background(), session); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if api.priceCalls != 1 {
		t.Fatalf("backend called %d times; want 1", api.priceCalls)
	}

	key := store.RequestKey(session.Legs.ValidLegs())
	if entry := session.Pricing.Get(key); entry.Status != store.StatusSucceeded {
		t.Fatalf("cache entry = %+v; want succeeded", entry)
	}
}

func TestFetchPricingFailureIsRecorded(t *testing.T) {
	api := &fakeBookingAPI{priceErr: errors.New("backend down")}
	flow := newTestFlow(api)
	session := sessionWithLegs(entity.OfferLeg{JourneyKey: "J1", FareKey: "F1"})

	if _, err := flow.FetchPricing(context.Background(), session); err == nil {
		t.Fatal("want fetch error")
	}

	key := store.RequestKey(session.Legs.ValidLegs())
	entry := session.Pricing.Get(key)
	if entry.Status != store.StatusFailed || entry.Error == "" {
		t.Fatalf("entry = %+v; want failed with message", entry)
	}

	// The failure is not sticky; the next attempt refetches
	api.priceErr = nil
	api.priceDoc = map[string]interface{}{"totalAmount": 1.0}
	if _, err := flow.FetchPricing(context.Background(), session); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if entry := session.Pricing.Get(key); entry.Status != store.StatusSucceeded {
		t.Fatalf("entry after retry = %+v; want succeeded", entry)
	}
}

func TestSharedResponseCacheAcrossSessions(t *testing.T) {
	api := &fakeBookingAPI{priceDoc: map[string]interface{}{"totalAmount": 1000.0}}
	flow := NewBookingFlow(api, interfaceRepo.NewMemoryResponseCache(), nil, time.Minute, logger.NewNop(), nil)

	leg := entity.OfferLeg{JourneyKey: "J1", FareKey: "F1"}
	first := sessionWithLegs(leg)
	second := sessionWithLegs(leg)

	if _, err := flow.FetchPricing(context.Background(), first); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := flow.FetchPricing(context.Background(), second); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if api.priceCalls != 1 {
		t.Fatalf("backend called %d times; want the second session served from cache", api.priceCalls)
	}
}

func TestAddOnOffersFromCachedPricing(t *testing.T) {
	api := &fakeBookingAPI{priceDoc: map[string]interface{}{
		"journeys": []interface{}{
			map[string]interface{}{
				"journeyKey": "J1",
				"services": []interface{}{
					map[string]interface{}{"ssrCode": "BG15", "amount": 300.0},
					map[string]interface{}{"ssrCode": "MH01", "amount": 120.0},
				},
			},
			map[string]interface{}{
				"journeyKey": "J2",
				"services": []interface{}{
					map[string]interface{}{"ssrCode": "BG20", "amount": 450.0},
				},
			},
		},
	}}
	flow := newTestFlow(api)
	session := sessionWithLegs(
		entity.OfferLeg{JourneyKey: "J1", FareKey: "F1"},
		entity.OfferLeg{JourneyKey: "J2", FareKey: "F2"},
	)

	// Nothing priced yet
	if bundle := flow.AddOnOffers(session, "J1", entity.ServiceBaggage); len(bundle.Items()) != 0 {
		t.Fatalf("bundle before pricing = %+v; want empty", bundle)
	}

	if _, err := flow.FetchPricing(context.Background(), session); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	bundle := flow.AddOnOffers(session, "J1", entity.ServiceBaggage)
	if bundle.Primary == nil || bundle.Primary.SSRCode != "BG15" {
		t.Fatalf("J1 baggage = %+v; want BG15", bundle.Primary)
	}
	bundle = flow.AddOnOffers(session, "J2", entity.ServiceBaggage)
	if bundle.Primary == nil || bundle.Primary.SSRCode != "BG20" {
		t.Fatalf("J2 baggage = %+v; want BG20", bundle.Primary)
	}
	bundle = flow.AddOnOffers(session, "J1", entity.ServiceMeal)
	if bundle.Primary == nil || bundle.Primary.SSRCode != "MH01" {
		t.Fatalf("J1 meal = %+v; want MH01", bundle.Primary)
	}
}

func TestFetchSeatMapsAllSettled(t *testing.T) {
	api := &fakeBookingAPI{
		seatMapDoc: []interface{}{},
		seatMapErr: map[string]error{"J-IN": errors.New("seat map unavailable")},
	}
	flow := newTestFlow(api)
	session := sessionWithLegs(
		entity.OfferLeg{JourneyKey: "J-OUT", FareKey: "F1"},
		entity.OfferLeg{JourneyKey: "J-IN", FareKey: "F2"},
	)

	results := flow.FetchSeatMaps(context.Background(), session)
	if len(results) != 2 {
		t.Fatalf("got %d results; want one per leg", len(results))
	}

	byJourney := make(map[string]error, 2)
	for _, res := range results {
		byJourney[res.JourneyKey] = res.Err
	}
	if byJourney["J-OUT"] != nil {
		t.Errorf("J-OUT failed: %v", byJourney["J-OUT"])
	}
	if byJourney["J-IN"] == nil {
		t.Error("J-IN should have failed")
	}

	// One leg's failure leaves the other leg's cache entry intact
	outKey := store.RequestKey([]entity.OfferLeg{{JourneyKey: "J-OUT", FareKey: "F1"}})
	if entry := session.SeatMaps.Get(outKey); entry.Status != store.StatusSucceeded {
		t.Fatalf("J-OUT entry = %+v; want succeeded", entry)
	}
}

func TestSubmitRequiresCompleteDetails(t *testing.T) {
	flow := newTestFlow(&fakeBookingAPI{pnr: "ABC123"})
	session := sessionWithLegs(entity.OfferLeg{JourneyKey: "J1", FareKey: "F1"})

	if _, err := flow.Submit(context.Background(), session); !errors.Is(err, ErrIncompleteDetails) {
		t.Fatalf("err = %v; want ErrIncompleteDetails for empty form", err)
	}

	if err := session.UpdateForm("ADT-1", completedForm("Anna")); err != nil {
		t.Fatalf("form: %v", err)
	}
	if _, err := flow.Submit(context.Background(), session); !errors.Is(err, ErrIncompleteDetails) {
		t.Fatalf("err = %v; want ErrIncompleteDetails for missing contact", err)
	}
}

func TestSubmitRecordsHold(t *testing.T) {
	api := &fakeBookingAPI{pnr: "ABC123"}
	holdRecords := interfaceRepo.NewMemoryHoldRecordRepository()
	flow := NewBookingFlow(api, nil, holdRecords, time.Minute, logger.NewNop(), nil)

	session := sessionWithLegs(entity.OfferLeg{JourneyKey: "J1", FareKey: "F1"})
	if err := session.UpdateForm("ADT-1", completedForm("Anna")); err != nil {
		t.Fatalf("form: %v", err)
	}
	session.SetContact(entity.Contact{Email: "anna@example.com", Phone: "+66000000"})

	response, err := flow.Submit(context.Background(), session)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if response.PNR() != "ABC123" {
		t.Fatalf("pnr = %q; want ABC123", response.PNR())
	}
	if api.submitted == nil || len(api.submitted.Passengers) != 1 {
		t.Fatalf("submitted payload = %+v", api.submitted)
	}

	records, err := holdRecords.FindBySession(context.Background(), session.ID)
	if err != nil || len(records) != 1 {
		t.Fatalf("records = %+v, %v; want one audit record", records, err)
	}
	if records[0].PNR != "ABC123" || records[0].PaxCount != 1 {
		t.Errorf("record = %+v", records[0])
	}
}

func TestSubmitBackendFailure(t *testing.T) {
	api := &fakeBookingAPI{submitErr: errors.New("hold rejected")}
	flow := newTestFlow(api)

	session := sessionWithLegs(entity.OfferLeg{JourneyKey: "J1", FareKey: "F1"})
	if err := session.UpdateForm("ADT-1", completedForm("Anna")); err != nil {
		t.Fatalf("form: %v", err)
	}
	session.SetContact(entity.Contact{Email: "anna@example.com", Phone: "+66000000"})

	if _, err := flow.Submit(context.Background(), session); err == nil {
		t.Fatal("want submit error surfaced")
	}
}
