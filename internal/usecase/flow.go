package usecase

import (
	"context"
	"time"

	"bookingflow-service/internal/domain/entity"
	"bookingflow-service/internal/domain/repository"
	"bookingflow-service/internal/store"
	"bookingflow-service/pkg/logger"
	"bookingflow-service/pkg/metrics"
	"bookingflow-service/pkg/normalize"
)

// BookingFlow orchestrates the booking steps against the backend: pricing
// and seat-map lookups through the keyed request caches, fare summary
// computation, and hold booking submission.
type BookingFlow struct {
	bookingAPI    repository.BookingAPIRepository
	responseCache repository.ResponseCache
	holdRecords   repository.HoldRecordRepository
	cacheTTL      time.Duration
	logger        logger.Logger
	metrics       *metrics.Metrics
}

// NewBookingFlow creates a new booking flow orchestrator
func NewBookingFlow(
	bookingAPI repository.BookingAPIRepository,
	responseCache repository.ResponseCache,
	holdRecords repository.HoldRecordRepository,
	cacheTTL time.Duration,
	log logger.Logger,
	m *metrics.Metrics,
) *BookingFlow {
	return &BookingFlow{
		bookingAPI:    bookingAPI,
		responseCache: responseCache,
		holdRecords:   holdRecords,
		cacheTTL:      cacheTTL,
		logger:        log,
		metrics:       m,
	}
}

// FetchPricing loads the pricing document for the session's selected legs,
// going through the per-session request cache and the shared response cache
func (f *BookingFlow) FetchPricing(ctx context.Context, session *BookingSession) (interface{}, error) {
	legs := session.Legs.ValidLegs()
	if len(legs) == 0 {
		return nil, ErrNoLegsSelected
	}

	key := store.RequestKey(legs)
	return session.Pricing.Request(ctx, key, func(ctx context.Context) (interface{}, error) {
		return f.fetchThroughCache(ctx, "price:"+key, "pricing", func(ctx context.Context) (interface{}, error) {
			return f.bookingAPI.PriceDetails(ctx, legs, session.Currency, true)
		})
	})
}

// SeatMapResult is the outcome of one leg's seat-map fetch
type SeatMapResult struct {
	JourneyKey string
	Err        error
}

// FetchSeatMaps issues one seat-map request per valid leg concurrently and
// joins them all-settled: a failure on one leg never blocks the others.
func (f *BookingFlow) FetchSeatMaps(ctx context.Context, session *BookingSession) []SeatMapResult {
	legs := session.Legs.ValidLegs()
	results := make([]SeatMapResult, 0, len(legs))
	if len(legs) == 0 {
		return results
	}

	resCh := make(chan SeatMapResult, len(legs))
	for _, leg := range legs {
		leg := leg
		go func() {
			_, err := f.fetchSeatMap(ctx, session, leg)
			resCh <- SeatMapResult{JourneyKey: leg.JourneyKey, Err: err}
		}()
	}
	for range legs {
		results = append(results, <-resCh)
	}
	return results
}

func (f *BookingFlow) fetchSeatMap(ctx context.Context, session *BookingSession, leg entity.OfferLeg) (interface{}, error) {
	key := store.RequestKey([]entity.OfferLeg{leg})
	return session.SeatMaps.Request(ctx, key, func(ctx context.Context) (interface{}, error) {
		return f.fetchThroughCache(ctx, "seatmap:"+key, "seatmap", func(ctx context.Context) (interface{}, error) {
			return f.bookingAPI.SeatMap(ctx, []entity.OfferLeg{leg})
		})
	})
}

// fetchThroughCache consults the shared response cache before hitting the
// backend; cache errors are logged and treated as misses
func (f *BookingFlow) fetchThroughCache(ctx context.Context, cacheKey, kind string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	if f.responseCache != nil {
		var cached interface{}
		hit, err := f.responseCache.Get(ctx, cacheKey, &cached)
		if err != nil {
			f.logger.Warn("Response cache read failed", "key", cacheKey, "error", err)
		} else if hit {
			if f.metrics != nil {
				f.metrics.CacheHits.WithLabelValues(kind).Inc()
			}
			return cached, nil
		}
	}
	if f.metrics != nil {
		f.metrics.CacheMisses.WithLabelValues(kind).Inc()
	}

	response, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if f.responseCache != nil {
		if err := f.responseCache.Set(ctx, cacheKey, response, f.cacheTTL); err != nil {
			f.logger.Warn("Response cache write failed", "key", cacheKey, "error", err)
		}
	}
	return response, nil
}

// FlightLegs normalizes the cached pricing document into ordered legs
func (f *BookingFlow) FlightLegs(session *BookingSession) []entity.FlightLeg {
	entry := session.Pricing.Get(store.RequestKey(session.Legs.ValidLegs()))
	if entry.Status != store.StatusSucceeded {
		return []entity.FlightLeg{}
	}
	return normalize.ExtractLegs(entry.Data)
}

// SeatRows returns the grouped seat map for one journey from the cache.
// The rows carry raw availability; cross-passenger occupancy is a separate,
// per-passenger view (Seats.OccupiedByOther).
func (f *BookingFlow) SeatRows(session *BookingSession, journeyKey string) []entity.SeatRow {
	for _, leg := range session.Legs.ValidLegs() {
		if leg.JourneyKey != journeyKey {
			continue
		}
		entry := session.SeatMaps.Get(store.RequestKey([]entity.OfferLeg{leg}))
		if entry.Status != store.StatusSucceeded {
			return []entity.SeatRow{}
		}
		charges := normalize.ExtractSeatCharges(entry.Data, leg.JourneyKey, leg.FareKey)
		return normalize.GroupSeatsByRow(charges)
	}
	return []entity.SeatRow{}
}

// AddOnOffers returns the priced ancillary bundle for one journey and kind
// out of the cached pricing document. An empty bundle means the pricing has
// not succeeded yet or the journey carries no recognized services.
func (f *BookingFlow) AddOnOffers(session *BookingSession, journeyKey string, kind entity.ServiceKind) entity.ServiceBundle {
	entry := session.Pricing.Get(store.RequestKey(session.Legs.ValidLegs()))
	if entry.Status != store.StatusSucceeded {
		return entity.ServiceBundle{}
	}
	return normalize.ExtractServiceBundleForJourney(entry.Data, journeyKey, kind)
}

// Summary recomputes the fare totals from the cached pricing document and
// the current effective selections
func (f *BookingFlow) Summary(session *BookingSession) entity.FareSummary {
	legs := session.Legs.ValidLegs()
	var pricing interface{}
	if entry := session.Pricing.Get(store.RequestKey(legs)); entry.Status == store.StatusSucceeded {
		pricing = entry.Data
	}
	return Summarize(pricing, legs, session.PaxIDs(), session.Seats, session.Baggage, session.Meals, session.Currency)
}

// Submit validates the session, assembles the booking payload, submits it
// and records the hold response for audit
func (f *BookingFlow) Submit(ctx context.Context, session *BookingSession) (*entity.HoldBookingResponse, error) {
	legs := session.Legs.ValidLegs()
	if len(legs) == 0 {
		return nil, ErrNoLegsSelected
	}

	passengers := session.Passengers()
	for _, pax := range passengers {
		if !pax.Form.Complete() {
			return nil, ErrIncompleteDetails
		}
	}
	contact := session.Contact()
	if !contact.Complete() {
		return nil, ErrIncompleteDetails
	}

	payload := BuildBookingPayload(passengers, contact, legs, session.Seats, session.Baggage, session.Meals, session.Currency)
	response, err := f.bookingAPI.SubmitHoldBooking(ctx, payload)
	if err != nil {
		if f.metrics != nil {
			f.metrics.ErrorsCount.WithLabelValues("submit_hold_booking").Inc()
		}
		return nil, err
	}

	f.recordHold(ctx, session, legs, response)
	if f.metrics != nil {
		f.metrics.HoldBookings.Inc()
	}
	return response, nil
}

func (f *BookingFlow) recordHold(ctx context.Context, session *BookingSession, legs []entity.OfferLeg, response *entity.HoldBookingResponse) {
	if f.holdRecords == nil {
		return
	}

	journeyKeys := make([]string, 0, len(legs))
	for _, leg := range legs {
		journeyKeys = append(journeyKeys, leg.JourneyKey)
	}
	record := &entity.HoldRecord{
		SessionID:   session.ID,
		PNR:         response.PNR(),
		Currency:    session.Currency,
		TripTotal:   f.Summary(session).TripTotal,
		JourneyKeys: journeyKeys,
		PaxCount:    len(session.PaxIDs()),
		Status:      "held",
		SubmittedAt: time.Now(),
	}
	if err := f.holdRecords.Upsert(ctx, record); err != nil {
		f.logger.Error("Failed to persist hold record", "sessionId", session.ID, "pnr", record.PNR, "error", err)
	} else {
		f.logger.Info("Hold booking recorded", "sessionId", session.ID, "pnr", record.PNR)
	}
}
