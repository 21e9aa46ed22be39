package repository

import (
	"context"

	"bookingflow-service/internal/domain/entity"
)

// BookingAPIRepository defines the interface to the opaque booking backend
type BookingAPIRepository interface {
	// PriceDetails fetches the pricing document for the given offers.
	// The response shape varies across backend versions, so the raw decoded
	// JSON is returned and normalized by the caller.
	PriceDetails(ctx context.Context, offers []entity.OfferLeg, currency string, includeSeats bool) (interface{}, error)

	// SeatMap fetches the seat-map document for the given legs
	SeatMap(ctx context.Context, legs []entity.OfferLeg) (interface{}, error)

	// SubmitHoldBooking submits the assembled booking payload
	SubmitHoldBooking(ctx context.Context, payload *entity.BookingPayload) (*entity.HoldBookingResponse, error)
}
