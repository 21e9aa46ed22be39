package entity

import "time"

// SelectedSeat is the seat record sent per passenger and flight in the
// booking payload; the seat code is decomposed into row and letter
type SelectedSeat struct {
	FlightNumber string `json:"flightNumber"`
	RowNumber    int    `json:"rowNumber"`
	SeatSelected string `json:"seatSelected"`
}

// ExtraService is one ancillary SSR forwarded to the booking backend
type ExtraService struct {
	FlightNumber string  `json:"flightNumber"`
	SSRCode      string  `json:"ssrCode"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency,omitempty"`
}

// FlightFareKey is the per-leg record inside a passenger-info entry
type FlightFareKey struct {
	FareKey      string         `json:"fareKey"`
	JourneyKey   string         `json:"journeyKey"`
	FlightNumber string         `json:"flightNumber,omitempty"`
	SelectedSeat []SelectedSeat `json:"selectedSeat"`
	ExtraService []ExtraService `json:"extraService"`
}

// PassengerInfo is one passenger record in the booking payload
type PassengerInfo struct {
	PaxID         string          `json:"paxId"`
	PaxType       PaxType         `json:"paxType"`
	Title         string          `json:"title,omitempty"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Gender        string          `json:"gender"`
	DateOfBirth   string          `json:"dateOfBirth"`
	FlightFareKey []FlightFareKey `json:"flightFareKey"`
}

// BookingPayload is the submit-hold-booking request body
type BookingPayload struct {
	Currency   string          `json:"currency"`
	Contact    Contact         `json:"contact"`
	Passengers []PassengerInfo `json:"passengerInfo"`
}

// HoldBookingResponse is the hold/PNR response from the backend
type HoldBookingResponse struct {
	Data map[string]interface{} `json:"data"`
}

// PNR digs the record locator out of the loosely-typed response body
func (r *HoldBookingResponse) PNR() string {
	if r == nil || r.Data == nil {
		return ""
	}
	for _, key := range []string{"pnr", "recordLocator", "bookingReference"} {
		if value, ok := r.Data[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// HoldRecord is the persisted audit record of a submitted hold booking
type HoldRecord struct {
	ID          string    `bson:"_id,omitempty"`
	SessionID   string    `bson:"sessionId"`
	PNR         string    `bson:"pnr"`
	Currency    string    `bson:"currency"`
	TripTotal   float64   `bson:"tripTotal"`
	JourneyKeys []string  `bson:"journeyKeys"`
	PaxCount    int       `bson:"paxCount"`
	Status      string    `bson:"status"`
	SubmittedAt time.Time `bson:"submittedAt"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}
