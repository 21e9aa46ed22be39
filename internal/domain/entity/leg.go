package entity

import "time"

// Direction marks which half of a round trip a leg belongs to
type Direction string

const (
	DirectionOut Direction = "OUT"
	DirectionIn  Direction = "IN"
)

// OfferLeg is one selected fare offering: a priced fare tied to a journey.
// At most two legs are selected within a booking session (outbound, inbound).
type OfferLeg struct {
	JourneyKey    string    `json:"journeyKey" bson:"journeyKey"`
	FareKey       string    `json:"fareKey" bson:"fareKey"`
	SecurityToken string    `json:"securityToken,omitempty" bson:"securityToken,omitempty"`
	Currency      string    `json:"currency,omitempty" bson:"currency,omitempty"`
	Direction     Direction `json:"direction,omitempty" bson:"direction,omitempty"`
}

// Valid reports whether the leg can be priced and booked. A leg missing
// either key must never be treated as selectable; downstream consumers
// exclude invalid legs instead of synthesizing one from partial data.
func (l OfferLeg) Valid() bool {
	return l.JourneyKey != "" && l.FareKey != ""
}

// ValidLegs filters out legs that are not resolvable
func ValidLegs(legs []OfferLeg) []OfferLeg {
	valid := make([]OfferLeg, 0, len(legs))
	for _, leg := range legs {
		if leg.Valid() {
			valid = append(valid, leg)
		}
	}
	return valid
}

// FlightLeg is one normalized flight segment extracted from a pricing response
type FlightLeg struct {
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	DepTime      time.Time `json:"depTime"`
	ArrTime      time.Time `json:"arrTime"`
	FlightNumber string    `json:"flightNumber"`
	Direction    Direction `json:"direction"`
}
