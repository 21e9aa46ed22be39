package entity

import "fmt"

// PaxType identifies the passenger category
type PaxType string

const (
	PaxAdult  PaxType = "ADT"
	PaxChild  PaxType = "CHD"
	PaxInfant PaxType = "INF"
)

// Passenger is one traveller within a booking session. PaxID is synthetic
// and stable per type+index ("ADT-1", "CHD-2"). Passengers are never removed
// within a session, only reset with it.
type Passenger struct {
	PaxID string        `json:"paxId"`
	Type  PaxType       `json:"type"`
	Form  PassengerForm `json:"form"`
}

// PassengerForm holds the mutable personal fields collected from the user
type PassengerForm struct {
	Title       string `json:"title,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
}

// Complete reports whether the form can be submitted to the backend
func (f PassengerForm) Complete() bool {
	return f.FirstName != "" && f.LastName != "" && f.Gender != "" && f.DateOfBirth != ""
}

// Contact holds the booking-level contact details
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c Contact) Complete() bool {
	return c.Email != "" && c.Phone != ""
}

// BuildRoster derives the passenger list from per-type counts. IDs are
// assigned in ADT, CHD, INF order so a given count set always produces
// the same roster.
func BuildRoster(adults, children, infants int) []Passenger {
	roster := make([]Passenger, 0, adults+children+infants)
	appendType := func(paxType PaxType, count int) {
		for i := 1; i <= count; i++ {
			roster = append(roster, Passenger{
				PaxID: fmt.Sprintf("%s-%d", paxType, i),
				Type:  paxType,
			})
		}
	}
	appendType(PaxAdult, adults)
	appendType(PaxChild, children)
	appendType(PaxInfant, infants)
	return roster
}
