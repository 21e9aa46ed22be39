package usecase

import (
	"bookingflow-service/internal/domain/entity"
	"bookingflow-service/internal/store"
	"bookingflow-service/pkg/normalize"
)

// BuildBookingPayload assembles the submit-hold-booking body: one passenger
// record per roster entry, each carrying one flight-fare-key record per
// valid leg. Seats come from the effective (draft-preferred) view with the
// seat code decomposed into row and letter. Ancillaries are the union of
// the baggage and meal bundles, filtered down to the recognized code
// families and deduplicated by (flightNumber, ssrCode), first entry wins.
func BuildBookingPayload(
	passengers []entity.Passenger,
	contact entity.Contact,
	legs []entity.OfferLeg,
	seats *store.SeatSelectionStore,
	baggage *store.AddOnStore,
	meals *store.AddOnStore,
	currency string,
) *entity.BookingPayload {
	validLegs := entity.ValidLegs(legs)
	payload := &entity.BookingPayload{
		Currency:   currency,
		Contact:    contact,
		Passengers: make([]entity.PassengerInfo, 0, len(passengers)),
	}

	for _, pax := range passengers {
		info := entity.PassengerInfo{
			PaxID:         pax.PaxID,
			PaxType:       pax.Type,
			Title:         pax.Form.Title,
			FirstName:     pax.Form.FirstName,
			LastName:      pax.Form.LastName,
			Gender:        pax.Form.Gender,
			DateOfBirth:   pax.Form.DateOfBirth,
			FlightFareKey: make([]entity.FlightFareKey, 0, len(validLegs)),
		}

		for _, leg := range validLegs {
			flightNumber := normalize.ParseJourneyKey(leg.JourneyKey).FlightNumber
			record := entity.FlightFareKey{
				FareKey:      leg.FareKey,
				JourneyKey:   leg.JourneyKey,
				FlightNumber: flightNumber,
				SelectedSeat: selectedSeats(pax.PaxID, leg.JourneyKey, flightNumber, seats),
				ExtraService: extraServices(pax.PaxID, leg.JourneyKey, flightNumber, baggage, meals),
			}
			info.FlightFareKey = append(info.FlightFareKey, record)
		}

		payload.Passengers = append(payload.Passengers, info)
	}
	return payload
}

func selectedSeats(paxID, journeyKey, flightNumber string, seats *store.SeatSelectionStore) []entity.SelectedSeat {
	selected := make([]entity.SelectedSeat, 0, 1)
	seat, ok := seats.Effective(paxID, journeyKey)
	if !ok || seat.SeatCode == "" {
		return selected
	}

	row, letter, ok := normalize.SplitSeatCode(seat.SeatCode)
	if !ok {
		row, letter = seat.RowNumber, seat.SeatLetter
	}
	if row == 0 || letter == "" {
		return selected
	}
	return append(selected, entity.SelectedSeat{
		FlightNumber: flightNumber,
		RowNumber:    row,
		SeatSelected: letter,
	})
}

func extraServices(paxID, journeyKey, flightNumber string, baggage, meals *store.AddOnStore) []entity.ExtraService {
	services := make([]entity.ExtraService, 0, 4)
	seen := make(map[string]bool)

	appendItems := func(bundle entity.ServiceBundle) {
		for _, item := range bundle.Items() {
			if !normalize.ServiceCodeAllowed(item.SSRCode) {
				continue
			}
			dedupKey := flightNumber + "|" + item.SSRCode
			if seen[dedupKey] {
				continue
			}
			seen[dedupKey] = true
			services = append(services, entity.ExtraService{
				FlightNumber: flightNumber,
				SSRCode:      item.SSRCode,
				Amount:       item.Amount,
				Currency:     item.Currency,
			})
		}
	}

	if bundle, ok := baggage.Effective(paxID, journeyKey); ok {
		appendItems(bundle)
	}
	if bundle, ok := meals.Effective(paxID, journeyKey); ok {
		appendItems(bundle)
	}
	return services
}
