package usecase

import (
	"math"
	"strings"

	"bookingflow-service/internal/domain/entity"
	"bookingflow-service/internal/store"
	"bookingflow-service/pkg/normalize"
)

// totalEpsilon is the tolerance when reconciling computed totals against
// the API-provided grand total
const totalEpsilon = 1.0

type fareTotals struct {
	base     float64
	taxExVAT float64
	vat      float64
	air      float64
}

// Summarize combines the normalized pricing lines with the effective
// (draft-preferred) selections into one fare summary.
//
// Pricing lines are ambiguous upstream: amounts are either per passenger
// ("per unit") or already multiplied by the passenger count ("per group")
// depending on the backend version. Both readings are computed and the one
// that reconstructs the API-provided grand total most closely wins; on a
// tie, and when no grand total is present, the per-unit reading is used.
func Summarize(
	pricing interface{},
	legs []entity.OfferLeg,
	paxIDs []string,
	seats *store.SeatSelectionStore,
	baggage *store.AddOnStore,
	meals *store.AddOnStore,
	currency string,
) entity.FareSummary {
	summary := entity.FareSummary{Currency: currency}

	var perUnit, perGroup fareTotals
	for _, line := range normalize.ExtractPricingLines(pricing) {
		vat, taxExVAT := 0.0, 0.0
		for _, tax := range line.Taxes {
			if isVATCode(tax.TaxCode) {
				vat += tax.Amount
			} else {
				taxExVAT += tax.Amount
			}
		}

		perGroup.base += line.FareAmount
		perGroup.taxExVAT += taxExVAT
		perGroup.vat += vat
		perGroup.air += line.FareAmountIncludingTax

		count := float64(line.PaxCount)
		perUnit.base += line.FareAmount * count
		perUnit.taxExVAT += taxExVAT * count
		perUnit.vat += vat * count
		perUnit.air += line.FareAmountIncludingTax * count
	}

	chosen := perUnit
	if apiTotal, ok := normalize.TotalAmount(pricing); ok {
		if math.Abs(perGroup.air-apiTotal) < math.Abs(perUnit.air-apiTotal) {
			chosen = perGroup
		}
		// Snap to the authoritative total when within rounding distance
		if math.Abs(chosen.air-apiTotal) <= totalEpsilon {
			chosen.air = apiTotal
		}
	}

	summary.BaseTotal = chosen.base
	summary.TaxTotalExVAT = chosen.taxExVAT
	summary.VATTotal = chosen.vat
	summary.AirTotal = chosen.air

	for _, leg := range entity.ValidLegs(legs) {
		for _, paxID := range paxIDs {
			if seat, ok := seats.Effective(paxID, leg.JourneyKey); ok {
				summary.SeatTotal += seat.Amount
			}
			if bundle, ok := baggage.Effective(paxID, leg.JourneyKey); ok {
				summary.BaggageTotal += bundle.Amount()
			}
			if bundle, ok := meals.Effective(paxID, leg.JourneyKey); ok {
				summary.MealTotal += bundle.Amount()
			}
		}
	}

	summary.AddonsTotal = summary.SeatTotal + summary.BaggageTotal + summary.MealTotal
	summary.TripTotal = summary.AirTotal + summary.AddonsTotal
	return summary
}

func isVATCode(code string) bool {
	return strings.HasPrefix(strings.ToUpper(code), "VAT")
}
