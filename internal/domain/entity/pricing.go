package entity

// TaxLine is one tax or fee attached to a pricing line
type TaxLine struct {
	TaxCode string  `json:"taxCode"`
	Amount  float64 `json:"amount"`
}

// PricingLine is one normalized fare line from the pricing response.
// Amounts may be per passenger or already multiplied by PaxCount depending
// on the backend shape; the aggregator resolves that ambiguity against the
// API-provided grand total.
type PricingLine struct {
	PaxTypeCode            string    `json:"paxTypeCode"`
	PaxCount               int       `json:"paxCount"`
	FareAmount             float64   `json:"fareAmount"`
	FareAmountIncludingTax float64   `json:"fareAmountIncludingTax"`
	Taxes                  []TaxLine `json:"taxesAndFees"`
}

// FareSummary is the derived total view consumed by the UI. It is recomputed
// from the cached pricing response plus effective selections, never stored.
type FareSummary struct {
	BaseTotal     float64 `json:"baseTotal"`
	TaxTotalExVAT float64 `json:"taxTotalExVat"`
	VATTotal      float64 `json:"vatTotal"`
	AirTotal      float64 `json:"airTotal"`
	SeatTotal     float64 `json:"seatTotal"`
	BaggageTotal  float64 `json:"baggageTotal"`
	MealTotal     float64 `json:"mealTotal"`
	AddonsTotal   float64 `json:"addonsTotal"`
	TripTotal     float64 `json:"tripTotal"`
	Currency      string  `json:"currency"`
}
