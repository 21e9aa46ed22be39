package normalize

import (
	"testing"

	"bookingflow-service/internal/domain/entity"
)

const pricedLegFixture = `{
	"journeyKey": "BKK-CNX-20250901-DD120",
	"services": [
		{"ssrCode": "REFUND", "amount": 500},
		{"ssrCode": "BG15", "amount": 300, "currency": "THB", "description": "15kg checked bag"},
		{"ssrCode": "BG20", "amount": 450},
		{"ssrCode": "SB10", "amount": 600, "description": "sports equipment"},
		{"ssrCode": "MH01", "amount": 120, "description": "chicken rice"},
		{"ssrCode": "BEV2", "amount": 40}
	]
}`

func TestExtractServiceBundleBaggage(t *testing.T) {
	leg := decodeFixture(t, pricedLegFixture)

	bundle := ExtractServiceBundle(leg, entity.ServiceBaggage)
	if bundle.Primary == nil || bundle.Primary.SSRCode != "BG15" {
		t.Fatalf("primary = %+v; want first BG code BG15", bundle.Primary)
	}
	if bundle.Secondary == nil || bundle.Secondary.SSRCode != "SB10" {
		t.Fatalf("secondary = %+v; want sports bag SB10", bundle.Secondary)
	}
	if bundle.Primary.Amount != 300 || bundle.Primary.Currency != "THB" {
		t.Errorf("primary item = %+v; want amount and currency carried over", bundle.Primary)
	}
	if bundle.Amount() != 900 {
		t.Errorf("bundle amount = %v; want 900", bundle.Amount())
	}
}

func TestExtractServiceBundleMeal(t *testing.T) {
	leg := decodeFixture(t, pricedLegFixture)

	bundle := ExtractServiceBundle(leg, entity.ServiceMeal)
	if bundle.Primary == nil || bundle.Primary.SSRCode != "MH01" {
		t.Fatalf("primary = %+v; want meal MH01", bundle.Primary)
	}
	if bundle.Secondary == nil || bundle.Secondary.SSRCode != "BEV2" {
		t.Fatalf("secondary = %+v; want beverage BEV2", bundle.Secondary)
	}
}

func TestExtractServiceBundleIgnoresForeignCodes(t *testing.T) {
	leg := decodeFixture(t, `{"services": [
		{"ssrCode": "REFUND", "amount": 500},
		{"ssrCode": "XYZ1", "amount": 10}
	]}`)

	bundle := ExtractServiceBundle(leg, entity.ServiceBaggage)
	if bundle.Primary != nil || bundle.Secondary != nil {
		t.Fatalf("bundle = %+v; want empty, unrecognized codes ignored", bundle)
	}
}

func TestExtractServiceBundleForJourney(t *testing.T) {
	pricing := decodeFixture(t, `{
		"journeys": [
			{"journeyKey": "BKK-CNX-20250901-DD120", "services": [{"ssrCode": "BG15", "amount": 300}]},
			{"journeyKey": "CNX-BKK-20250905-DD121", "services": [{"ssrCode": "BG20", "amount": 450}]}
		]
	}`)

	bundle := ExtractServiceBundleForJourney(pricing, "CNX-BKK-20250905-DD121", entity.ServiceBaggage)
	if bundle.Primary == nil || bundle.Primary.SSRCode != "BG20" {
		t.Fatalf("primary = %+v; want BG20 from the matching journey", bundle.Primary)
	}

	// An unknown journey falls back to scanning the whole document
	bundle = ExtractServiceBundleForJourney(pricing, "missing", entity.ServiceBaggage)
	if bundle.Primary == nil || bundle.Primary.SSRCode != "BG15" {
		t.Fatalf("primary = %+v; want BG15 from the full scan", bundle.Primary)
	}
}

func TestExtractServiceBundleStableAcrossSiblings(t *testing.T) {
	// Candidate codes live under sibling keys; the pick must not depend on
	// map iteration order
	const doc = `{
		"zz": {"ssrCode": "BG20", "amount": 450},
		"aa": {"ssrCode": "BG15", "amount": 300}
	}`
	for i := 0; i < 50; i++ {
		bundle := ExtractServiceBundle(decodeFixture(t, doc), entity.ServiceBaggage)
		if bundle.Primary == nil || bundle.Primary.SSRCode != "BG15" {
			t.Fatalf("run %d: primary = %+v; want BG15 under the first sorted key", i, bundle.Primary)
		}
	}
}

func TestExtractServiceBundleNil(t *testing.T) {
	bundle := ExtractServiceBundle(nil, entity.ServiceMeal)
	if len(bundle.Items()) != 0 {
		t.Fatalf("nil leg should yield empty bundle, got %+v", bundle)
	}
}
