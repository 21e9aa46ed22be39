package normalize

import "testing"

func TestExtractPricingLines(t *testing.T) {
	pricing := decodeFixture(t, `{
		"totalAmount": 2580,
		"airlines": [{
			"pricingDetails": [
				{
					"paxTypeCode": "ADT", "paxCount": 2,
					"fareAmount": 1000, "fareAmountIncludingTax": 1190,
					"taxesAndFees": [
						{"taxCode": "AIRPORT", "amount": 120},
						{"taxCode": "VAT7", "amount": 70}
					]
				},
				{
					"paxTypeCode": "CHD",
					"fareAmount": 180
				}
			]
		}]
	}`)

	lines := ExtractPricingLines(pricing)
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2", len(lines))
	}

	adult := lines[0]
	if adult.PaxTypeCode != "ADT" || adult.PaxCount != 2 {
		t.Errorf("adult line = %+v", adult)
	}
	if adult.FareAmountIncludingTax != 1190 || len(adult.Taxes) != 2 {
		t.Errorf("adult line = %+v; want explicit including-tax amount and 2 taxes", adult)
	}

	child := lines[1]
	if child.PaxCount != 1 {
		t.Errorf("missing paxCount should default to 1, got %d", child.PaxCount)
	}
	if child.FareAmountIncludingTax != 180 {
		t.Errorf("missing total should fall back to fare plus taxes, got %v", child.FareAmountIncludingTax)
	}
}

func TestExtractPricingLinesShapeFallback(t *testing.T) {
	// No pricingDetails array; objects that look like fare lines are
	// collected directly
	pricing := decodeFixture(t, `{
		"fares": {"economy": {"paxType": "ADT", "baseFare": 990}}
	}`)

	lines := ExtractPricingLines(pricing)
	if len(lines) != 1 || lines[0].PaxTypeCode != "ADT" || lines[0].FareAmount != 990 {
		t.Fatalf("lines = %+v; want single ADT line from shape fallback", lines)
	}
}

func TestExtractPricingLinesEmpty(t *testing.T) {
	if lines := ExtractPricingLines(nil); len(lines) != 0 {
		t.Fatalf("nil pricing should yield no lines, got %+v", lines)
	}
}

func TestTotalAmount(t *testing.T) {
	pricing := decodeFixture(t, `{"data": {"totalAmount": 2580.5}}`)
	total, ok := TotalAmount(pricing)
	if !ok || total != 2580.5 {
		t.Fatalf("total = %v, %v; want 2580.5, true", total, ok)
	}

	if _, ok := TotalAmount(map[string]interface{}{"other": 1.0}); ok {
		t.Fatal("missing total should report not found")
	}
}

func TestTotalAmountStableAcrossSiblings(t *testing.T) {
	// Two candidate totals under sibling branches; the pick must not depend
	// on map iteration order
	const doc = `{
		"quote": {"grandTotal": 900},
		"booking": {"totalAmount": 2580}
	}`
	for i := 0; i < 50; i++ {
		total, ok := TotalAmount(decodeFixture(t, doc))
		if !ok || total != 2580 {
			t.Fatalf("run %d: total = %v, %v; want 2580 from the first sorted branch", i, total, ok)
		}
	}
}
