package normalize

import (
	"bookingflow-service/internal/domain/entity"
)

// ExtractPricingLines collects the airlines[].pricingDetails[] fare lines
// from a pricing response. When no pricingDetails array exists anywhere,
// objects that individually look like fare lines are collected instead.
func ExtractPricingLines(pricing interface{}) []entity.PricingLine {
	lines := make([]entity.PricingLine, 0)

	walkMaps(pricing, func(node map[string]interface{}) bool {
		details := getSlice(node, "pricingDetails", "pricingDetail")
		if details == nil {
			return true
		}
		for _, raw := range details {
			detail, ok := asMap(raw)
			if !ok {
				continue
			}
			if line, ok := pricingLineFrom(detail); ok {
				lines = append(lines, line)
			}
		}
		return false
	})
	if len(lines) > 0 {
		return lines
	}

	walkMaps(pricing, func(node map[string]interface{}) bool {
		if line, ok := pricingLineFrom(node); ok {
			lines = append(lines, line)
			return false
		}
		return true
	})
	return lines
}

func pricingLineFrom(node map[string]interface{}) (entity.PricingLine, bool) {
	paxType := getString(node, "paxTypeCode", "paxType", "passengerType")
	fare, hasFare := getNumber(node, "fareAmount", "baseFare")
	if paxType == "" || !hasFare {
		return entity.PricingLine{}, false
	}

	count, hasCount := getNumber(node, "paxCount", "quantity", "count")
	if !hasCount || count <= 0 {
		count = 1
	}

	line := entity.PricingLine{
		PaxTypeCode: paxType,
		PaxCount:    int(count),
		FareAmount:  fare,
		Taxes:       taxLinesFrom(node),
	}

	if incl, ok := getNumber(node, "fareAmountIncludingTax", "totalFare"); ok {
		line.FareAmountIncludingTax = incl
	} else {
		line.FareAmountIncludingTax = fare
		for _, tax := range line.Taxes {
			line.FareAmountIncludingTax += tax.Amount
		}
	}
	return line, true
}

func taxLinesFrom(node map[string]interface{}) []entity.TaxLine {
	taxes := make([]entity.TaxLine, 0)
	for _, raw := range getSlice(node, "taxesAndFees", "taxes") {
		tax, ok := asMap(raw)
		if !ok {
			continue
		}
		amount, hasAmount := getNumber(tax, "amount", "taxAmount")
		if !hasAmount {
			continue
		}
		taxes = append(taxes, entity.TaxLine{
			TaxCode: getString(tax, "taxCode", "code"),
			Amount:  amount,
		})
	}
	return taxes
}

// TotalAmount finds the API-provided grand total; the first totalAmount
// encountered wins (root level in every known shape)
func TotalAmount(pricing interface{}) (float64, bool) {
	total := 0.0
	found := false
	walkMaps(pricing, func(node map[string]interface{}) bool {
		if found {
			return false
		}
		if value, ok := getNumber(node, "totalAmount", "grandTotal"); ok {
			total = value
			found = true
			return false
		}
		return true
	})
	return total, found
}
