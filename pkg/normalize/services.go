package normalize

import (
	"bookingflow-service/internal/domain/entity"
)

// ExtractServiceBundle picks the recognized ancillary entries for a kind out
// of one leg object of a priced response. For baggage the slots are the
// checked bag (BGxx) and sports bag (SBxx); for meal they are the meal
// (MHxx/MSxx) and beverage (BEVn). Entries outside the kind's code families
// are ignored entirely.
func ExtractServiceBundle(leg interface{}, kind entity.ServiceKind) entity.ServiceBundle {
	bundle := entity.ServiceBundle{}
	walkMaps(leg, func(node map[string]interface{}) bool {
		code := getString(node, "ssrCode", "serviceCode", "code")
		if code == "" || !ServiceCodeMatchesKind(code, string(kind)) {
			return true
		}
		item := serviceItemFrom(node, code)
		switch kind {
		case entity.ServiceBaggage:
			if bundle.Primary == nil && baggagePrimaryRe.MatchString(code) {
				bundle.Primary = item
			} else if bundle.Secondary == nil && baggageSecondaryRe.MatchString(code) {
				bundle.Secondary = item
			}
		case entity.ServiceMeal:
			if bundle.Primary == nil && mealPrimaryRe.MatchString(code) {
				bundle.Primary = item
			} else if bundle.Secondary == nil && BeverageRe.MatchString(code) {
				bundle.Secondary = item
			}
		}
		return true
	})
	return bundle
}

// ExtractServiceBundleForJourney narrows a full priced response to the leg
// object carrying the journeyKey before extracting the bundle. When no node
// names the journey the whole document is scanned, which matches the
// single-leg responses some backend shapes return.
func ExtractServiceBundleForJourney(pricing interface{}, journeyKey string, kind entity.ServiceKind) entity.ServiceBundle {
	var legNode map[string]interface{}
	if journeyKey != "" {
		walkMaps(pricing, func(node map[string]interface{}) bool {
			if legNode != nil {
				return false
			}
			if getString(node, "journeyKey", "journeySellKey") == journeyKey {
				legNode = node
				return false
			}
			return true
		})
	}
	if legNode != nil {
		return ExtractServiceBundle(legNode, kind)
	}
	return ExtractServiceBundle(pricing, kind)
}

func serviceItemFrom(node map[string]interface{}, code string) *entity.ServiceItem {
	amount, _ := getNumber(node, "amount", "price")
	return &entity.ServiceItem{
		SSRCode:     code,
		Amount:      amount,
		Currency:    getString(node, "currency", "currencyCode"),
		VAT:         sumVAT(node["vat"]),
		Description: getString(node, "description", "name"),
	}
}
