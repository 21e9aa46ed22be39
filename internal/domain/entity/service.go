package entity

// ServiceKind identifies an ancillary family
type ServiceKind string

const (
	ServiceBaggage ServiceKind = "baggage"
	ServiceMeal    ServiceKind = "meal"
)

// ServiceItem is one ancillary service (bag, meal, beverage) priced per leg
type ServiceItem struct {
	SSRCode     string  `json:"ssrCode"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	VAT         float64 `json:"vat"`
	Description string  `json:"description,omitempty"`
}

// ServiceBundle holds up to two named service slots for one passenger and
// journey. For baggage the slots are checked bag / sports bag, for meal they
// are meal / beverage. Draft and confirm operate on the whole bundle.
type ServiceBundle struct {
	Primary   *ServiceItem `json:"primary,omitempty"`
	Secondary *ServiceItem `json:"secondary,omitempty"`
}

// Items returns the non-empty slots
func (b ServiceBundle) Items() []ServiceItem {
	items := make([]ServiceItem, 0, 2)
	if b.Primary != nil {
		items = append(items, *b.Primary)
	}
	if b.Secondary != nil {
		items = append(items, *b.Secondary)
	}
	return items
}

// Equal compares bundles by their SSR codes
func (b ServiceBundle) Equal(other ServiceBundle) bool {
	return slotCode(b.Primary) == slotCode(other.Primary) &&
		slotCode(b.Secondary) == slotCode(other.Secondary)
}

// Amount sums the amounts of all slots
func (b ServiceBundle) Amount() float64 {
	total := 0.0
	for _, item := range b.Items() {
		total += item.Amount
	}
	return total
}

func slotCode(item *ServiceItem) string {
	if item == nil {
		return ""
	}
	return item.SSRCode
}
