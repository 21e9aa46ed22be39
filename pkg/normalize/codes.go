package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Accepted code families, centralized so selection, normalization and the
// payload builder cannot drift apart. Anything outside these families (for
// example refund SSRs carried over from the priced API) is dropped before
// a booking payload is built.
var (
	SeatCodeRe = regexp.MustCompile(`^(\d{1,2})([A-Z])$`)
	BaggageRe  = regexp.MustCompile(`^(?:BG|SB)\d{2}$`)
	MealRe     = regexp.MustCompile(`^(?:MH|MS)\d{2}$`)
	BeverageRe = regexp.MustCompile(`^BEV\d+$`)
)

// Slot-level patterns within a family
var (
	baggagePrimaryRe   = regexp.MustCompile(`^BG\d{2}$`)
	baggageSecondaryRe = regexp.MustCompile(`^SB\d{2}$`)
	mealPrimaryRe      = regexp.MustCompile(`^(?:MH|MS)\d{2}$`)
)

// journeyKey token patterns. A journeyKey is an opaque encoded token such as
// "BKK-DMK-20250901-DD506"; tokens are extracted best effort and a failed
// match yields an empty field, never an error.
var (
	journeyRouteRe    = regexp.MustCompile(`([A-Z]{3})[-_ ]?([A-Z]{3})`)
	journeyDateRe     = regexp.MustCompile(`(\d{8})`)
	journeyFlightNoRe = regexp.MustCompile(`([A-Z]{2}\d{2,4})`)
)

// JourneyInfo holds the tokens parsed out of a journeyKey
type JourneyInfo struct {
	Origin       string
	Destination  string
	Date         string
	FlightNumber string
}

// ParseJourneyKey extracts route, date and flight number tokens from a
// journeyKey. Fields that cannot be matched stay empty.
func ParseJourneyKey(journeyKey string) JourneyInfo {
	info := JourneyInfo{}
	if journeyKey == "" {
		return info
	}

	if m := journeyRouteRe.FindStringSubmatch(journeyKey); m != nil {
		info.Origin = m[1]
		info.Destination = m[2]
	}
	if m := journeyDateRe.FindStringSubmatch(journeyKey); m != nil {
		info.Date = m[1]
	}
	// The route token can also look like a flight number prefix, so search
	// past the route match when one was found.
	rest := journeyKey
	if info.Destination != "" {
		if idx := strings.Index(journeyKey, info.Destination); idx >= 0 {
			rest = journeyKey[idx+len(info.Destination):]
		}
	}
	if m := journeyFlightNoRe.FindStringSubmatch(rest); m != nil {
		info.FlightNumber = m[1]
	} else if m := journeyFlightNoRe.FindStringSubmatch(journeyKey); m != nil {
		info.FlightNumber = m[1]
	}
	return info
}

// SplitSeatCode decomposes a seat code like "12A" into row and letter
func SplitSeatCode(code string) (int, string, bool) {
	m := SeatCodeRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(code)))
	if m == nil {
		return 0, "", false
	}
	row, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return row, m[2], true
}

// ServiceCodeAllowed reports whether an SSR code belongs to a recognized
// family and may be forwarded to the booking backend
func ServiceCodeAllowed(code string) bool {
	return BaggageRe.MatchString(code) || MealRe.MatchString(code) || BeverageRe.MatchString(code)
}

// ServiceCodeMatchesKind reports whether an SSR code belongs to the family
// of the given ancillary kind
func ServiceCodeMatchesKind(code string, kind string) bool {
	switch kind {
	case "baggage":
		return BaggageRe.MatchString(code)
	case "meal":
		return MealRe.MatchString(code) || BeverageRe.MatchString(code)
	}
	return false
}
