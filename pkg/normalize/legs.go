package normalize

import (
	"sort"
	"strconv"
	"time"

	"bookingflow-service/internal/domain/entity"
)

// ExtractLegs crawls a pricing response for flight segments and returns a
// deduplicated list ordered by departure time. Known backend shapes are
// tried first through named adapters; the heuristic deep scan runs only as
// a last resort so behavior stays auditable per shape.
func ExtractLegs(pricing interface{}) []entity.FlightLeg {
	for _, adapt := range legAdapters {
		if legs := adapt(pricing); len(legs) > 0 {
			return finishLegs(legs)
		}
	}
	return finishLegs(deepCollectSegments(pricing))
}

var legAdapters = []func(interface{}) []entity.FlightLeg{
	legsFromJourneys,
	legsFromAirlines,
}

// legsFromJourneys handles the shape {data:{journeys:[{segments:[...]}]}}
// (journeys may also sit at the root)
func legsFromJourneys(pricing interface{}) []entity.FlightLeg {
	root, ok := asMap(pricing)
	if !ok {
		return nil
	}
	if data, ok := asMap(root["data"]); ok {
		root = data
	}
	journeys := getSlice(root, "journeys", "journey")
	if journeys == nil {
		return nil
	}

	var legs []entity.FlightLeg
	for _, rawJourney := range journeys {
		journey, ok := asMap(rawJourney)
		if !ok {
			continue
		}
		direction := directionFrom(journey)
		for _, rawSegment := range getSlice(journey, "segments", "segment") {
			segment, ok := asMap(rawSegment)
			if !ok {
				continue
			}
			if leg, ok := segmentToLeg(segment); ok {
				if leg.Direction == "" {
					leg.Direction = direction
				}
				legs = append(legs, leg)
			}
		}
	}
	return legs
}

// legsFromAirlines handles the shape {airlines:[{journeys:[...]}]} and the
// older {airlines:[{segments:[...]}]} variant
func legsFromAirlines(pricing interface{}) []entity.FlightLeg {
	root, ok := asMap(pricing)
	if !ok {
		return nil
	}
	if data, ok := asMap(root["data"]); ok {
		root = data
	}
	airlines := getSlice(root, "airlines")
	if airlines == nil {
		return nil
	}

	var legs []entity.FlightLeg
	for _, rawAirline := range airlines {
		airline, ok := asMap(rawAirline)
		if !ok {
			continue
		}
		if nested := legsFromJourneys(map[string]interface{}{"journeys": airline["journeys"]}); len(nested) > 0 {
			legs = append(legs, nested...)
			continue
		}
		for _, rawSegment := range getSlice(airline, "segments", "segment") {
			segment, ok := asMap(rawSegment)
			if !ok {
				continue
			}
			if leg, ok := segmentToLeg(segment); ok {
				legs = append(legs, leg)
			}
		}
	}
	return legs
}

// deepCollectSegments walks the whole document and keeps every object that
// looks like a flight segment
func deepCollectSegments(pricing interface{}) []entity.FlightLeg {
	var legs []entity.FlightLeg
	walkMaps(pricing, func(node map[string]interface{}) bool {
		if !looksLikeSegment(node) {
			return true
		}
		if leg, ok := segmentToLeg(node); ok {
			legs = append(legs, leg)
			return false
		}
		return true
	})
	return legs
}

// looksLikeSegment requires an origin, a destination and something that
// resembles a departure time
func looksLikeSegment(node map[string]interface{}) bool {
	if getString(node, "origin", "departureStation", "from") == "" {
		return false
	}
	if getString(node, "destination", "arrivalStation", "to") == "" {
		return false
	}
	return getString(node, "departureTime", "std", "depTime", "departure", "departureDateTime") != ""
}

func segmentToLeg(segment map[string]interface{}) (entity.FlightLeg, bool) {
	leg := entity.FlightLeg{
		Origin:       getString(segment, "origin", "departureStation", "from"),
		Destination:  getString(segment, "destination", "arrivalStation", "to"),
		FlightNumber: flightNumberFrom(segment),
		Direction:    directionFrom(segment),
		DepTime:      parseTime(getString(segment, "departureTime", "std", "depTime", "departure", "departureDateTime")),
		ArrTime:      parseTime(getString(segment, "arrivalTime", "sta", "arrTime", "arrival", "arrivalDateTime")),
	}
	if leg.Origin == "" || leg.Destination == "" {
		return entity.FlightLeg{}, false
	}
	return leg, true
}

func flightNumberFrom(segment map[string]interface{}) string {
	if number := getString(segment, "flightNumber", "flightNo"); number != "" {
		return number
	}
	// Some shapes split carrier and number
	carrier := getString(segment, "carrierCode", "airlineCode")
	if number, ok := getNumber(segment, "number"); ok && carrier != "" {
		return carrier + trimFloat(number)
	}
	return ""
}

func directionFrom(node map[string]interface{}) entity.Direction {
	switch getString(node, "direction", "tripType", "journeyType") {
	case "OUT", "out", "outbound", "Outbound", "depart":
		return entity.DirectionOut
	case "IN", "in", "inbound", "Inbound", "return":
		return entity.DirectionIn
	}
	return ""
}

// finishLegs deduplicates by (origin, destination, departure time), orders
// by departure time ascending and infers OUT/IN by order when the response
// did not carry an explicit direction
func finishLegs(legs []entity.FlightLeg) []entity.FlightLeg {
	if len(legs) == 0 {
		return []entity.FlightLeg{}
	}

	seen := make(map[string]bool, len(legs))
	unique := make([]entity.FlightLeg, 0, len(legs))
	for _, leg := range legs {
		key := leg.Origin + "|" + leg.Destination + "|" + leg.DepTime.Format(time.RFC3339)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, leg)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].DepTime.Before(unique[j].DepTime)
	})

	for i := range unique {
		if unique[i].Direction != "" {
			continue
		}
		if i == 0 {
			unique[i].Direction = entity.DirectionOut
		} else {
			unique[i].Direction = entity.DirectionIn
		}
	}
	return unique
}

func trimFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
