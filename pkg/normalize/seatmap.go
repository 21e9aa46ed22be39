package normalize

import (
	"fmt"
	"sort"
	"strings"

	"bookingflow-service/internal/domain/entity"
)

// ExtractSeatCharges locates the raw seat-charge records for one leg inside
// a seat-map response. The item is matched by fareKey (exact first, then
// substring, then the first item), the segment by the flight-number token
// parsed out of the journeyKey (else the first segment).
func ExtractSeatCharges(seatMap interface{}, journeyKey, fareKey string) []entity.SeatCharge {
	item := findFareItem(seatMapItems(seatMap), fareKey)
	if item == nil {
		return []entity.SeatCharge{}
	}

	segment := findSegment(item, ParseJourneyKey(journeyKey).FlightNumber)
	if segment == nil {
		return []entity.SeatCharge{}
	}

	charges := make([]entity.SeatCharge, 0)
	for _, raw := range getSlice(segment, "seatCharges", "seats", "seatCharge") {
		node, ok := asMap(raw)
		if !ok {
			continue
		}
		if charge, ok := seatChargeFrom(node); ok {
			charges = append(charges, charge)
		}
	}
	return charges
}

// seatMapItems tolerates a top-level array, {data:[...]} and {items:[...]}
func seatMapItems(seatMap interface{}) []interface{} {
	if items, ok := asSlice(seatMap); ok {
		return items
	}
	if root, ok := asMap(seatMap); ok {
		return getSlice(root, "data", "items", "seatMaps")
	}
	return nil
}

func findFareItem(items []interface{}, fareKey string) map[string]interface{} {
	var first map[string]interface{}
	var partial map[string]interface{}
	for _, raw := range items {
		item, ok := asMap(raw)
		if !ok {
			continue
		}
		if first == nil {
			first = item
		}
		itemKey := getString(item, "fareKey", "fareSellKey")
		if fareKey != "" && itemKey == fareKey {
			return item
		}
		if partial == nil && fareKey != "" && itemKey != "" &&
			(strings.Contains(itemKey, fareKey) || strings.Contains(fareKey, itemKey)) {
			partial = item
		}
	}
	if partial != nil {
		return partial
	}
	return first
}

func findSegment(item map[string]interface{}, flightNumber string) map[string]interface{} {
	segments := getSlice(item, "segments", "segment")
	var first map[string]interface{}
	for _, raw := range segments {
		segment, ok := asMap(raw)
		if !ok {
			continue
		}
		if first == nil {
			first = segment
		}
		if flightNumber == "" {
			continue
		}
		segmentNumber := getString(segment, "flightNumber", "flightNo")
		if segmentNumber != "" && strings.Contains(strings.ReplaceAll(segmentNumber, " ", ""), flightNumber) {
			return segment
		}
	}
	return first
}

func seatChargeFrom(node map[string]interface{}) (entity.SeatCharge, bool) {
	row, hasRow := getNumber(node, "rowNumber", "row")
	letter := strings.ToUpper(getString(node, "seat", "seatLetter", "column"))
	code := getString(node, "seatCode", "seatNumber")
	if code == "" && hasRow && letter != "" {
		code = fmt.Sprintf("%d%s", int(row), letter)
	}
	if !hasRow {
		// Fall back to decomposing the seat code
		if r, l, ok := SplitSeatCode(code); ok {
			row, letter = float64(r), l
			hasRow = true
		}
	}
	if !hasRow || letter == "" {
		return entity.SeatCharge{}, false
	}

	amount, _ := getNumber(node, "amount", "price")
	charge := entity.SeatCharge{
		RowNumber:   int(row),
		SeatLetter:  letter,
		SeatCode:    code,
		Amount:      amount,
		Currency:    getString(node, "currency", "currencyCode"),
		VAT:         sumVAT(node["vat"]),
		Available:   getBool(node, "available", true),
		ServiceCode: getString(node, "serviceCode", "ssrCode"),
		Description: getString(node, "description"),
	}
	return charge, true
}

// sumVAT adds up per-charge VAT line items; the field is either a plain
// number or a list of {amount} records depending on the backend shape
func sumVAT(vat interface{}) float64 {
	switch value := vat.(type) {
	case float64:
		return value
	case []interface{}:
		total := 0.0
		for _, raw := range value {
			if node, ok := asMap(raw); ok {
				if amount, ok := getNumber(node, "amount", "vatAmount"); ok {
					total += amount
				}
			}
		}
		return total
	}
	return 0
}

// GroupSeatsByRow buckets seat charges by numeric row, each bucket sorted
// by seat letter, rows ascending
func GroupSeatsByRow(charges []entity.SeatCharge) []entity.SeatRow {
	byRow := make(map[int][]entity.SeatCharge)
	for _, charge := range charges {
		byRow[charge.RowNumber] = append(byRow[charge.RowNumber], charge)
	}

	rows := make([]entity.SeatRow, 0, len(byRow))
	for rowNumber, seats := range byRow {
		sort.SliceStable(seats, func(i, j int) bool {
			return seats[i].SeatLetter < seats[j].SeatLetter
		})
		rows = append(rows, entity.SeatRow{RowNumber: rowNumber, Seats: seats})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RowNumber < rows[j].RowNumber
	})
	return rows
}
