package store

import (
	"testing"

	"bookingflow-service/internal/domain/entity"
)

func TestRequestKeyStableAcrossOrder(t *testing.T) {
	out := entity.OfferLeg{JourneyKey: "J-OUT", FareKey: "F1", Direction: entity.DirectionOut}
	in := entity.OfferLeg{JourneyKey: "J-IN", FareKey: "F2", Direction: entity.DirectionIn}

	a := RequestKey([]entity.OfferLeg{out, in})
	b := RequestKey([]entity.OfferLeg{in, out})
	if a != b {
		t.Fatalf("key depends on order: %q vs %q", a, b)
	}
	if a != "J-IN|F2;J-OUT|F1" {
		t.Fatalf("key = %q; want sorted journeyKey|fareKey pairs", a)
	}
}

func TestRequestKeyExcludesInvalidLegs(t *testing.T) {
	legs := []entity.OfferLeg{
		{JourneyKey: "J-OUT", FareKey: "F1"},
		{JourneyKey: "J-IN"}, // missing fareKey, not bookable
	}
	if got := RequestKey(legs); got != "J-OUT|F1" {
		t.Fatalf("key = %q; want invalid leg excluded", got)
	}
	if got := RequestKey(nil); got != "" {
		t.Fatalf("key for no legs = %q; want empty", got)
	}
}

func TestOfferLegStoreCapsAtTwo(t *testing.T) {
	s := NewOfferLegStore()
	s.SetLegs([]entity.OfferLeg{
		{JourneyKey: "J1", FareKey: "F1"},
		{JourneyKey: "J2", FareKey: "F2"},
		{JourneyKey: "J3", FareKey: "F3"},
	})
	if got := len(s.Legs()); got != 2 {
		t.Fatalf("stored %d legs; want 2", got)
	}
}

func TestOfferLegStoreValidLegs(t *testing.T) {
	s := NewOfferLegStore()
	s.SetLegs([]entity.OfferLeg{
		{JourneyKey: "J1", FareKey: "F1"},
		{FareKey: "F2"},
	})
	valid := s.ValidLegs()
	if len(valid) != 1 || valid[0].JourneyKey != "J1" {
		t.Fatalf("valid legs = %+v; want only J1", valid)
	}

	s.Clear()
	if len(s.Legs()) != 0 {
		t.Fatal("clear should empty the store")
	}
}
