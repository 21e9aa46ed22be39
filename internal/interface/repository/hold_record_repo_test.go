package repository

import (
	"context"
	"testing"

	"bookingflow-service/internal/domain/entity"
)

func TestMemoryHoldRecordRepository(t *testing.T) {
	repo := NewMemoryHoldRecordRepository()
	ctx := context.Background()

	record := &entity.HoldRecord{SessionID: "sess-1", PNR: "ABC123", Currency: "THB", TripTotal: 1450}
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if record.ID == "" || record.CreatedAt.IsZero() {
		t.Fatalf("record = %+v; want generated ID and timestamps", record)
	}

	found, err := repo.FindByPNR(ctx, "ABC123")
	if err != nil {
		t.Fatalf("find by pnr: %v", err)
	}
	if found.SessionID != "sess-1" || found.TripTotal != 1450 {
		t.Errorf("found = %+v", found)
	}

	if _, err := repo.FindByPNR(ctx, "NOPE"); err == nil {
		t.Fatal("unknown pnr should error")
	}

	records, err := repo.FindBySession(ctx, "sess-1")
	if err != nil || len(records) != 1 {
		t.Fatalf("find by session = %+v, %v; want one record", records, err)
	}

	// Mutating the returned copy must not affect the stored record
	records[0].Status = "changed"
	again, _ := repo.FindBySession(ctx, "sess-1")
	if again[0].Status == "changed" {
		t.Fatal("repository must return copies")
	}
}
