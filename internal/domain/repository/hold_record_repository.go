package repository

import (
	"context"

	"bookingflow-service/internal/domain/entity"
)

// HoldRecordRepository defines the interface for hold booking audit records
type HoldRecordRepository interface {
	Upsert(ctx context.Context, record *entity.HoldRecord) error
	FindByPNR(ctx context.Context, pnr string) (*entity.HoldRecord, error)
	FindBySession(ctx context.Context, sessionID string) ([]*entity.HoldRecord, error)
}
