package repository

import (
	"context"
	"sync"
	"time"

	"bookingflow-service/internal/domain/entity"
	"bookingflow-service/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHoldRecordRepository implements HoldRecordRepository on MongoDB
type MongoHoldRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoHoldRecordRepository creates a new hold record repository
func NewMongoHoldRecordRepository(db *mongo.Database) repository.HoldRecordRepository {
	collection := db.Collection("hold_records")

	ctx := context.Background()
	pnrIndex := mongo.IndexModel{
		Keys:    bson.M{"pnr": 1},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
	collection.Indexes().CreateOne(ctx, pnrIndex)

	sessionIndex := mongo.IndexModel{
		Keys: bson.M{"sessionId": 1},
	}
	collection.Indexes().CreateOne(ctx, sessionIndex)

	return &MongoHoldRecordRepository{collection: collection}
}

// Upsert creates or updates a hold record, keyed by PNR
func (r *MongoHoldRecordRepository) Upsert(ctx context.Context, record *entity.HoldRecord) error {
	record.UpdatedAt = time.Now()
	if record.ID == "" {
		record.ID = uuid.NewString()
		record.CreatedAt = time.Now()
	}

	updateDoc := bson.M{
		"sessionId":   record.SessionID,
		"pnr":         record.PNR,
		"currency":    record.Currency,
		"tripTotal":   record.TripTotal,
		"journeyKeys": record.JourneyKeys,
		"paxCount":    record.PaxCount,
		"status":      record.Status,
		"submittedAt": record.SubmittedAt,
		"createdAt":   record.CreatedAt,
		"updatedAt":   record.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"pnr": record.PNR}
	if record.PNR == "" {
		filter = bson.M{"_id": record.ID}
		updateDoc["_id"] = record.ID
	}

	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": updateDoc}, opts)
	return err
}

// FindByPNR finds a hold record by record locator
func (r *MongoHoldRecordRepository) FindByPNR(ctx context.Context, pnr string) (*entity.HoldRecord, error) {
	var record entity.HoldRecord
	err := r.collection.FindOne(ctx, bson.M{"pnr": pnr}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindBySession lists the hold records submitted from one session
func (r *MongoHoldRecordRepository) FindBySession(ctx context.Context, sessionID string) ([]*entity.HoldRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.HoldRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MemoryHoldRecordRepository is the in-memory fallback used when MongoDB is
// not configured, and in tests
type MemoryHoldRecordRepository struct {
	mu      sync.RWMutex
	records map[string]*entity.HoldRecord
}

func NewMemoryHoldRecordRepository() *MemoryHoldRecordRepository {
	return &MemoryHoldRecordRepository{records: make(map[string]*entity.HoldRecord)}
}

func (r *MemoryHoldRecordRepository) Upsert(ctx context.Context, record *entity.HoldRecord) error {
	record.UpdatedAt = time.Now()
	if record.ID == "" {
		record.ID = uuid.NewString()
		record.CreatedAt = time.Now()
	}
	copied := *record

	r.mu.Lock()
	r.records[record.ID] = &copied
	r.mu.Unlock()
	return nil
}

func (r *MemoryHoldRecordRepository) FindByPNR(ctx context.Context, pnr string) (*entity.HoldRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.records {
		if record.PNR == pnr {
			copied := *record
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *MemoryHoldRecordRepository) FindBySession(ctx context.Context, sessionID string) ([]*entity.HoldRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []*entity.HoldRecord
	for _, record := range r.records {
		if record.SessionID == sessionID {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}
