package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"policytrack/internal/domain/contract"
	"policytrack/internal/domain/entity"
)

// AbuseReportRepository represents the MongoDB implementation of the
// IAbuseReportRepository interface. Reports are write-once records kept for
// later review of rejected vote attempts.
type AbuseReportRepository struct {
	collection *mongo.Collection
}

var _ contract.IAbuseReportRepository = (*AbuseReportRepository)(nil)

// NewAbuseReportRepository creates and returns a new AbuseReportRepository instance.
func NewAbuseReportRepository(db *mongo.Database) *AbuseReportRepository {
	return &AbuseReportRepository{
		collection: db.Collection("abuse_reports"),
	}
}

// Record inserts a new abuse report.
func (r *AbuseReportRepository) Record(ctx context.Context, report *entity.AbuseReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert abuse report: %w", err)
	}
	return nil
}

// ListRecent returns the most recent abuse reports, newest first.
func (r *AbuseReportRepository) ListRecent(ctx context.Context, limit int64) ([]entity.AbuseReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query abuse reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []entity.AbuseReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode abuse reports: %w", err)
	}
	return reports, nil
}
