package contract

import (
	"context"

	"policytrack/internal/domain/entity"
)

// IAbuseReportRepository persists rejected vote attempts for later review.
type IAbuseReportRepository interface {
	Record(ctx context.Context, report *entity.AbuseReport) error
	ListRecent(ctx context.Context, limit int64) ([]entity.AbuseReport, error)
}
