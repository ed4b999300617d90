package usecasecontract

import (
	"context"

	"policytrack/internal/domain/entity"
)

// IVoteUseCase defines the interface for the vote toggle, status and abuse
// review paths.
type IVoteUseCase interface {
	ToggleVote(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo) (*entity.VoteReceipt, error)
	VoteStatus(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo) (*entity.VoteStatus, error)
	RecentAbuseReports(ctx context.Context, limit int64) ([]entity.AbuseReport, error)
}
