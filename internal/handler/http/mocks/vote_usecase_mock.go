package mocks

import (
	"context"
	"errors"

	"policytrack/internal/domain/entity"
	"policytrack/internal/usecase"
	usecasecontract "policytrack/internal/usecase/contract"
)

// MockVoteUsecase is a mock implementation of the vote usecase interface
type MockVoteUsecase struct {
	// Control mock behavior
	ShouldRateLimit      bool
	ShouldCooldown       bool
	ShouldRejectNetwork  bool
	ShouldRejectVelocity bool
	ShouldFailInternal   bool

	// Return values
	MockReceipt entity.VoteReceipt
	MockStatus  entity.VoteStatus
	MockReports []entity.AbuseReport

	// Captured arguments of the last call
	LastSubjectType entity.SubjectType
	LastSubjectID   int64
	LastFingerprint string
	LastClient      entity.ClientInfo
}

// Ensure MockVoteUsecase implements the interface expected by the handler
var _ usecasecontract.IVoteUseCase = (*MockVoteUsecase)(nil)

func NewMockVoteUsecase() *MockVoteUsecase {
	return &MockVoteUsecase{
		MockReceipt: entity.VoteReceipt{Like: 1, Action: entity.VoteActionLiked},
		MockStatus:  entity.VoteStatus{Like: 1, IsLiked: true},
	}
}

func (m *MockVoteUsecase) rejectionError() error {
	switch {
	case m.ShouldRateLimit:
		return usecase.ErrRateLimited
	case m.ShouldCooldown:
		return usecase.ErrCooldownActive
	case m.ShouldRejectNetwork:
		return usecase.ErrNetworkAlreadyVoted
	case m.ShouldRejectVelocity:
		return usecase.ErrSuspiciousActivity
	case m.ShouldFailInternal:
		return errors.New("ledger unavailable")
	}
	return nil
}

func (m *MockVoteUsecase) ToggleVote(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo) (*entity.VoteReceipt, error) {
	m.LastSubjectType = subjectType
	m.LastSubjectID = subjectID
	m.LastFingerprint = fingerprint
	m.LastClient = client
	if err := m.rejectionError(); err != nil {
		return nil, err
	}
	receipt := m.MockReceipt
	return &receipt, nil
}

func (m *MockVoteUsecase) VoteStatus(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo) (*entity.VoteStatus, error) {
	m.LastSubjectType = subjectType
	m.LastSubjectID = subjectID
	m.LastFingerprint = fingerprint
	m.LastClient = client
	if err := m.rejectionError(); err != nil {
		return nil, err
	}
	status := m.MockStatus
	return &status, nil
}

func (m *MockVoteUsecase) RecentAbuseReports(ctx context.Context, limit int64) ([]entity.AbuseReport, error) {
	if m.ShouldFailInternal {
		return nil, errors.New("report sink unavailable")
	}
	if int64(len(m.MockReports)) > limit {
		return m.MockReports[:limit], nil
	}
	return m.MockReports, nil
}
