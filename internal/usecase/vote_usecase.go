package usecase

import (
	"context"
	"errors"
	"fmt"

	"policytrack/internal/domain/contract"
	"policytrack/internal/domain/entity"
	"policytrack/internal/infrastructure/metrics"
	usecasecontract "policytrack/internal/usecase/contract"
)

// Rejection sentinels. Handlers map these to HTTP statuses; the messages are
// the user-visible texts.
var (
	// ErrRateLimited is returned when the per-IP request counter for the
	// method class is exhausted.
	ErrRateLimited = errors.New("too many requests")

	// ErrCooldownActive is returned when the fingerprint toggled a vote
	// within the cooldown window.
	ErrCooldownActive = errors.New("please wait before liking again")

	// ErrNetworkAlreadyVoted is returned when another fingerprint from the
	// same IP already holds a live vote on the subject.
	ErrNetworkAlreadyVoted = errors.New("already liked from this network")

	// ErrSuspiciousActivity is returned when the fingerprint exceeded the
	// velocity threshold within the rolling window.
	ErrSuspiciousActivity = errors.New("suspicious activity detected")
)

// VoteUsecase handles the business logic of the vote toggle and status paths.
// The ledger transaction is the sole point of mutual exclusion; the cache is
// advisory and every cache failure degrades to "consult the ledger".
type VoteUsecase struct {
	ledger    contract.IVoteLedger
	cache     contract.IVoteCache
	abuseRepo contract.IAbuseReportRepository
	logger    usecasecontract.IAppLogger
	config    usecasecontract.IConfigProvider
}

// NewVoteUsecase creates and returns a new VoteUsecase instance.
func NewVoteUsecase(ledger contract.IVoteLedger, cache contract.IVoteCache, logger usecasecontract.IAppLogger, config usecasecontract.IConfigProvider) *VoteUsecase {
	return &VoteUsecase{
		ledger: ledger,
		cache:  cache,
		logger: logger,
		config: config,
	}
}

// SetAbuseReportRepository wires the optional review sink for rejected votes.
func (u *VoteUsecase) SetAbuseReportRepository(repo contract.IAbuseReportRepository) {
	u.abuseRepo = repo
}

// ToggleVote flips the vote state of (fingerprint, subject) inside one ledger
// transaction: same-IP check, current-state read, velocity check, mutation and
// log append, in that order. The returned count is recomputed from the edge
// set after commit, so the visible number always matches the ledger.
//
// The cooldown marker is set as soon as the cooldown check passes and is not
// undone when a later step fails, so a failed attempt still throttles retries.
func (u *VoteUsecase) ToggleVote(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo) (*entity.VoteReceipt, error) {
	if !u.cache.AllowRequest(ctx, contract.MethodClassWrite, client.IP) {
		metrics.RejectionsTotal.WithLabelValues("rate_limit").Inc()
		return nil, ErrRateLimited
	}
	if u.cache.IsCoolingDown(ctx, fingerprint) {
		metrics.RejectionsTotal.WithLabelValues("cooldown").Inc()
		return nil, ErrCooldownActive
	}
	u.cache.SetCooldown(ctx, fingerprint)

	tx, err := u.ledger.BeginWrite(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer func() {
		if err := tx.Close(ctx); err != nil {
			u.logger.Errorf("failed to close vote transaction: %v", err)
		}
	}()

	likedByOther, err := tx.LikedFromIPByOther(ctx, subjectType, subjectID, fingerprint, client.IP)
	if err != nil {
		return nil, u.rollback(ctx, tx, err)
	}
	if likedByOther {
		u.rejectForAbuse(ctx, tx, subjectType, subjectID, fingerprint, client, entity.AbuseReasonNetworkDuplicate)
		return nil, ErrNetworkAlreadyVoted
	}

	// Cached flag is a fast path for the positive case only; when it is
	// absent the ledger decides.
	hasVoted := u.cache.HasVoteFlag(ctx, subjectType, subjectID, fingerprint)
	if !hasVoted {
		hasVoted, err = tx.HasVoteEdge(ctx, subjectType, subjectID, fingerprint)
		if err != nil {
			return nil, u.rollback(ctx, tx, err)
		}
	}

	windowSeconds := int64(u.config.GetVelocityWindow().Seconds())
	recentVotes, err := tx.CountRecentVotes(ctx, fingerprint, windowSeconds)
	if err != nil {
		return nil, u.rollback(ctx, tx, err)
	}
	if recentVotes > int64(u.config.GetVelocityLimit()) {
		u.rejectForAbuse(ctx, tx, subjectType, subjectID, fingerprint, client, entity.AbuseReasonVelocity)
		return nil, ErrSuspiciousActivity
	}

	action := entity.VoteActionLiked
	if hasVoted {
		action = entity.VoteActionUnliked
		if err := tx.RemoveVoteEdge(ctx, subjectType, subjectID, fingerprint); err != nil {
			return nil, u.rollback(ctx, tx, err)
		}
	} else {
		if err := tx.CreateVoteEdge(ctx, subjectType, subjectID, fingerprint, client); err != nil {
			return nil, u.rollback(ctx, tx, err)
		}
	}

	logEntry := entity.VoteLogEntry{
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Fingerprint: fingerprint,
		IP:          client.IP,
		UserAgent:   client.UserAgent,
	}
	if err := tx.AppendVoteLog(ctx, logEntry); err != nil {
		return nil, u.rollback(ctx, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vote transaction: %w", err)
	}

	if action == entity.VoteActionLiked {
		u.cache.SetVoteFlag(ctx, subjectType, subjectID, fingerprint)
	} else {
		u.cache.ClearVoteFlag(ctx, subjectType, subjectID, fingerprint)
	}

	// Self-heal: the counter returned to the client is recomputed from the
	// live edge set, never the incrementally maintained property.
	count, err := u.ledger.RecountLikes(ctx, subjectType, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to recount likes after toggle: %w", err)
	}

	metrics.VotesTotal.WithLabelValues(string(subjectType), string(action)).Inc()
	return &entity.VoteReceipt{Like: count, Action: action}, nil
}

// VoteStatus returns the authoritative like count and, when a fingerprint is
// supplied, whether that fingerprint currently holds a vote. The cached flag
// is populated only on a positive ledger answer.
func (u *VoteUsecase) VoteStatus(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo) (*entity.VoteStatus, error) {
	if !u.cache.AllowRequest(ctx, contract.MethodClassRead, client.IP) {
		metrics.RejectionsTotal.WithLabelValues("rate_limit").Inc()
		return nil, ErrRateLimited
	}

	count, err := u.ledger.LikeCount(ctx, subjectType, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to read like count: %w", err)
	}

	isLiked := false
	if fingerprint != "" {
		if u.cache.HasVoteFlag(ctx, subjectType, subjectID, fingerprint) {
			isLiked = true
		} else {
			isLiked, err = u.ledger.HasVoteEdge(ctx, subjectType, subjectID, fingerprint)
			if err != nil {
				return nil, fmt.Errorf("failed to read vote edge: %w", err)
			}
			if isLiked {
				u.cache.SetVoteFlag(ctx, subjectType, subjectID, fingerprint)
			}
		}
	}

	return &entity.VoteStatus{Like: count, IsLiked: isLiked}, nil
}

// RecentAbuseReports returns the latest recorded abuse rejections, newest
// first. Without a wired sink there is nothing to review and the list is
// empty.
func (u *VoteUsecase) RecentAbuseReports(ctx context.Context, limit int64) ([]entity.AbuseReport, error) {
	if u.abuseRepo == nil {
		return []entity.AbuseReport{}, nil
	}
	reports, err := u.abuseRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list abuse reports: %w", err)
	}
	return reports, nil
}

// rollback rolls the transaction back and wraps the triggering error.
func (u *VoteUsecase) rollback(ctx context.Context, tx contract.IVoteTx, cause error) error {
	if err := tx.Rollback(ctx); err != nil {
		u.logger.Errorf("rollback failed: %v", err)
	}
	return fmt.Errorf("vote transaction aborted: %w", cause)
}

// rejectForAbuse rolls back, bumps the rejection metric and records the
// attempt for review. Recording is best effort; a sink failure is logged and
// never surfaced to the caller.
func (u *VoteUsecase) rejectForAbuse(ctx context.Context, tx contract.IVoteTx, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo, reason string) {
	if err := tx.Rollback(ctx); err != nil {
		u.logger.Errorf("rollback failed: %v", err)
	}
	metrics.RejectionsTotal.WithLabelValues(reason).Inc()
	u.logger.Warnf("vote rejected (%s): subject=%s/%d fingerprint=%s ip=%s", reason, subjectType, subjectID, fingerprint, client.IP)

	if u.abuseRepo == nil {
		return
	}
	report := &entity.AbuseReport{
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Fingerprint: fingerprint,
		IP:          client.IP,
		UserAgent:   client.UserAgent,
		Reason:      reason,
	}
	if err := u.abuseRepo.Record(ctx, report); err != nil {
		u.logger.Errorf("failed to record abuse report: %v", err)
	}
}
