package contract

import (
	"context"

	"policytrack/internal/domain/entity"
)

// MethodClass separates read and write traffic for rate limiting.
type MethodClass string

const (
	MethodClassRead  MethodClass = "GET"
	MethodClassWrite MethodClass = "POST"
)

// IVoteCache is the best-effort cache in front of the vote ledger: rate-limit
// counters, cooldown markers and cached vote flags. Implementations must fail
// open — a cache outage degrades throttling and caching but never blocks a
// vote.
type IVoteCache interface {
	// AllowRequest applies the sliding-window counter for {method, ip} and
	// reports whether the request is within the configured limit.
	AllowRequest(ctx context.Context, method MethodClass, ip string) bool

	// IsCoolingDown reports whether a cooldown marker exists for the
	// fingerprint.
	IsCoolingDown(ctx context.Context, fingerprint string) bool

	// SetCooldown creates the cooldown marker for the fingerprint.
	SetCooldown(ctx context.Context, fingerprint string)

	// HasVoteFlag reports whether the cached "has voted" flag is set for the
	// pair. The flag is advisory; absence means "consult the ledger".
	HasVoteFlag(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) bool

	// SetVoteFlag records a positive "has voted" flag for the pair.
	SetVoteFlag(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string)

	// ClearVoteFlag removes the flag after an unlike.
	ClearVoteFlag(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string)
}
