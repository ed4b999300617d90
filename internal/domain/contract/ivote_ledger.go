package contract

import (
	"context"

	"policytrack/internal/domain/entity"
)

// IVoteLedger is the authoritative store of vote edges and subject like
// counters. Reads outside a transaction serve the status path; every write
// goes through an IVoteTx so the check/read/mutate/log sequence is atomic.
type IVoteLedger interface {
	// LikeCount returns the denormalized like counter of the subject, or 0
	// when the subject node does not exist.
	LikeCount(ctx context.Context, subjectType entity.SubjectType, subjectID int64) (int64, error)

	// HasVoteEdge reports whether a live vote edge exists for the pair.
	HasVoteEdge(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) (bool, error)

	// RecountLikes counts live vote edges into the subject, writes the result
	// back to the subject's counter and returns it.
	RecountLikes(ctx context.Context, subjectType entity.SubjectType, subjectID int64) (int64, error)

	// BeginWrite opens a write transaction. The caller must finish it with
	// Commit or Rollback and release the underlying session with Close.
	BeginWrite(ctx context.Context) (IVoteTx, error)
}

// IVoteTx is a single write transaction against the vote ledger.
type IVoteTx interface {
	// LikedFromIPByOther reports whether any fingerprint other than the given
	// one, sharing the given IP, holds a live vote edge to the subject.
	LikedFromIPByOther(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint, ip string) (bool, error)

	// HasVoteEdge reports whether a live vote edge exists for the pair, as
	// seen by this transaction.
	HasVoteEdge(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) (bool, error)

	// CountRecentVotes counts the fingerprint's vote edges created within the
	// trailing window, across all subjects of every type. The velocity budget
	// is per fingerprint, not per subject kind.
	CountRecentVotes(ctx context.Context, fingerprint string, windowSeconds int64) (int64, error)

	// CreateVoteEdge upserts the fingerprint and subject nodes, creates the
	// vote edge carrying the client metadata and increments both the
	// subject's like counter and the fingerprint's running like count.
	CreateVoteEdge(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo) error

	// RemoveVoteEdge deletes the vote edge and decrements the subject's like
	// counter, flooring it at zero.
	RemoveVoteEdge(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) error

	// AppendVoteLog appends an immutable log entry for the action.
	AppendVoteLog(ctx context.Context, entry entity.VoteLogEntry) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Close releases the session backing the transaction. Safe to call after
	// Commit or Rollback; rolls back a still-open transaction.
	Close(ctx context.Context) error
}
