package neo4jdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"policytrack/internal/domain/contract"
	"policytrack/internal/domain/entity"
)

// VoteLedger is the Neo4j implementation of the IVoteLedger interface.
// Subjects are Policy/Campaign nodes with a `like` counter property,
// fingerprints are Fingerprint nodes and a vote is a LIKED relationship
// carrying the client metadata of the moment it was cast.
type VoteLedger struct {
	driver neo4j.DriverWithContext
}

var _ contract.IVoteLedger = (*VoteLedger)(nil)

// NewVoteLedger creates and returns a new VoteLedger instance.
func NewVoteLedger(driver neo4j.DriverWithContext) *VoteLedger {
	return &VoteLedger{driver: driver}
}

// subjectLabel maps the subject type to its node label. Labels cannot be
// query parameters, so the closed SubjectType enum is validated before being
// interpolated into Cypher.
func subjectLabel(subjectType entity.SubjectType) (string, error) {
	switch subjectType {
	case entity.SubjectTypePolicy, entity.SubjectTypeCampaign:
		return string(subjectType), nil
	default:
		return "", fmt.Errorf("unknown subject type %q", subjectType)
	}
}

// LikeCount returns the denormalized like counter of the subject, or 0 when
// the subject node does not exist.
func (l *VoteLedger) LikeCount(ctx context.Context, subjectType entity.SubjectType, subjectID int64) (int64, error) {
	label, err := subjectLabel(subjectType)
	if err != nil {
		return 0, err
	}

	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		fmt.Sprintf(`MATCH (p:%s { id: $pid }) RETURN coalesce(p.like, 0) AS like`, label),
		map[string]any{"pid": subjectID},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to query like count: %w", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to collect like count: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return recordInt64(records[0], "like")
}

// HasVoteEdge reports whether a live vote edge exists for the pair.
func (l *VoteLedger) HasVoteEdge(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) (bool, error) {
	label, err := subjectLabel(subjectType)
	if err != nil {
		return false, err
	}

	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		fmt.Sprintf(`MATCH (f:Fingerprint { id: $fp })-[:LIKED]->(p:%s { id: $pid }) RETURN COUNT(*) > 0 AS liked`, label),
		map[string]any{"fp": fingerprint, "pid": subjectID},
	)
	if err != nil {
		return false, fmt.Errorf("failed to query vote edge: %w", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read vote edge result: %w", err)
	}
	return recordBool(record, "liked")
}

// RecountLikes counts live vote edges into the subject, writes the result
// back to the subject's counter and returns it. This is the self-heal step:
// the counter is recomputed from the edge set, never trusted.
func (l *VoteLedger) RecountLikes(ctx context.Context, subjectType entity.SubjectType, subjectID int64) (int64, error) {
	label, err := subjectLabel(subjectType)
	if err != nil {
		return 0, err
	}

	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		fmt.Sprintf(`
			MATCH (p:%s { id: $pid })
			OPTIONAL MATCH (:Fingerprint)-[r:LIKED]->(p)
			WITH p, count(r) AS realLike
			SET p.like = realLike
			RETURN p.like AS like
		`, label),
		map[string]any{"pid": subjectID},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to recount likes: %w", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to collect recount result: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return recordInt64(records[0], "like")
}

// BeginWrite opens a session and an explicit transaction for one toggle.
func (l *VoteLedger) BeginWrite(ctx context.Context) (contract.IVoteTx, error) {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		session.Close(ctx)
		return nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	return &voteTx{session: session, tx: tx}, nil
}

// voteTx is a single explicit transaction plus the session that owns it.
type voteTx struct {
	session neo4j.SessionWithContext
	tx      neo4j.ExplicitTransaction
}

var _ contract.IVoteTx = (*voteTx)(nil)

// LikedFromIPByOther reports whether another fingerprint from the same IP
// already holds a live vote edge to the subject.
func (t *voteTx) LikedFromIPByOther(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint, ip string) (bool, error) {
	label, err := subjectLabel(subjectType)
	if err != nil {
		return false, err
	}

	result, err := t.tx.Run(ctx,
		fmt.Sprintf(`
			MATCH (p:%s { id: $pid })<-[:LIKED]-(f:Fingerprint)
			WHERE f.ip = $ip AND f.id <> $fp
			RETURN COUNT(*) > 0 AS likedByOtherFingerprint
		`, label),
		map[string]any{"pid": subjectID, "ip": ip, "fp": fingerprint},
	)
	if err != nil {
		return false, fmt.Errorf("failed to run same-IP check: %w", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read same-IP check result: %w", err)
	}
	return recordBool(record, "likedByOtherFingerprint")
}

// HasVoteEdge reports whether a live vote edge exists, as seen by this
// transaction.
func (t *voteTx) HasVoteEdge(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) (bool, error) {
	label, err := subjectLabel(subjectType)
	if err != nil {
		return false, err
	}

	result, err := t.tx.Run(ctx,
		fmt.Sprintf(`MATCH (f:Fingerprint { id: $fp })-[r:LIKED]->(p:%s { id: $pid }) RETURN COUNT(r) > 0 AS liked`, label),
		map[string]any{"fp": fingerprint, "pid": subjectID},
	)
	if err != nil {
		return false, fmt.Errorf("failed to query vote edge: %w", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read vote edge result: %w", err)
	}
	return recordBool(record, "liked")
}

// CountRecentVotes counts the fingerprint's vote edges created within the
// trailing window. The match is label-free: the velocity budget is shared
// across policies and campaigns.
func (t *voteTx) CountRecentVotes(ctx context.Context, fingerprint string, windowSeconds int64) (int64, error) {
	result, err := t.tx.Run(ctx,
		`
			MATCH (f:Fingerprint { id: $fp })-[r:LIKED]->()
			WHERE r.timestamp > datetime() - duration({seconds: $window})
			RETURN COUNT(r) AS recentLikes
		`,
		map[string]any{"fp": fingerprint, "window": windowSeconds},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to run velocity check: %w", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read velocity check result: %w", err)
	}
	return recordInt64(record, "recentLikes")
}

// CreateVoteEdge upserts the fingerprint and subject nodes, creates the vote
// edge and increments the subject's like counter and the fingerprint's
// running like count.
func (t *voteTx) CreateVoteEdge(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string, client entity.ClientInfo) error {
	label, err := subjectLabel(subjectType)
	if err != nil {
		return err
	}

	_, err = t.tx.Run(ctx,
		fmt.Sprintf(`
			MERGE (f:Fingerprint { id: $fp })
			ON CREATE SET f.createdAt = datetime(), f.likeCount = 0
			MERGE (p:%s { id: $pid })
			ON CREATE SET p.like = 0
			SET f.ip = $ip,
			    f.ua = $ua,
			    f.lastActivity = datetime(),
			    f.likeCount = coalesce(f.likeCount, 0) + 1,
			    p.like = coalesce(p.like, 0) + 1
			MERGE (f)-[:LIKED {
			  ip: $ip,
			  timestamp: datetime(),
			  ua: $ua
			}]->(p)
		`, label),
		map[string]any{"fp": fingerprint, "pid": subjectID, "ip": client.IP, "ua": client.UserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create vote edge: %w", err)
	}
	return nil
}

// RemoveVoteEdge deletes the vote edge and decrements the subject's like
// counter, flooring it at zero.
func (t *voteTx) RemoveVoteEdge(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) error {
	label, err := subjectLabel(subjectType)
	if err != nil {
		return err
	}

	_, err = t.tx.Run(ctx,
		fmt.Sprintf(`
			MATCH (f:Fingerprint { id: $fp })-[r:LIKED]->(p:%s { id: $pid })
			DELETE r
			SET p.like = CASE WHEN coalesce(p.like, 0) - 1 < 0 THEN 0 ELSE p.like - 1 END
		`, label),
		map[string]any{"fp": fingerprint, "pid": subjectID},
	)
	if err != nil {
		return fmt.Errorf("failed to remove vote edge: %w", err)
	}
	return nil
}

// AppendVoteLog appends an immutable LikeLog node recording the action.
func (t *voteTx) AppendVoteLog(ctx context.Context, entry entity.VoteLogEntry) error {
	_, err := t.tx.Run(ctx,
		`
			CREATE (l:LikeLog {
			  action: $action,
			  subjectType: $stype,
			  subjectId: $pid,
			  fingerprint: $fp,
			  ip: $ip,
			  userAgent: $ua,
			  timestamp: datetime()
			})
		`,
		map[string]any{
			"action": string(entry.Action),
			"stype":  string(entry.SubjectType),
			"pid":    entry.SubjectID,
			"fp":     entry.Fingerprint,
			"ip":     entry.IP,
			"ua":     entry.UserAgent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append vote log: %w", err)
	}
	return nil
}

// Commit commits the transaction.
func (t *voteTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls the transaction back.
func (t *voteTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Close rolls back a still-open transaction and releases the session.
func (t *voteTx) Close(ctx context.Context) error {
	txErr := t.tx.Close(ctx)
	if err := t.session.Close(ctx); err != nil {
		return err
	}
	return txErr
}
