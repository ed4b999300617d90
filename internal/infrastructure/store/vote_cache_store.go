package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"policytrack/internal/domain/contract"
	"policytrack/internal/domain/entity"
	usecasecontract "policytrack/internal/usecase/contract"
)

// RedisVoteCacheStore backs the vote subsystem's ephemeral state: sliding
// window rate-limit counters, per-fingerprint cooldown markers and cached
// "has voted" flags. All operations are best effort — on a Redis error the
// store logs and behaves as if the key were absent, so a cache outage never
// blocks voting.
type RedisVoteCacheStore struct {
	rdb              *redis.Client
	logger           usecasecontract.IAppLogger
	rateLimitWindow  time.Duration
	maxReadRequests  int
	maxWriteRequests int
	cooldown         time.Duration
	voteFlagTTL      time.Duration
}

var _ contract.IVoteCache = (*RedisVoteCacheStore)(nil)

func NewRedisVoteCacheStore(rdb *redis.Client, cfg usecasecontract.IConfigProvider, logger usecasecontract.IAppLogger) *RedisVoteCacheStore {
	return &RedisVoteCacheStore{
		rdb:              rdb,
		logger:           logger,
		rateLimitWindow:  cfg.GetRateLimitWindow(),
		maxReadRequests:  cfg.GetMaxReadRequests(),
		maxWriteRequests: cfg.GetMaxWriteRequests(),
		cooldown:         cfg.GetLikeCooldown(),
		voteFlagTTL:      cfg.GetVoteFlagTTL(),
	}
}

func rateLimitKey(method contract.MethodClass, ip string) string {
	return fmt.Sprintf("rate_limit:%s:%s", method, ip)
}

func cooldownKey(fingerprint string) string {
	return fmt.Sprintf("cooldown:%s", fingerprint)
}

func voteFlagKey(subjectType entity.SubjectType, subjectID int64, fingerprint string) string {
	return fmt.Sprintf("liked:%s:%s:%d", fingerprint, subjectType, subjectID)
}

// AllowRequest applies the INCR + EXPIRE window counter for {method, ip}.
// The first hit creates the key with the window as its TTL; subsequent hits
// increment it. Requests past the per-class limit are rejected.
func (s *RedisVoteCacheStore) AllowRequest(ctx context.Context, method contract.MethodClass, ip string) bool {
	key := rateLimitKey(method, ip)

	limit := s.maxReadRequests
	if method == contract.MethodClassWrite {
		limit = s.maxWriteRequests
	}

	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Errorf("redis INCR error for %s: %v (failing open)", key, err)
		return true
	}
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, s.rateLimitWindow).Err(); err != nil {
			s.logger.Errorf("redis EXPIRE error for %s: %v (failing open)", key, err)
			// Without a TTL the counter would throttle the IP forever; best
			// effort cleanup.
			s.rdb.Del(ctx, key)
			return true
		}
	}
	return count <= int64(limit)
}

// IsCoolingDown reports whether the fingerprint's cooldown marker exists.
func (s *RedisVoteCacheStore) IsCoolingDown(ctx context.Context, fingerprint string) bool {
	exists, err := s.rdb.Exists(ctx, cooldownKey(fingerprint)).Result()
	if err != nil {
		s.logger.Errorf("redis EXISTS error for %s: %v (failing open)", cooldownKey(fingerprint), err)
		return false
	}
	return exists > 0
}

// SetCooldown creates the cooldown marker with the configured expiry.
func (s *RedisVoteCacheStore) SetCooldown(ctx context.Context, fingerprint string) {
	key := cooldownKey(fingerprint)
	if err := s.rdb.Set(ctx, key, "1", s.cooldown).Err(); err != nil {
		s.logger.Errorf("redis SET error for %s: %v", key, err)
	}
}

// HasVoteFlag reports whether the cached positive vote flag is set. Absence
// (or any error) means the caller must consult the ledger.
func (s *RedisVoteCacheStore) HasVoteFlag(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) bool {
	key := voteFlagKey(subjectType, subjectID, fingerprint)
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Errorf("redis GET error for %s: %v (failing open)", key, err)
		}
		return false
	}
	return val != ""
}

// SetVoteFlag records the positive vote flag with the configured TTL.
func (s *RedisVoteCacheStore) SetVoteFlag(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) {
	key := voteFlagKey(subjectType, subjectID, fingerprint)
	if err := s.rdb.Set(ctx, key, "true", s.voteFlagTTL).Err(); err != nil {
		s.logger.Errorf("redis SET error for %s: %v", key, err)
	}
}

// ClearVoteFlag removes the vote flag after an unlike.
func (s *RedisVoteCacheStore) ClearVoteFlag(ctx context.Context, subjectType entity.SubjectType, subjectID int64, fingerprint string) {
	key := voteFlagKey(subjectType, subjectID, fingerprint)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Errorf("redis DEL error for %s: %v", key, err)
	}
}
