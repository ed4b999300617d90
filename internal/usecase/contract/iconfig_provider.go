package usecasecontract

import "time"

// IConfigProvider exposes the named tuning values of the vote subsystem. The
// rate-limit window, cooldown duration and abuse thresholds live here so no
// component carries its own copy of the constants.
type IConfigProvider interface {
	// GetRateLimitWindow returns the sliding window applied to per-IP
	// request counters.
	GetRateLimitWindow() time.Duration
	// GetMaxReadRequests returns the per-IP read cap within one window.
	GetMaxReadRequests() int
	// GetMaxWriteRequests returns the per-IP write cap within one window.
	GetMaxWriteRequests() int
	// GetLikeCooldown returns the per-fingerprint lockout after a toggle.
	GetLikeCooldown() time.Duration
	// GetVelocityLimit returns the number of votes a fingerprint may cast
	// within the velocity window before further votes are rejected.
	GetVelocityLimit() int
	// GetVelocityWindow returns the rolling window of the velocity check.
	GetVelocityWindow() time.Duration
	// GetVoteFlagTTL returns the expiry of cached "has voted" flags.
	GetVoteFlagTTL() time.Duration
}
