package config

import (
	"os"
	"strconv"
	"time"

	usecasecontract "policytrack/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	RateLimitWindow  time.Duration
	MaxReadRequests  int
	MaxWriteRequests int
	LikeCooldown     time.Duration
	VelocityLimit    int
	VelocityWindow   time.Duration
	VoteFlagTTL      time.Duration
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() usecasecontract.IConfigProvider {
	return &Config{
		RateLimitWindow:  time.Second * time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 5)),
		MaxReadRequests:  getEnvAsInt("MAX_GET_REQUESTS", 100),
		MaxWriteRequests: getEnvAsInt("MAX_POST_REQUESTS", 5),
		LikeCooldown:     time.Second * time.Duration(getEnvAsInt("LIKE_COOLDOWN_SECONDS", 1)),
		VelocityLimit:    getEnvAsInt("VELOCITY_LIMIT", 20),
		VelocityWindow:   time.Minute * time.Duration(getEnvAsInt("VELOCITY_WINDOW_MINUTES", 60)),
		VoteFlagTTL:      time.Hour * time.Duration(getEnvAsInt("VOTE_FLAG_TTL_HOURS", 24)),
	}
}

// GetRateLimitWindow returns the sliding window applied to per-IP request counters.
func (c *Config) GetRateLimitWindow() time.Duration {
	return c.RateLimitWindow
}

// GetMaxReadRequests returns the per-IP read cap within one window.
func (c *Config) GetMaxReadRequests() int {
	return c.MaxReadRequests
}

// GetMaxWriteRequests returns the per-IP write cap within one window.
func (c *Config) GetMaxWriteRequests() int {
	return c.MaxWriteRequests
}

// GetLikeCooldown returns the per-fingerprint lockout after a toggle.
func (c *Config) GetLikeCooldown() time.Duration {
	return c.LikeCooldown
}

// GetVelocityLimit returns the per-fingerprint vote cap within the velocity window.
func (c *Config) GetVelocityLimit() int {
	return c.VelocityLimit
}

// GetVelocityWindow returns the rolling window of the velocity check.
func (c *Config) GetVelocityWindow() time.Duration {
	return c.VelocityWindow
}

// GetVoteFlagTTL returns the expiry of cached "has voted" flags.
func (c *Config) GetVoteFlagTTL() time.Duration {
	return c.VoteFlagTTL
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
