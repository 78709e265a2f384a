package cache

import (
	"testing"
	"time"
)

// CheckRateLimit's contract: a non-nil error always means a Redis fault,
// never an exceeded limit, so callers can fail open on it. Without Redis the
// request is allowed outright.
func TestCheckRateLimitFailsOpenWithoutRedis(t *testing.T) {
	RedisClient = nil

	allowed, remaining, err := CheckRateLimit(1, 100, time.Hour)
	if err != nil {
		t.Fatalf("CheckRateLimit without redis: %v", err)
	}
	if !allowed {
		t.Error("request blocked without redis")
	}
	if remaining != 100 {
		t.Errorf("remaining = %d, want 100", remaining)
	}
}
