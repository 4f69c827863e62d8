package rate_limit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CheckRateLimit_WithoutCache_AlwaysAllows(t *testing.T) {
	rateLimiter := &RateLimiter{keyPrefix: "test:"}

	for i := 0; i < 5; i++ {
		result, err := rateLimiter.CheckRateLimit(context.Background(), "key", 1, 1)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	assert.False(t, rateLimiter.IsEnabled())
	assert.NoError(t, rateLimiter.ResetRateLimit(context.Background(), "key"))
}

func Test_CheckRateLimit_WithinLimits_AllowsRequest(t *testing.T) {
	rateLimiter := newCacheBackedRateLimiter(t)
	key := uuid.New().String()

	result, err := rateLimiter.CheckRateLimit(context.Background(), key, 10, 20)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 19, result.Remaining)
	assert.Equal(t, 0, result.RetryAfterSec)
	assert.True(t, result.ResetTime.After(time.Now().Add(-time.Second)))
}

func Test_CheckRateLimit_ExceedsBurstLimit_DeniesRequest(t *testing.T) {
	rateLimiter := newCacheBackedRateLimiter(t)
	key := uuid.New().String()
	burstLimit := 2

	for i := 0; i < burstLimit; i++ {
		result, err := rateLimiter.CheckRateLimit(context.Background(), key, 1, burstLimit)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}

	result, err := rateLimiter.CheckRateLimit(context.Background(), key, 1, burstLimit)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Positive(t, result.RetryAfterSec)
}

func Test_CheckRateLimit_TokensRefillOverTime_AllowsRequestsAfterWait(t *testing.T) {
	rateLimiter := newCacheBackedRateLimiter(t)
	key := uuid.New().String()

	result, err := rateLimiter.CheckRateLimit(context.Background(), key, 10, 1)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(context.Background(), key, 10, 1)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// 10 RPS refills one token every 100ms
	time.Sleep(150 * time.Millisecond)

	result, err = rateLimiter.CheckRateLimit(context.Background(), key, 10, 1)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_CheckRateLimit_DifferentKeys_IsolatedLimits(t *testing.T) {
	rateLimiter := newCacheBackedRateLimiter(t)
	firstKey := uuid.New().String()
	secondKey := uuid.New().String()

	result, err := rateLimiter.CheckRateLimit(context.Background(), firstKey, 1, 1)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(context.Background(), firstKey, 1, 1)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(context.Background(), secondKey, 1, 1)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_ResetRateLimit_ClearsRateLimitData(t *testing.T) {
	rateLimiter := newCacheBackedRateLimiter(t)
	key := uuid.New().String()

	_, err := rateLimiter.CheckRateLimit(context.Background(), key, 1, 1)
	require.NoError(t, err)

	result, err := rateLimiter.CheckRateLimit(context.Background(), key, 1, 1)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	require.NoError(t, rateLimiter.ResetRateLimit(context.Background(), key))

	result, err = rateLimiter.CheckRateLimit(context.Background(), key, 1, 1)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func newCacheBackedRateLimiter(t *testing.T) *RateLimiter {
	t.Helper()

	rateLimiter := NewRateLimiter("rate_limit:test:")
	if !rateLimiter.IsEnabled() {
		t.Skip("VALKEY_HOST is not configured")
	}

	return rateLimiter
}
