package rate_limit

import (
	"context"
	"fmt"
	"math"
	"time"

	"taskboard/internal/cache"

	"github.com/valkey-io/valkey-go"
)

// RateLimiter is a token bucket shared by every instance of the service
// through Valkey. Without a cache client every request is allowed.
type RateLimiter struct {
	client    valkey.Client
	keyPrefix string
}

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

const (
	defaultTimeout = 2 * time.Second
	bucketTtlSec   = 300
)

// tokenBucketLuaScript refills the bucket for the elapsed time, takes one
// token when available and returns {allowed, remaining, ms until full}.
const tokenBucketLuaScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local rps_limit = tonumber(ARGV[2])
local burst_limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local current = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(current[1]) or burst_limit
local last_refill = tonumber(current[2]) or now

local elapsed = math.max(0, now - last_refill)
local tokens_to_add = math.floor(elapsed * rps_limit / 1000)
tokens = math.min(burst_limit, tokens + tokens_to_add)
if tokens_to_add > 0 then
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill', last_refill)
redis.call('EXPIRE', key, ttl)

local time_to_full = 0
if tokens < burst_limit then
    time_to_full = math.ceil((burst_limit - tokens) * 1000 / rps_limit)
end

return {allowed, tokens, time_to_full}
`

func NewRateLimiter(keyPrefix string) *RateLimiter {
	return &RateLimiter{
		client:    cache.GetCache(),
		keyPrefix: keyPrefix,
	}
}

func (r *RateLimiter) IsEnabled() bool {
	return r.client != nil
}

// CheckRateLimit takes one token from the bucket of key.
func (r *RateLimiter) CheckRateLimit(
	ctx context.Context,
	key string,
	rpsLimit, burstLimit int,
) (*RateLimitResult, error) {
	if rpsLimit <= 0 {
		rpsLimit = 1
	}
	if burstLimit <= 0 {
		burstLimit = rpsLimit
	}

	if r.client == nil {
		return &RateLimitResult{
			Allowed:   true,
			Remaining: burstLimit,
			ResetTime: time.Now(),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UnixMilli()

	result := r.client.Do(ctx, r.client.B().Eval().
		Script(tokenBucketLuaScript).
		Numkeys(1).
		Key(r.keyPrefix+key).
		Arg(fmt.Sprintf("%d", now)).
		Arg(fmt.Sprintf("%d", rpsLimit)).
		Arg(fmt.Sprintf("%d", burstLimit)).
		Arg(fmt.Sprintf("%d", bucketTtlSec)).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 3 {
		return nil, fmt.Errorf("invalid rate limit result: expected 3 values, got %d", len(values))
	}

	allowed := values[0] == 1
	resetTime := time.Now().Add(time.Duration(values[2]) * time.Millisecond)

	var retryAfterSec int
	if !allowed {
		retryAfterSec = max(1, int(math.Ceil(1.0/float64(rpsLimit))))
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     int(values[1]),
		ResetTime:     resetTime,
		RetryAfterSec: retryAfterSec,
	}, nil
}

func (r *RateLimiter) ResetRateLimit(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.client.Do(ctx, r.client.B().Del().Key(r.keyPrefix+key).Build()).Error()
}
