package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	"storyverse-api/internal/application/admission"
	"storyverse-api/pkg/clock"
)

// fixedWindowScript 先比较再计数，超限时不修改计数
// KEYS[1] 计数键; ARGV[1] 上限; ARGV[2] 窗口毫秒
// 返回 {allowed, count, pttl}
var fixedWindowScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

if current >= limit then
  local ttl = redis.call('PTTL', KEYS[1])
  if ttl < 0 then
    redis.call('PEXPIRE', KEYS[1], window)
    ttl = window
  end
  return {0, current, ttl}
end

current = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], window)
  ttl = window
end
return {1, current, ttl}
`)

// RateLimiter 固定窗口计数，多实例共享配额
type RateLimiter struct {
	client    *Client
	keyPrefix string
	clock     clock.Clock
}

// NewRateLimiter 创建限流器
func NewRateLimiter(client *Client, keyPrefix string, c clock.Clock) *RateLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit"
	}
	if c == nil {
		c = clock.Real{}
	}
	return &RateLimiter{client: client, keyPrefix: keyPrefix, clock: c}
}

// Take 实现 admission.Store
func (l *RateLimiter) Take(ctx context.Context, key string, policy admission.Policy) (admission.Decision, error) {
	fullKey := l.keyPrefix + ":" + key

	ctx, span := tracer.Start(ctx, "ratelimit.Take")
	defer span.End()
	span.SetAttributes(
		attribute.String("ratelimit.key", fullKey),
		attribute.Int("ratelimit.limit", policy.MaxRequests),
		attribute.Int64("ratelimit.window_ms", policy.Window.Milliseconds()),
	)

	res, err := fixedWindowScript.Run(ctx, l.client.rdb, []string{fullKey},
		policy.MaxRequests, policy.Window.Milliseconds()).Int64Slice()
	if err != nil {
		span.RecordError(err)
		return admission.Decision{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(res) != 3 {
		return admission.Decision{}, fmt.Errorf("unexpected rate limit script result: %v", res)
	}

	allowed := res[0] == 1
	count := int(res[1])
	ttl := time.Duration(res[2]) * time.Millisecond
	resetAt := l.clock.Now().Add(ttl)

	span.SetAttributes(
		attribute.Bool("ratelimit.allowed", allowed),
		attribute.Int("ratelimit.current_count", count),
	)

	if !allowed {
		return admission.Decision{
			Allowed:    false,
			Limit:      policy.MaxRequests,
			RetryAfter: ttl,
			ResetAt:    resetAt,
		}, nil
	}

	remaining := policy.MaxRequests - count
	if remaining < 0 {
		remaining = 0
	}
	return admission.Decision{
		Allowed:   true,
		Limit:     policy.MaxRequests,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// Reset 清除某个桶的计数
func (l *RateLimiter) Reset(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "ratelimit.Reset")
	defer span.End()

	return l.client.rdb.Del(ctx, l.keyPrefix+":"+key).Err()
}
