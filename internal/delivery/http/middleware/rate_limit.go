package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"nymble-website/internal/delivery/http/response"
	"nymble-website/internal/domain"
	"nymble-website/pkg/logger"
	"nymble-website/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// Redis returns the shared client, nil when Redis is not configured
	Redis func() *goredis.Client
}

// rateLimitDecision is the outcome of one rate limit check
type rateLimitDecision struct {
	allowed   bool
	remaining int
	resetAt   time.Time
}

// limiterEntry is an in-memory token bucket for one key
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter is the fallback used when Redis is unavailable
type memoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	window  time.Duration
}

func newMemoryLimiter(limit int, window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		window:  window,
	}
}

func (m *memoryLimiter) allow(key string, now time.Time) rateLimitDecision {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.entries[key] = entry
	}
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	tokens := entry.limiter.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	// Time until one token is available again
	wait := time.Duration(0)
	if tokens < 1 {
		wait = time.Duration((1 - tokens) / float64(m.limit) * float64(time.Second))
	}

	return rateLimitDecision{
		allowed:   allowed,
		remaining: remaining,
		resetAt:   now.Add(wait),
	}
}

// cleanup drops buckets idle for longer than a window
func (m *memoryLimiter) cleanup(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, entry := range m.entries {
		if now.Sub(entry.lastSeen) > m.window {
			delete(m.entries, key)
		}
	}
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// DefaultRateLimitConfig returns sensible defaults for site-wide rate limiting
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open by default for availability
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		Redis: redis.Client,
	}
}

// ContactRateLimitConfig returns strict config for contact form submissions
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	cfg := DefaultRateLimitConfig(limit, window)
	cfg.KeyPrefix = "rl:contact:"
	return cfg
}

// RateLimitMiddleware creates a rate limiting middleware with the given config
// Uses Redis when available, falls back to in-memory when not
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	fallback := newMemoryLimiter(config.Limit, config.Window)
	var lastCleanup time.Time
	var cleanupMu sync.Mutex

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var decision rateLimitDecision
		var err error

		var client *goredis.Client
		if config.Redis != nil {
			client = config.Redis()
		}

		if client != nil {
			decision, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, config)
			if err != nil {
				logger.Log.Warn("Rate limit store unavailable",
					"request_id", c.GetString(string(domain.KeyRequestID)),
					"error", err,
				)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				decision = fallback.allow(fullKey, now)
			}
		} else {
			decision = fallback.allow(fullKey, now)
		}

		cleanupMu.Lock()
		if now.Sub(lastCleanup) > config.Window {
			lastCleanup = now
			fallback.cleanup(now)
		}
		cleanupMu.Unlock()

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.remaining))
		c.Header("X-RateLimit-Reset", decision.resetAt.Format(time.RFC3339))

		if !decision.allowed {
			retryAfter := int(time.Until(decision.resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Info("Rate limit triggered",
				"request_id", c.GetString(string(domain.KeyRequestID)),
				"ip", c.ClientIP(),
				"path", c.FullPath(),
			)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (rateLimitDecision, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return rateLimitDecision{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return rateLimitDecision{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	remaining := config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return rateLimitDecision{
		allowed:   int(count) <= config.Limit,
		remaining: remaining,
		resetAt:   time.Now().Add(time.Duration(ttl) * time.Second),
	}, nil
}
