package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"travel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitPrefix = "rl"

// tokenBucketScript refills by whole intervals and takes one token per call.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + (intervals * refill_tokens))
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RateLimit is a redis token bucket keyed by user and route. It passes
// everything through when disabled, when rdb is nil, or when redis fails.
func RateLimit(cfg utils.RateLimitConfig, rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled || rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	ttl := cfg.TTL
	if minTTL := 5 * cfg.RefillInterval; ttl < minTTL {
		ttl = minTTL
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)

			vals, err := tokenBucketScript.Run(r.Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(ttl/time.Second),
			).Int64Slice()
			if err != nil || len(vals) != 3 {
				logger.Warn("Rate limiter unavailable, allowing request", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, retryMs := vals[0] == 1, vals[1], vals[2]

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				secs := int(math.Ceil(float64(retryMs) / 1000.0))
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				logger.Info("Rate limit exceeded", zap.String("key", key), zap.Int64("retry_after_ms", retryMs))
				utils.ResponseTooManyRequests(w, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitKey identifies the caller by user ID when authenticated, else by IP
func rateLimitKey(r *http.Request) string {
	caller := "ip:" + clientIP(r)
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		caller = "user:" + userID.String()
	}
	return strings.Join([]string{rateLimitPrefix, caller, "route", r.Method + " " + r.URL.Path}, ":")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}
