package middleware

import (
	"net/http"
	"strconv"
	"time"

	"screenbook/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Token bucket held per client IP; tokens refill at a fixed interval. State
// lives in Redis so the limit holds across server instances.
var limiterScript = redis.NewScript(`
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
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    end

    redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
    redis.call('EXPIRE', key, ttl_seconds)

    return allowed
`)

// RateLimit applies a Redis token bucket per client IP. With a nil client it
// is a pass-through.
func RateLimit(rdb *redis.Client, capacity int, refillInterval time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + clientIP(r)
			now := time.Now()

			allowed, err := limiterScript.Run(r.Context(), rdb,
				[]string{key},
				strconv.FormatInt(now.UnixMilli(), 10),
				strconv.Itoa(capacity),
				"1",
				strconv.FormatInt(refillInterval.Milliseconds(), 10),
				"3600",
			).Int()

			if err != nil {
				// Limiter failure never blocks traffic
				logger.Warn("Rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if allowed == 0 {
				utils.ResponseTooManyRequests(w, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
