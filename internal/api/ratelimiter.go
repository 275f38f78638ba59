package api

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiter guards the JWKS routes against relying parties polling too hard.
type rateLimiter interface {
	Allow() bool
}

type tokenBucket struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 || burst <= 0 {
		return nil
	}
	return &tokenBucket{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (b *tokenBucket) Allow() bool {
	if b == nil || b.limiter == nil {
		return true
	}
	return b.limiter.Allow()
}

func rateLimitMiddleware(limiter rateLimiter, logger *zap.Logger, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		logger.Warn("request rate limited",
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
		w.Header().Set("Retry-After", "1")
		writeText(w, http.StatusTooManyRequests, "rate limit exceeded, please retry shortly")
	})
}
