package middleware

import (
	"net/http"

	"github.com/sleepdoctor/sleepdoc/internal/apperr"
	"github.com/sleepdoctor/sleepdoc/internal/storage"
	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
)

// RateLimit applies per-IP rate limiting.
func RateLimit(limiter storage.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			result, err := limiter.Allow(ctx, xhttp.GetRequestIP(r))
			if err != nil {
				apperr.WriteError(ctx, w, apperr.ServiceUnavailable("rate_limit_unavailable", "rate limit check failed", err))
				return
			}

			if !result.Allowed {
				apperr.WriteError(ctx, w, apperr.TooManyRequests("rate_limited", "too many requests", result.RetryAfter, "ip_rate_limit"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
