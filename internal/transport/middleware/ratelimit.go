package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewIPRateLimiter builds an in-memory limiter from a formatted rate such as "300-M".
// X-Forwarded-For is ignored unless trustForwardHeader is set.
func NewIPRateLimiter(formatted string, trustForwardHeader bool) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate, limiter.WithTrustForwardHeader(trustForwardHeader)), nil
}

// RateLimit rejects clients that exceeded the limiter's rate, keyed by client IP.
func RateLimit(l *limiter.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	mw := stdlib.NewMiddleware(l,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("rate limit exceeded", "ip", l.GetIPKey(r), "path", r.URL.Path)
			writeAppError(w, internal.NewTooManyRequestsError("Too many requests. Please try again later."))
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("failed to get rate limit context", "ip", l.GetIPKey(r), "error", err)
			writeAppError(w, internal.NewInternalError("rate limit check failed", err))
		}),
	)
	return mw.Handler
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
