package middleware

import (
	"net"
	"net/http"

	"github.com/itchan-dev/mediameta/shared/errors"
	"github.com/itchan-dev/mediameta/shared/logger"
	"github.com/itchan-dev/mediameta/shared/middleware/metrics"
	"github.com/itchan-dev/mediameta/shared/middleware/ratelimiter"
	"github.com/itchan-dev/mediameta/shared/utils"
)

// RateLimit rejects requests with 429 once the client identified by getIdentity runs out of tokens.
func RateLimit(rl *ratelimiter.ClientRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				metrics.ObserveRateLimited()
				logger.Log.Debug("rate limited", "client", identity, "path", r.URL.Path)
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the client IP from RemoteAddr.
// X-Real-IP and X-Forwarded-For are ignored since the service is not behind a trusted proxy.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", errors.BadRequest("Can't determine client address")
	}

	return ip, nil
}
