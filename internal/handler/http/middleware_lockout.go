package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// withLockout throttles the credential endpoints. A locked out client gets
// 429 without reaching the handler; otherwise the outcome of the handler is
// recorded: 401 and 403 count as a failed attempt, 2xx clears the record.
func (h *Handler) withLockout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, h.cfg.Server.TrustProxyHeaders)
		lockout := h.services.LockoutService

		if remaining, locked := lockout.Locked(ip); locked {
			writeLockedOut(w, remaining)
			return
		}

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		switch status := rw.Status(); {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			if d := lockout.Fail(r.Context(), ip); d > 0 {
				logger.FromRequest(r).Warn().Str("ip", ip).Dur("lockout", d).Msg("client locked out after failed logins")
			}
		case status >= 200 && status < 300:
			lockout.Succeed(ip)
		}
	})
}

func writeLockedOut(w http.ResponseWriter, remaining time.Duration) {
	seconds := int(math.Ceil(remaining.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	utils.WriteJSON(w, models.ErrorResponse{
		Error:      "too many failed login attempts",
		Code:       models.CodeLockedOut,
		RetryAfter: seconds,
	}, http.StatusTooManyRequests)
}
