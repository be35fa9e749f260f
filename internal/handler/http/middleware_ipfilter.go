package http

import (
	"net/http"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// withIPFilter rejects clients the whitelist and blacklist keep out.
func (h *Handler) withIPFilter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, h.cfg.Server.TrustProxyHeaders)
		if !h.services.IPFilterService.Allowed(r.Context(), ip) {
			logger.FromRequest(r).Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("blocked client address")
			utils.WriteJSON(w, models.ErrorResponse{
				Error: "access from this address is not allowed",
				Code:  models.CodeIPBlocked,
			}, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
