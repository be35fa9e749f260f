package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/simcop2387/usgromana/internal/adapter"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

const freeMemoryTimeout = 10 * time.Second

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Str("username", user.Username).
		Bool("admin", user.Admin()).
		Str("ip", utils.ClientIP(r, h.cfg.Server.TrustProxyHeaders)).
		Msg("user registered")
	utils.WriteJSON(w, user.View(), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		log.Warn().
			Str("username", req.Username).
			Bool("guest", req.GuestLogin).
			Str("ip", utils.ClientIP(r, h.cfg.Server.TrustProxyHeaders)).
			Err(err).
			Msg("login failed")
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", token.Username).Msg("user logged in")
	h.setTokenCookie(w, r, token)
	utils.WriteJSON(w, tokenResponse(token), http.StatusOK)
}

// generateToken issues a long-lived API token; no cookie is set.
func (h *Handler) generateToken(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.GenerateToken(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, tokenResponse(token), http.StatusOK)
}

// logout drops the session cookie and, when configured, asks the executor
// to release memory before redirecting to the login page.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	if h.cfg.App.FreeMemoryOnLogout && h.executor != nil {
		query := r.URL.Query()
		unload := queryBool(query.Get("unload_models"), true)
		free := queryBool(query.Get("free_memory"), true)

		ctx, cancel := context.WithTimeout(r.Context(), freeMemoryTimeout)
		defer cancel()
		if err := h.executor.FreeMemory(ctx, unload, free); err != nil {
			if errors.Is(err, adapter.ErrUnavailable) {
				logger.FromRequest(r).Warn().Err(err).Msg("executor unavailable, memory not freed on logout")
			} else {
				logger.FromRequest(r).Err(err).Msg("freeing executor memory on logout failed")
			}
		}
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, r *http.Request, token models.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   utils.IsSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
	})
}

func tokenResponse(token models.Token) models.TokenResponse {
	resp := models.TokenResponse{Token: token.SignedString}
	if !token.ExpiresAt.IsZero() && !token.IssuedAt.IsZero() {
		resp.ExpiresIn = int64(token.ExpiresAt.Sub(token.IssuedAt).Seconds())
	}
	return resp
}

func queryBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
