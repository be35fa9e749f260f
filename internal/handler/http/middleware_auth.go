// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

const tokenCookieName = "jwt_token"

// withIdentity resolves the caller and stores the identity in the request
// context.
//
// Public paths are never rejected: a valid token still yields the caller's
// identity, anything else is anonymous. On every other path a missing,
// expired or invalid token gets 401, or a redirect for browsers: to the
// login page when no token was sent and to logout when it no longer works.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token := tokenFromRequest(r)
		permissions := h.services.PermissionService

		if permissions.IsPublicPath(r.URL.Path) {
			identity := models.Anonymous()
			if token != "" {
				identity = permissions.Resolve(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(withCallerContext(r, identity)))
			return
		}

		if token == "" {
			unauthenticated(w, r, ErrMissingToken, "/login")
			return
		}

		claims, err := h.services.TokenService.Verify(token)
		if err != nil {
			unauthenticated(w, r, err, "/logout")
			return
		}
		identity, err := permissions.IdentityFor(ctx, claims)
		if err != nil {
			unauthenticated(w, r, err, "/logout")
			return
		}

		next.ServeHTTP(w, r.WithContext(withCallerContext(r, identity)))
	})
}

// tokenFromRequest prefers the Authorization bearer token over the cookie.
func tokenFromRequest(r *http.Request) string {
	if token, err := utils.ParseBearerToken(r.Header.Get("Authorization")); err == nil {
		return token
	}
	if c, err := r.Cookie(tokenCookieName); err == nil {
		return c.Value
	}
	return ""
}

func withCallerContext(r *http.Request, identity models.Identity) context.Context {
	l := logger.FromRequest(r).With().Str("user", identity.Username).Logger()
	return utils.WithIdentity(l.WithContext(r.Context()), identity)
}

func unauthenticated(w http.ResponseWriter, r *http.Request, err error, redirectTo string) {
	logger.FromRequest(r).Debug().Err(err).Str("path", r.URL.Path).Msg("unauthenticated request")

	if utils.WantsHTML(r) {
		http.Redirect(w, r, redirectTo, http.StatusFound)
		return
	}

	message := "Token is invalid"
	switch {
	case errors.Is(err, ErrMissingToken):
		message = "Authentication required"
	case errors.Is(err, service.ErrTokenExpired):
		message = "Token has expired"
	}
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, http.StatusUnauthorized)
}

// identityFrom returns the caller identity, anonymous when none was set.
func identityFrom(r *http.Request) models.Identity {
	if identity, ok := utils.GetIdentityFromContext(r.Context()); ok {
		return identity
	}
	return models.Anonymous()
}
