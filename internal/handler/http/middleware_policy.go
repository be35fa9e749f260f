// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package http

import (
	"net/http"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/models"
)

const (
	workflowPathPrefix     = "/api/userdata/workflows"
	workflowErrorHeader    = "X-Usgromana-Error"
	workflowSaveDeniedCode = "WORKFLOW_SAVE_DENIED"
)

// withPolicy applies the request policy to the resolved caller.
func (h *Handler) withPolicy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := identityFrom(r)
		if denial := h.services.PermissionService.CheckRequest(identity, r.Method, r.URL.Path); denial != nil {
			logger.FromRequest(r).Warn().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("role", identity.Role).
				Str("code", denial.Code).
				Str("permission", denial.Permission).
				Msg("request denied by policy")
			writeDenial(w, *denial)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withWorkflowWatcher marks any 403 on the workflow storage so the frontend
// can tell a denied save apart from other failures.
func withWorkflowWatcher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isWorkflowRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(&responseWriter{
			ResponseWriter: w,
			beforeHeader: func(w http.ResponseWriter, status int) {
				if status == http.StatusForbidden {
					w.Header().Set(workflowErrorHeader, workflowSaveDeniedCode)
				}
			},
		}, r)
	})
}

// requireAdmin guards the administration routes.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := identityFrom(r)
		if !identity.Authenticated {
			unauthenticated(w, r, ErrMissingToken, "/login")
			return
		}
		if !identity.IsAdmin {
			logger.FromRequest(r).Warn().Str("path", r.URL.Path).Msg("non-admin called an admin route")
			writeDenial(w, adminOnlyDenial(identity.Role))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func adminOnlyDenial(role string) models.Denial {
	return models.Denial{
		Code:    models.CodeAdminOnly,
		Message: ErrAdminOnly.Error(),
		Role:    role,
	}
}
