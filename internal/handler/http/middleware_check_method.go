// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A request whose method is not served on a known route gets 404 rather
// than 405, so unsupported methods do not reveal which paths exist.
//
// Only exact route patterns are compared; parameterised routes fall
// through to 404 as well.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}
		writeError(w, r, ErrResourceNotFound)
	}
}
