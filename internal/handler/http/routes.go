// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(
		middleware.Recoverer,
		h.withTraceID,
		h.withLogging,
		withGZip,
		h.withIPFilter,
		withWorkflowWatcher,
		h.withIdentity,
		h.withPolicy,
	)

	router.Group(func(r chi.Router) {
		r.Use(h.withLockout)
		r.Post("/login", h.login)
		r.Post("/register", h.register)
	})
	router.Post("/generate_token", h.generateToken)
	router.Get("/logout", h.logout)

	router.Route("/usgromana/api", func(r chi.Router) {
		r.Get("/me", h.me)
		r.Put("/me/safety", h.setOwnSafety)
		r.Post("/user-env", h.userEnv)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/groups", h.getGroups)
			r.Put("/groups", h.replaceGroups)
			r.Get("/users", h.getUsers)
			r.Put("/users/{username}", h.updateUser)
			r.Delete("/users/{username}", h.deleteUser)
			r.Get("/ip-lists", h.getIPLists)
			r.Put("/ip-lists", h.replaceIPLists)
			r.Post("/safety/tag", h.setSafetyTag)
			r.Delete("/safety/tag", h.clearSafetyTag)
			r.Post("/safety/clear-all", h.clearAllSafetyTags)
		})
	})

	for _, prefix := range []string{"", "/api"} {
		router.Post(prefix+"/prompt", h.submitPrompt)
		router.Get(prefix+"/queue", h.getQueue)
		router.Post(prefix+"/queue", h.mutateQueue)
	}
	router.Get("/api/history", h.getHistory)
	router.Get("/api/history/{promptID}", h.getHistoryItem)
	router.Post("/api/history", h.mutateHistory)
	router.Get("/api/view", h.view)
	router.Get("/api/version", h.getServerVersion)
	router.Get(userdataPath, h.userdataRoot)
	router.Post(userdataPath, h.userdataRoot)
	router.Delete(userdataPath, h.userdataRoot)
	router.HandleFunc(userdataPath+"/*", h.userdataFile)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
