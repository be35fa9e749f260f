package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// me returns the caller identity; anonymous callers get the guest identity.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, identityFrom(r), http.StatusOK)
}

func (h *Handler) setOwnSafety(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	if !identity.Authenticated {
		unauthenticated(w, r, ErrMissingToken, "/login")
		return
	}

	var req models.SafetyPreferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.services.AdminService.SetOwnSafety(r.Context(), identity, req.SafetyCheck)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) getGroups(w http.ResponseWriter, r *http.Request) {
	table, err := h.services.AdminService.Groups(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, table, http.StatusOK)
}

func (h *Handler) replaceGroups(w http.ResponseWriter, r *http.Request) {
	var table models.GroupTable
	if err := decodeJSON(r, &table); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.services.AdminService.ReplaceGroups(r.Context(), table)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Info().Int("roles", len(saved)).Msg("group table replaced")
	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.AdminService.Users(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req models.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.services.AdminService.UpdateUser(r.Context(), username, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Info().
		Str("target", username).
		Strs("groups", view.Groups).
		Msg("user updated")
	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.services.AdminService.DeleteUser(r.Context(), username); err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Info().Str("target", username).Msg("user deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getIPLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.services.AdminService.IPLists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, lists, http.StatusOK)
}

func (h *Handler) replaceIPLists(w http.ResponseWriter, r *http.Request) {
	var lists models.IPLists
	if err := decodeJSON(r, &lists); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.services.AdminService.ReplaceIPLists(r.Context(), lists)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Info().
		Int("whitelist", len(saved.Whitelist)).
		Int("blacklist", len(saved.Blacklist)).
		Msg("ip lists replaced")
	utils.WriteJSON(w, saved, http.StatusOK)
}
