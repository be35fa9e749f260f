package http

import (
	"net/http"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// userEnv dispatches the per-user storage actions. Any caller may ask for
// the status of their own root; everything else needs an admin.
func (h *Handler) userEnv(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := identityFrom(r)
	if !identity.Authenticated {
		unauthenticated(w, r, ErrMissingToken, "/login")
		return
	}

	var req models.UserEnvRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, err)
		return
	}

	target := req.Username
	if target == "" {
		target = identity.Username
	}
	if !identity.IsAdmin && (req.Action != models.EnvActionStatus || target != identity.Username) {
		writeDenial(w, adminOnlyDenial(identity.Role))
		return
	}

	envs := h.services.UserEnvService
	switch req.Action {
	case models.EnvActionStatus:
		status, err := envs.Status(ctx, target)
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, status, http.StatusOK)

	case models.EnvActionList:
		files, err := envs.List(ctx, target)
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, map[string]any{"user": target, "files": files}, http.StatusOK)

	case models.EnvActionPurge:
		if err := envs.Purge(ctx, target); err != nil {
			writeError(w, r, err)
			return
		}
		logger.FromRequest(r).Info().Str("target", target).Msg("user folder purged")
		utils.WriteJSON(w, map[string]any{"user": target, "purged": true}, http.StatusOK)

	case models.EnvActionSetGalleryRoot:
		if err := envs.SetGalleryRoot(ctx, target, req.Enable); err != nil {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, map[string]any{"user": target, "gallery_root": req.Enable}, http.StatusOK)
	}
}
