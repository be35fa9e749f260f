package http

import (
	"net/http"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/internal/validators"
	"github.com/simcop2387/usgromana/models"
)

// setSafetyTag stores a manual classification in a file of the output
// directory. The path is relative to that directory.
func (h *Handler) setSafetyTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SafetyTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, err)
		return
	}

	path, err := store.ResolveWithinRoot(h.cfg.Storage.OutputDir, req.Path)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tag := service.ManualTag(req.IsNSFW, req.Score, req.Label)
	if err := h.services.SafetyService.SetTag(ctx, path, tag); err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Info().
		Str("path", req.Path).
		Bool("nsfw", tag.IsNSFW).
		Msg("manual safety tag stored")
	utils.WriteJSON(w, tag, http.StatusOK)
}

// clearSafetyTag removes the tag of ?path= from a file of the output
// directory.
func (h *Handler) clearSafetyTag(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Query().Get("path")
	if rel == "" {
		writeError(w, r, validators.ErrEmptyPath)
		return
	}

	path, err := store.ResolveWithinRoot(h.cfg.Storage.OutputDir, rel)
	if err != nil {
		writeError(w, r, err)
		return
	}

	removed, err := h.services.SafetyService.ClearTag(r.Context(), path)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, map[string]bool{"removed": removed}, http.StatusOK)
}

func (h *Handler) clearAllSafetyTags(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.services.SafetyService.ClearAllTags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Info().Int("cleared", cleared).Msg("safety tags cleared")
	utils.WriteJSON(w, map[string]int{"cleared": cleared}, http.StatusOK)
}
