package http

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/queue"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

func (h *Handler) submitPrompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := identityFrom(r)

	var req models.PromptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, err)
		return
	}

	prompt := req.Prompt
	if h.cfg.App.SeparateUsers && identity.Authenticated {
		scoped, err := queue.ScopeOutputPaths(prompt, identity.Username)
		if err != nil {
			writeError(w, r, err)
			return
		}
		prompt = scoped
	}

	entry := models.QueueEntry{
		PromptID:  req.PromptID,
		Prompt:    prompt,
		ExtraData: req.ExtraData,
	}
	if entry.PromptID == "" {
		entry.PromptID = uuid.NewString()
	}
	if req.Number != nil {
		entry.Number = *req.Number
	} else {
		entry.Number = h.queue.NextNumber(req.Front)
	}

	if !h.queue.Put(ctx, entry) {
		writeDenial(w, models.Denial{
			Code:       models.CodeExecutionDenied,
			Permission: models.PermRun,
			Message:    "Execution denied",
			Role:       identity.Role,
		})
		return
	}

	logger.FromRequest(r).Info().
		Str("prompt_id", entry.PromptID).
		Float64("number", entry.Number).
		Msg("prompt queued")
	utils.WriteJSON(w, models.PromptResponse{PromptID: entry.PromptID, Number: entry.Number}, http.StatusOK)
}

func (h *Handler) getQueue(w http.ResponseWriter, r *http.Request) {
	running, pending := h.queue.CurrentQueue(r.Context())
	utils.WriteJSON(w, models.QueueResponse{
		Running: nonNil(running),
		Pending: nonNil(pending),
	}, http.StatusOK)
}

func (h *Handler) mutateQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.QueueMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.Clear {
		h.queue.WipeQueue(ctx)
	}
	for _, id := range req.Delete {
		h.queue.DeleteQueueItem(ctx, func(e models.QueueEntry) bool {
			return e.PromptID == id
		})
	}
	w.WriteHeader(http.StatusOK)
}

// getHistory serves ?max_items= and ?offset=. Without an offset the most
// recent max_items records are returned.
func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	query := models.HistoryQuery{Offset: -1}

	values := r.URL.Query()
	if raw := values.Get("max_items"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, ErrInvalidQuery)
			return
		}
		query.MaxItems = n
	}
	if raw := values.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, ErrInvalidQuery)
			return
		}
		query.Offset = n
	}

	utils.WriteJSON(w, h.queue.History(r.Context(), query), http.StatusOK)
}

func (h *Handler) getHistoryItem(w http.ResponseWriter, r *http.Request) {
	query := models.HistoryQuery{PromptID: chi.URLParam(r, "promptID")}
	utils.WriteJSON(w, h.queue.History(r.Context(), query), http.StatusOK)
}

func (h *Handler) mutateHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.QueueMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.Clear {
		h.queue.WipeHistory(ctx)
	}
	for _, id := range req.Delete {
		h.queue.DeleteHistoryItem(ctx, id)
	}
	w.WriteHeader(http.StatusOK)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clip(s)
}
