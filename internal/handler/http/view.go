package http

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// viewRoot returns the directory that serves ?type=.
func (h *Handler) viewRoot(kind string) (string, bool) {
	switch kind {
	case "", "output":
		return h.cfg.Storage.OutputDir, true
	case "input":
		return h.cfg.Storage.InputDir, true
	case "temp":
		return h.cfg.Storage.TempDir, true
	}
	return "", false
}

// view serves a content file, hiding it from callers the safety filter
// applies to.
func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	values := r.URL.Query()

	filename := values.Get("filename")
	if filename == "" || strings.ContainsAny(filename, `/\`) || filename == "." || filename == ".." {
		writeError(w, r, ErrInvalidQuery)
		return
	}
	root, ok := h.viewRoot(values.Get("type"))
	if !ok {
		writeError(w, r, ErrInvalidFileType)
		return
	}

	filePath, err := store.ResolveWithinRoot(root, path.Join(values.Get("subfolder"), filename))
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, r, ErrResourceNotFound)
			return
		}
		writeError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if info.IsDir() {
		writeError(w, r, ErrResourceNotFound)
		return
	}

	identity := identityFrom(r)
	if h.services.SafetyService.ShouldHide(ctx, filePath, identity.Username) {
		logger.FromRequest(r).Info().Str("file", filename).Msg("content hidden by safety filter")
		utils.WriteJSON(w, models.ErrorResponse{
			Error: "content blocked by safety filter",
			Code:  models.CodeNSFWBlocked,
		}, http.StatusForbidden)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
