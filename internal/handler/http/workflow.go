package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

const (
	userdataPath = "/api/userdata"
	workflowsDir = "workflows"
)

// isWorkflowRequest matches both addressing forms of the workflow storage:
// the path form and /api/userdata?dir=workflows.
func isWorkflowRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, workflowPathPrefix) {
		return true
	}
	return r.URL.Path == userdataPath && r.URL.Query().Get("dir") == workflowsDir
}

func workflowNameFromQuery(r *http.Request) string {
	q := r.URL.Query()
	if name := q.Get("file"); name != "" {
		return name
	}
	return q.Get("name")
}

// userdataRoot serves /api/userdata?dir=workflows.
func (h *Handler) userdataRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("dir") != workflowsDir {
		writeError(w, r, ErrResourceNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.listWorkflows(w, r)
	case http.MethodPost:
		h.saveWorkflow(w, r, workflowNameFromQuery(r))
	case http.MethodDelete:
		h.deleteWorkflow(w, r, workflowNameFromQuery(r))
	default:
		writeError(w, r, ErrResourceNotFound)
	}
}

// userdataFile serves /api/userdata/workflows[/<name>]. The router matches
// the raw path, so a name sent as one escaped segment
// ("workflows%2Fa.json") lands here as well.
func (h *Handler) userdataFile(w http.ResponseWriter, r *http.Request) {
	suffix, ok := strings.CutPrefix(r.URL.Path, workflowPathPrefix)
	if !ok || (suffix != "" && !strings.HasPrefix(suffix, "/")) {
		writeError(w, r, ErrResourceNotFound)
		return
	}
	name := strings.TrimPrefix(suffix, "/")

	switch r.Method {
	case http.MethodGet:
		if name == "" {
			h.listWorkflows(w, r)
			return
		}
		h.openWorkflow(w, r, name)
	case http.MethodPost:
		if name == "" {
			name = workflowNameFromQuery(r)
		}
		h.saveWorkflow(w, r, name)
	case http.MethodDelete:
		if name == "" {
			name = workflowNameFromQuery(r)
		}
		h.deleteWorkflow(w, r, name)
	default:
		writeError(w, r, ErrResourceNotFound)
	}
}

func (h *Handler) listWorkflows(w http.ResponseWriter, r *http.Request) {
	files, err := h.services.WorkflowService.List(r.Context(), identityFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, nonNil(files), http.StatusOK)
}

func (h *Handler) openWorkflow(w http.ResponseWriter, r *http.Request, name string) {
	p, err := h.services.WorkflowService.Open(r.Context(), identityFrom(r), name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := os.Open(p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *Handler) saveWorkflow(w http.ResponseWriter, r *http.Request, name string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, ErrInvalidJSON)
		return
	}
	saved, err := h.services.WorkflowService.Save(r.Context(), identityFrom(r), name, body)
	if err != nil {
		writeWorkflowError(w, r, err)
		return
	}
	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteWorkflow(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.services.WorkflowService.Delete(r.Context(), identityFrom(r), name); err != nil {
		writeWorkflowError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeWorkflowError answers a missing workflow permission with the same
// denial body the request policy uses.
func writeWorkflowError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrWorkflowDenied) {
		writeDenial(w, models.Denial{
			Code:       models.CodeWorkflowDenied,
			Permission: models.PermModifyWorkflows,
			Message:    "Workflow changes denied",
			Role:       identityFrom(r).Role,
		})
		return
	}
	writeError(w, r, err)
}
