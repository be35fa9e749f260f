package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewHandler(t *testing.T, hide bool) *Handler {
	t.Helper()
	root := t.TempDir()
	output := filepath.Join(root, "output")
	input := filepath.Join(root, "input")
	require.NoError(t, os.MkdirAll(filepath.Join(output, "alice"), 0o755))
	require.NoError(t, os.MkdirAll(input, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(output, "alice", "img.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "src.png"), []byte("input-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0o644))

	cfg := config.StructuredConfig{Storage: config.Storage{OutputDir: output, InputDir: input}}
	return NewHandler(&service.Services{SafetyService: &fakeSafetyService{hide: hide}}, nil, nil, cfg, logger.Nop())
}

func TestView(t *testing.T) {
	tests := []struct {
		name       string
		hide       bool
		query      string
		wantStatus int
		wantBody   string
		wantCode   string
	}{
		{name: "serves output file", query: "filename=img.png&subfolder=alice", wantStatus: http.StatusOK, wantBody: "png-bytes"},
		{name: "serves input file", query: "filename=src.png&type=input", wantStatus: http.StatusOK, wantBody: "input-bytes"},
		{name: "hidden by safety filter", hide: true, query: "filename=img.png&subfolder=alice", wantStatus: http.StatusForbidden, wantCode: models.CodeNSFWBlocked},
		{name: "missing file", query: "filename=none.png", wantStatus: http.StatusNotFound},
		{name: "directory", query: "filename=alice", wantStatus: http.StatusNotFound},
		{name: "traversal in subfolder", query: "filename=secret.txt&subfolder=..", wantStatus: http.StatusBadRequest},
		{name: "separator in filename", query: "filename=../secret.txt", wantStatus: http.StatusBadRequest},
		{name: "empty filename", query: "", wantStatus: http.StatusBadRequest},
		{name: "unknown type", query: "filename=img.png&type=models", wantStatus: http.StatusBadRequest},
		{name: "unconfigured temp dir", query: "filename=img.png&type=temp", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newViewHandler(t, tt.hide)
			rec := httptest.NewRecorder()
			r := asCaller(httptest.NewRequest(http.MethodGet, "/api/view?"+tt.query, nil), userIdentity("alice"))

			h.view(rec, r)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeBody[models.ErrorResponse](t, rec).Code)
			}
		})
	}
}
