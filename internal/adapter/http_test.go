package adapter

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T, serverURL string) Executor {
	t.Helper()
	e, err := NewHTTPExecutor(config.Adapter{ExecutorURL: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return e
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "empty", raw: "  ", wantErr: true},
		{name: "host and port", raw: "localhost:8189", want: "http://localhost:8189"},
		{name: "trailing slash", raw: "http://engine:8189/", want: "http://engine:8189"},
		{name: "with path", raw: "https://cls.local/v1/classify", want: "https://cls.local/v1/classify"},
		{name: "scheme only", raw: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPExecutor_EmptyAddress(t *testing.T) {
	_, err := NewHTTPExecutor(config.Adapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestExecute_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/execute", r.URL.Path)

		var req executeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(7), req.TaskID)
		assert.Equal(t, "alice-id", req.Owner)
		assert.Equal(t, "p-1", req.PromptID)
		assert.JSONEq(t, `{"1":{"class_type":"SaveImage"}}`, string(req.Prompt))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outputs":{"1":{"images":["a.png"]}},"status":{"status_str":"success","completed":true,"messages":[]}}`))
	}))
	defer srv.Close()

	task := models.Task{
		ID:    7,
		Owner: "alice-id",
		Entry: models.QueueEntry{PromptID: "p-1", Prompt: json.RawMessage(`{"1":{"class_type":"SaveImage"}}`)},
	}
	got, err := newTestExecutor(t, srv.URL).Execute(context.Background(), task)

	require.NoError(t, err)
	assert.True(t, got.Status.Completed)
	assert.Equal(t, "success", got.Status.StatusStr)
	assert.Contains(t, got.Outputs, "1")
}

func TestExecute_ErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrRejected},
		{http.StatusNotFound, ErrRejected},
		{http.StatusConflict, ErrRejected},
		{http.StatusTeapot, ErrRejected},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusRequestTimeout, ErrUnavailable},
		{http.StatusTooManyRequests, ErrUnavailable},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusBadGateway, ErrUnavailable},
		{http.StatusServiceUnavailable, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("boom"))
			}))
			defer srv.Close()

			_, err := newTestExecutor(t, srv.URL).Execute(context.Background(), models.Task{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestExecute_EmptyBodyUsesStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestExecutor(t, srv.URL).Execute(context.Background(), models.Task{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418: I'm a teapot")
}

func TestExecute_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestExecutor(t, url).Execute(context.Background(), models.Task{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExecute_CancelledIsNotUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExecutor(t, srv.URL).Execute(ctx, models.Task{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestFreeMemory(t *testing.T) {
	var body map[string]bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/free", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestExecutor(t, srv.URL).FreeMemory(context.Background(), true, false)

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"unload_models": true, "free_memory": false}, body)
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o644))

	tests := []struct {
		name    string
		reply   string
		want    models.Classification
		wantErr error
	}{
		{
			name:  "flat list",
			reply: `[{"label":"normal","score":0.2},{"label":"nsfw","score":0.8}]`,
			want:  models.Classification{Label: "nsfw", Score: 0.8},
		},
		{
			name:  "nested list",
			reply: `[[{"label":"nsfw","score":0.1},{"label":"normal","score":0.9}]]`,
			want:  models.Classification{Label: "normal", Score: 0.9},
		},
		{
			name:  "single object",
			reply: `{"label":"nsfw","score":0.7}`,
			want:  models.Classification{Label: "nsfw", Score: 0.7},
		},
		{name: "empty list", reply: `[]`, wantErr: ErrNoClassification},
		{name: "garbage", reply: `"nope"`, wantErr: ErrUnexpectedPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/classify", r.URL.Path)
				f, _, err := r.FormFile("file")
				require.NoError(t, err)
				data, _ := io.ReadAll(f)
				assert.Equal(t, "image-bytes", string(data))
				_, _ = w.Write([]byte(tt.reply))
			}))
			defer srv.Close()

			c, err := NewHTTPClassifier(config.Safety{ClassifierURL: srv.URL + "/classify"}, logger.Nop())
			require.NoError(t, err)

			got, err := c.Classify(context.Background(), path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_UpstreamError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewHTTPClassifier(config.Safety{ClassifierURL: srv.URL}, logger.Nop())
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClassify_MissingFile(t *testing.T) {
	c, err := NewHTTPClassifier(config.Safety{ClassifierURL: "http://127.0.0.1:1"}, logger.Nop())
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrUnavailable)
}
