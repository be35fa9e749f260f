// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGZip_Response(t *testing.T) {
	body := strings.Repeat("queue entry ", 100)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1200")
		w.Write([]byte(body))
	})

	tests := []struct {
		name           string
		acceptEncoding string
		wantGzip       bool
	}{
		{name: "client accepts gzip", acceptEncoding: "gzip", wantGzip: true},
		{name: "gzip among other encodings", acceptEncoding: "deflate, gzip;q=1.0, br", wantGzip: true},
		{name: "client does not accept gzip", acceptEncoding: "", wantGzip: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/queue", nil)
			if tt.acceptEncoding != "" {
				r.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()

			withGZip(next).ServeHTTP(rec, r)

			require.Equal(t, http.StatusOK, rec.Code)
			if !tt.wantGzip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				assert.Equal(t, body, rec.Body.String())
				return
			}

			assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Empty(t, rec.Header().Get("Content-Length"))
			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			got, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, body, string(got))
		})
	}
}

func TestGZip_RequestBody(t *testing.T) {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	zw.Write([]byte(`{"prompt":{}}`))
	zw.Close()

	var received string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/api/prompt", &compressed)
	r.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"prompt":{}}`, received)
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/prompt", strings.NewReader("not gzip"))
	r.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(nextOK).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGZip_NoBody(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r := httptest.NewRequest(http.MethodDelete, "/usgromana/api/users/bob", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestWrappedReadCloser_Close(t *testing.T) {
	closed := false
	w := &wrappedReadCloser{Reader: strings.NewReader(""), OnClose: func() { closed = true }}

	require.NoError(t, w.Close())
	assert.True(t, closed)
	assert.NoError(t, (&wrappedReadCloser{Reader: strings.NewReader("")}).Close())
}
