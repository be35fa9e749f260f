package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLockout(t *testing.T) {
	tests := []struct {
		name          string
		remaining     time.Duration
		handlerStatus int
		wantStatus    int
		wantFails     int
		wantSuccesses int
	}{
		{name: "failed login is counted", handlerStatus: http.StatusUnauthorized, wantStatus: http.StatusUnauthorized, wantFails: 1},
		{name: "forbidden register is counted", handlerStatus: http.StatusForbidden, wantStatus: http.StatusForbidden, wantFails: 1},
		{name: "success clears", handlerStatus: http.StatusOK, wantStatus: http.StatusOK, wantSuccesses: 1},
		{name: "bad request is ignored", handlerStatus: http.StatusBadRequest, wantStatus: http.StatusBadRequest},
		{name: "locked out client never reaches handler", remaining: 59500 * time.Millisecond, handlerStatus: http.StatusOK, wantStatus: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lockout := &fakeLockoutService{remaining: tt.remaining}
			h := newTestHandler(&service.Services{LockoutService: lockout})

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(tt.handlerStatus)
			})
			rec := httptest.NewRecorder()

			h.withLockout(next).ServeHTTP(rec, injectNopLogger(httptest.NewRequest(http.MethodPost, "/login", nil)))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantFails, lockout.fails)
			assert.Equal(t, tt.wantSuccesses, lockout.successes)
			assert.Equal(t, tt.remaining == 0, called)
		})
	}
}

func TestWriteLockedOut(t *testing.T) {
	rec := httptest.NewRecorder()

	writeLockedOut(rec, 89100*time.Millisecond)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "90", rec.Header().Get("Retry-After"))
	body := decodeBody[models.ErrorResponse](t, rec)
	assert.Equal(t, models.CodeLockedOut, body.Code)
	assert.Equal(t, 90, body.RetryAfter)
}

func TestWithIPFilter(t *testing.T) {
	h := newTestHandler(&service.Services{
		IPFilterService: &fakeIPFilterService{blocked: map[string]bool{"10.0.0.9": true}},
	})

	tests := []struct {
		name       string
		remoteAddr string
		wantStatus int
	}{
		{name: "allowed address", remoteAddr: "10.0.0.1:5000", wantStatus: http.StatusOK},
		{name: "blocked address", remoteAddr: "10.0.0.9:5000", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := injectNopLogger(httptest.NewRequest(http.MethodGet, "/", nil))
			r.RemoteAddr = tt.remoteAddr
			rec := httptest.NewRecorder()

			h.withIPFilter(nextOK).ServeHTTP(rec, r)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, models.CodeIPBlocked, decodeBody[models.ErrorResponse](t, rec).Code)
			}
		})
	}
}

func TestWithIPFilter_ProxyHeaders(t *testing.T) {
	h := newTestHandler(&service.Services{
		IPFilterService: &fakeIPFilterService{blocked: map[string]bool{"203.0.113.7": true}},
	})
	h.cfg.Server.TrustProxyHeaders = true

	r := injectNopLogger(httptest.NewRequest(http.MethodGet, "/", nil))
	r.RemoteAddr = "127.0.0.1:5000"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()

	h.withIPFilter(nextOK).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
