// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package http

import "net/http"

// responseWriter records the status and size of a response so middleware
// can act on them after the handler returned.
//
// beforeHeader, when set, runs once right before the status line is sent
// and may still add headers.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int

	beforeHeader func(w http.ResponseWriter, status int)
}

// WriteHeader forwards statusCode to the wrapped writer exactly once.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	if w.beforeHeader != nil {
		w.beforeHeader(w.ResponseWriter, statusCode)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Status returns the written status, 200 when the handler wrote nothing.
func (w *responseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
