// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package http

import "errors"

var (
	ErrMissingToken     = errors.New("authentication required")
	ErrInvalidJSON      = errors.New("invalid JSON body")
	ErrInvalidQuery     = errors.New("invalid query parameter")
	ErrInvalidFileType  = errors.New("invalid file type")
	ErrAdminOnly        = errors.New("admin privileges required")
	ErrResourceNotFound = errors.New("not found")
)
