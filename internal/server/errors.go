// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package server

import "errors"

var (
	errNoAddress = errors.New("http address is not configured")
)
