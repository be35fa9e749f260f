// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package models

import "slices"

// Identity is the resolved caller of a request: who they are, which role
// they act under and the explicit permission map of that role.
//
// Identity is a value and is threaded explicitly through request contexts
// and queue entries; it never lives in package-level state.
type Identity struct {
	UserID        string      `json:"user_id,omitempty"`
	Username      string      `json:"username"`
	Role          string      `json:"role"`
	Groups        []string    `json:"groups"`
	Permissions   Permissions `json:"permissions"`
	IsAdmin       bool        `json:"is_admin"`
	Authenticated bool        `json:"authenticated"`
}

// Anonymous returns the identity used for unauthenticated or unresolvable
// callers: role guest with an empty permission map.
func Anonymous() Identity {
	return Identity{
		Username:    GuestUsername,
		Role:        RoleGuest,
		Groups:      []string{},
		Permissions: Permissions{},
	}
}

// IsGuest reports whether the identity acts under the guest role or as the
// guest user.
func (i Identity) IsGuest() bool {
	return i.Role == RoleGuest || IsGuestName(i.Username)
}

// Allowed resolves a permission key for the identity:
//  1. the admin role is always allowed;
//  2. an explicitly set key returns its value;
//  3. an unset key is allowed for every role except guest.
func (i Identity) Allowed(key string) bool {
	if i.Role == RoleAdmin {
		return true
	}
	if v, ok := i.Permissions.Lookup(key); ok {
		return v
	}
	return i.Role != RoleGuest
}

// Clone returns a deep copy of the identity.
func (i Identity) Clone() Identity {
	c := i
	c.Groups = slices.Clone(i.Groups)
	c.Permissions = i.Permissions.Clone()
	return c
}

// Denial reason codes returned in 403 bodies.
const (
	CodeExecutionDenied = "EXECUTION_DENIED"
	CodeUploadDenied    = "UPLOAD_DENIED"
	CodeWorkflowDenied  = "WORKFLOW_DENIED"
	CodeExtensionDenied = "EXTENSION_DENIED"
	CodeAPIDenied       = "API_DENIED"
	CodeAdminOnly       = "ADMIN_ONLY"
	CodeIPBlocked       = "IP_BLOCKED"
	CodeLockedOut       = "LOCKED_OUT"
	CodeNSFWBlocked     = "NSFW_BLOCKED"
)

// Denial describes why the request policy rejected a request.
type Denial struct {
	Code       string `json:"code"`
	Permission string `json:"permission"`
	Message    string `json:"error"`
	Role       string `json:"role"`
}
