// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package models

import (
	"slices"
	"strings"
)

// GuestUsername is the reserved identity used for anonymous callers.
// It cannot be deleted and is always subject to content safety checks.
const GuestUsername = "guest"

// User is an account record as persisted in the users file.
//
// Groups are ordered: the first group is the user's role. SafetyCheck is a
// pointer so that an absent field can be told apart from an explicit false.
type User struct {
	// ID is the opaque identifier of the user. It is the key of the record in
	// the users file and is therefore not part of the record body.
	ID string `json:"-"`

	// Username is unique across the store.
	Username string `json:"username"`

	// PasswordHash is a bcrypt hash, never plaintext.
	PasswordHash string `json:"password"`

	// IsAdmin mirrors membership in the admin group.
	IsAdmin bool `json:"admin"`

	// Groups holds role names in precedence order.
	Groups []string `json:"groups"`

	// SafetyCheck is the user's content safety preference.
	SafetyCheck *bool `json:"sfw_check,omitempty"`
}

// IsGuest reports whether the record is the reserved guest identity.
func (u User) IsGuest() bool {
	return IsGuestName(u.Username)
}

// Role returns the first group of the user, or RoleUser when the user has no
// groups at all.
func (u User) Role() string {
	if len(u.Groups) == 0 {
		return RoleUser
	}
	return strings.ToLower(u.Groups[0])
}

// HasGroup reports whether the user is a member of group (case-insensitive).
func (u User) HasGroup(group string) bool {
	return slices.ContainsFunc(u.Groups, func(g string) bool {
		return strings.EqualFold(g, group)
	})
}

// Admin reports whether the user has administrative rights either through
// the admin flag or through the admin group.
func (u User) Admin() bool {
	return u.IsAdmin || u.HasGroup(RoleAdmin)
}

// SafetyCheckEnabled returns the stored preference, defaulting to true.
func (u User) SafetyCheckEnabled() bool {
	if u.SafetyCheck == nil {
		return true
	}
	return *u.SafetyCheck
}

// Clone returns a deep copy of the record.
func (u User) Clone() User {
	c := u
	c.Groups = slices.Clone(u.Groups)
	if u.SafetyCheck != nil {
		v := *u.SafetyCheck
		c.SafetyCheck = &v
	}
	return c
}

// IsGuestName reports whether username denotes the guest identity.
// An empty username is treated as anonymous, i.e. guest.
func IsGuestName(username string) bool {
	return username == "" || strings.EqualFold(username, GuestUsername)
}

// UserView is the admin-facing projection of a [User] without the hash.
type UserView struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	IsAdmin     bool     `json:"is_admin"`
	Groups      []string `json:"groups"`
	SafetyCheck bool     `json:"sfw_check"`
}

// View builds the admin projection of u.
func (u User) View() UserView {
	return UserView{
		ID:          u.ID,
		Username:    u.Username,
		IsAdmin:     u.Admin(),
		Groups:      slices.Clone(u.Groups),
		SafetyCheck: u.SafetyCheckEnabled(),
	}
}
