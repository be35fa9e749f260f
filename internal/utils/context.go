// Package utils provides helpers shared across the server: request context
// keys, JWT signing and parsing, HTTP response and request helpers, content
// hashing and identifier generation.
package utils

import (
	"context"

	"github.com/simcop2387/usgromana/models"
)

// contextKey is a private type for context keys so that keys from other
// packages cannot collide with ours.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the resolved [models.Identity] of
// the caller is stored in a request context.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the caller identity from ctx.
//
// ok is false when no identity was attached, which callers treat as
// anonymous.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}
