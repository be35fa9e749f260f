package models

import "time"

// Claims are the identity fields carried by a session token. Their names
// inside the token payload are configurable and are not part of this type.
type Claims struct {
	SubjectID string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token is a signed session token together with the claims it carries.
type Token struct {
	Claims

	// SignedString is the compact JWS form (header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact serialized token.
func (t Token) String() string {
	return t.SignedString
}
