package utils

import "errors"

var (
	ErrInvalidJWTParams     = errors.New("invalid params for JWT token")
	ErrUnsupportedAlgorithm = errors.New("unsupported JWT signing algorithm")
	ErrJWTExpired           = errors.New("jwt token expired")
	ErrJWTMalformed         = errors.New("jwt token malformed")
	ErrJWTSignature         = errors.New("jwt token signature mismatch")
	ErrInvalidAuthHeader    = errors.New("invalid authorization header")
)
