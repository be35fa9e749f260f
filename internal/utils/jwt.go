// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/simcop2387/usgromana/models"
)

// ClaimNames maps identity fields to the claim names used in token payloads.
type ClaimNames struct {
	Subject  string
	Username string
}

// JWTKeys is a signing method with its signing and verification keys.
// For HMAC both keys are the shared secret.
type JWTKeys struct {
	Method    jwt.SigningMethod
	SignKey   any
	VerifyKey any
}

// LoadJWTKeys builds [JWTKeys] for algorithm ("HS256" or "RS256").
//
// HS256 requires secret. RS256 requires a PEM private key; the public key is
// derived from it when publicPEM is empty.
func LoadJWTKeys(algorithm, secret, privatePEM, publicPEM string) (JWTKeys, error) {
	switch strings.ToUpper(algorithm) {
	case "", "HS256":
		if secret == "" {
			return JWTKeys{}, fmt.Errorf("%w: empty HS256 secret", ErrInvalidJWTParams)
		}
		return JWTKeys{Method: jwt.SigningMethodHS256, SignKey: []byte(secret), VerifyKey: []byte(secret)}, nil
	case "RS256":
		priv, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
		if err != nil {
			return JWTKeys{}, fmt.Errorf("%w: parse RS256 private key: %w", ErrInvalidJWTParams, err)
		}
		keys := JWTKeys{Method: jwt.SigningMethodRS256, SignKey: priv, VerifyKey: &priv.PublicKey}
		if publicPEM != "" {
			pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
			if err != nil {
				return JWTKeys{}, fmt.Errorf("%w: parse RS256 public key: %w", ErrInvalidJWTParams, err)
			}
			keys.VerifyKey = pub
		}
		return keys, nil
	default:
		return JWTKeys{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// GenerateJWTToken signs a token carrying subjectID and username under the
// configured claim names and expiring after ttl.
func GenerateJWTToken(keys JWTKeys, names ClaimNames, subjectID, username string, ttl time.Duration) (models.Token, error) {
	if keys.Method == nil || ttl <= 0 || names.Subject == "" || names.Username == "" || subjectID == "" {
		return models.Token{}, ErrInvalidJWTParams
	}

	now := time.Now()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		names.Subject:  subjectID,
		names.Username: username,
		"iat":          now.Unix(),
		"exp":          exp.Unix(),
	}

	token := jwt.NewWithClaims(keys.Method, claims)
	signed, err := token.SignedString(keys.SignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		SignedString: signed,
		Claims: models.Claims{
			SubjectID: subjectID,
			Username:  username,
			IssuedAt:  time.Unix(now.Unix(), 0),
			ExpiresAt: time.Unix(exp.Unix(), 0),
		},
	}, nil
}

// ValidateAndParseJWTToken verifies tokenString and extracts its identity
// claims. The returned error wraps exactly one of [ErrJWTExpired],
// [ErrJWTSignature] or [ErrJWTMalformed].
func ValidateAndParseJWTToken(tokenString string, keys JWTKeys, names ClaimNames) (models.Claims, error) {
	if keys.Method == nil {
		return models.Claims{}, ErrInvalidJWTParams
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return keys.VerifyKey, nil
	}, jwt.WithValidMethods([]string{keys.Method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Claims{}, fmt.Errorf("%w: %w", ErrJWTExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return models.Claims{}, fmt.Errorf("%w: %w", ErrJWTSignature, err)
		default:
			return models.Claims{}, fmt.Errorf("%w: %w", ErrJWTMalformed, err)
		}
	}

	subject, ok := claimString(claims[names.Subject])
	if !ok || subject == "" {
		return models.Claims{}, fmt.Errorf("%w: missing %q claim", ErrJWTMalformed, names.Subject)
	}
	username, ok := claimString(claims[names.Username])
	if !ok || username == "" {
		return models.Claims{}, fmt.Errorf("%w: missing %q claim", ErrJWTMalformed, names.Username)
	}

	out := models.Claims{SubjectID: subject, Username: username}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// claimString accepts string claims and integral numeric claims, which some
// issuers use for subject ids.
func claimString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t != float64(int64(t)) {
			return "", false
		}
		return strconv.FormatInt(int64(t), 10), true
	default:
		return "", false
	}
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidAuthHeader
	}
	return parts[1], nil
}
