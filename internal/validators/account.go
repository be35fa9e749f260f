// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package validators

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/simcop2387/usgromana/models"
)

// Field names accepted by [AccountValidator.Validate].
const (
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldPasswordRule = "password rules"
	FieldNotReserved  = "not reserved"
	FieldGroups       = "groups"
	FieldExpireHours  = "expire_hours"
	FieldAction       = "action"
	FieldPrompt       = "prompt"
	FieldScore        = "score"
	FieldPath         = "path"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,}$`)

// AccountValidator validates the request models of the authentication,
// administration and queue endpoints.
type AccountValidator struct{}

// NewAccountValidator returns an [AccountValidator] as a [Validator].
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms of
// each supported model are accepted.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateCredentials(value.Username, value.Password, defaultFields(fields, FieldUsername, FieldNotReserved, FieldPasswordRule))
	case *models.RegisterRequest:
		return v.Validate(ctx, *value, fields...)

	case models.LoginRequest:
		if value.GuestLogin {
			return nil
		}
		return v.validateCredentials(value.Username, value.Password, defaultFields(fields, FieldUsername, FieldPassword))
	case *models.LoginRequest:
		return v.Validate(ctx, *value, fields...)

	case models.GenerateTokenRequest:
		if err := v.validateCredentials(value.Username, value.Password, defaultFields(fields, FieldUsername, FieldPassword)); err != nil {
			return err
		}
		if value.ExpireHours <= 0 {
			return ErrInvalidExpireHours
		}
		return nil
	case *models.GenerateTokenRequest:
		return v.Validate(ctx, *value, fields...)

	case models.UpdateUserRequest:
		for _, g := range value.Groups {
			if strings.TrimSpace(g) == "" {
				return ErrInvalidGroups
			}
		}
		return nil
	case *models.UpdateUserRequest:
		return v.Validate(ctx, *value, fields...)

	case models.UserEnvRequest:
		switch value.Action {
		case models.EnvActionStatus, models.EnvActionList, models.EnvActionPurge, models.EnvActionSetGalleryRoot:
		default:
			return ErrUnknownAction
		}
		if value.Username != "" && !usernameRe.MatchString(value.Username) {
			return ErrInvalidUsername
		}
		return nil
	case *models.UserEnvRequest:
		return v.Validate(ctx, *value, fields...)

	case models.SafetyTagRequest:
		if value.Path == "" {
			return ErrEmptyPath
		}
		if value.Score != nil && (*value.Score < 0 || *value.Score > 1) {
			return ErrInvalidScore
		}
		return nil
	case *models.SafetyTagRequest:
		return v.Validate(ctx, *value, fields...)

	case models.PromptRequest:
		if len(value.Prompt) == 0 || string(value.Prompt) == "null" {
			return ErrEmptyPrompt
		}
		return nil
	case *models.PromptRequest:
		return v.Validate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func defaultFields(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}

func (v *AccountValidator) validateCredentials(username, password string, fields []string) error {
	for _, f := range fields {
		switch f {
		case FieldUsername:
			if !usernameRe.MatchString(username) {
				return ErrInvalidUsername
			}
		case FieldNotReserved:
			if models.IsGuestName(username) {
				return ErrReservedUsername
			}
		case FieldPassword:
			if password == "" {
				return ErrEmptyPassword
			}
		case FieldPasswordRule:
			if err := ValidatePassword(password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters,
// at least one digit, at least one special character and no whitespace.
func ValidatePassword(password string) error {
	if len([]rune(password)) < 8 {
		return ErrPasswordTooShort
	}
	var digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return ErrPasswordHasSpace
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}
	if !digit {
		return ErrPasswordNoDigit
	}
	if !special {
		return ErrPasswordNoSpecial
	}
	return nil
}
