package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername    = errors.New("username must be at least 3 characters of letters, digits or underscore")
	ErrReservedUsername   = errors.New("username is reserved")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordNoDigit    = errors.New("password must contain a digit")
	ErrPasswordNoSpecial  = errors.New("password must contain a special character")
	ErrPasswordHasSpace   = errors.New("password must not contain spaces")
	ErrEmptyPassword      = errors.New("password is required")
	ErrInvalidGroups      = errors.New("groups must be non-empty names")
	ErrInvalidExpireHours = errors.New("expire_hours must be positive")
	ErrUnknownAction      = errors.New("unknown action")
	ErrEmptyPrompt        = errors.New("prompt is required")
	ErrInvalidScore       = errors.New("score must be within [0, 1]")
	ErrEmptyPath          = errors.New("path is required")
)
