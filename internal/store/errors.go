package store

import "errors"

var (
	ErrUserNotFound  = errors.New("no user was found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrReservedUser  = errors.New("user is reserved and cannot be removed")
	ErrLastAdmin     = errors.New("cannot remove the last admin")
)

var (
	ErrWorkflowNotFound = errors.New("workflow not found")
	ErrGlobalWorkflow   = errors.New("cannot delete global workflows")
)

var (
	// ErrCorruptFile is returned when a store file exists but cannot be decoded.
	ErrCorruptFile = errors.New("store file is corrupt")

	ErrWritingFile = errors.New("failed to write store file")

	ErrPathTraversal = errors.New("path escapes root")
	ErrInvalidRoot   = errors.New("storage root is not configured")
)
