package service

import "errors"

var (
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenMalformed  = errors.New("token is invalid")
	ErrTokenSignature  = errors.New("token signature is invalid")
	ErrSubjectMismatch = errors.New("token subject does not match a stored user")

	ErrTokenCreationFailed = errors.New("token creation failed")
)

var (
	ErrInvalidCredentials       = errors.New("invalid username or password")
	ErrAdminCredentialsRequired = errors.New("admin credentials are required to register users")
	ErrGuestDisabled            = errors.New("guest login is disabled")
	ErrGuestNotAllowed          = errors.New("not allowed for the guest account")
	ErrUnknownGroup             = errors.New("unknown group")
)

var (
	ErrInvalidWorkflowName = errors.New("invalid workflow name")
	ErrInvalidWorkflow     = errors.New("workflow must be a JSON object")
	ErrWorkflowDenied      = errors.New("workflow changes denied")
)

var (
	ErrNoClassifier          = errors.New("no classifier configured")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
