package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidArgument indicates a malformed request.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrValidation indicates a record failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated indicates the call requires a signed in requester.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates the requester may not perform the call.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicate indicates a uniqueness violation.
	ErrDuplicate = errors.New("duplicate entry")
)
