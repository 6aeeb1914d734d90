package polls

import (
	"errors"
)

// Failure modes surfaced to callers. Handlers map each to a distinct HTTP
// status; anything else coming out of the service is an opaque storage fault.
var (
	ErrNotFound         = errors.New("poll not found")
	ErrPasswordRequired = errors.New("password required")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrForbidden        = errors.New("not authorized")
	ErrInvalidOption    = errors.New("option does not belong to poll")
	ErrAlreadyVoted     = errors.New("already voted on this poll")
	ErrValidation       = errors.New("validation failed")
)
