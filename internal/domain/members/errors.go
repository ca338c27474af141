package members

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrNameRequired   = errors.New("name is required")
	ErrEmailRequired  = errors.New("email is required")
	ErrEmailTaken     = errors.New("email already registered")
)
