package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrPageInactive = errors.New("page not mounted")
	ErrClosed       = errors.New("session closed")
	ErrInvalidInput = errors.New("invalid input")
)
