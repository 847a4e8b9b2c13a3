package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrLineNotFound indicates no cart line matches the given signature.
	ErrLineNotFound = errors.New("cart line not found")
)
