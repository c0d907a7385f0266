package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("already registered")
	ErrUnknownPrincipal = errors.New("authenticated principal is not a registered user")
)
