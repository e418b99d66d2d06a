package service

import "errors"

var (
	ErrConflict           = errors.New("username or email already exists")
	ErrForbidden          = errors.New("not enough permission")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrInvalidUser        = errors.New("username, email and password are required")
	ErrInvalidPage        = errors.New("offset must not be negative and limit must be between 0 and 100")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
