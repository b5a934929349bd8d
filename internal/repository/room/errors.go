package room

import "errors"

var (
	ErrNotFound       = errors.New("room not found")
	ErrAlreadyExists  = errors.New("room already exists")
	ErrInvalidPayload = errors.New("invalid room payload")
)
