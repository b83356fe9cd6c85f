package access

import "errors"

var (
	ErrUnknownCommand    = errors.New("unknown access command")
	ErrInvalidCommand    = errors.New("invalid access command")
	ErrUnknownPermission = errors.New("unknown permission kind")
	ErrUnknownProfile    = errors.New("unknown profile")
)
