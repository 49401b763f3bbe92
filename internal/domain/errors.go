package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrMalformedRecord = errors.New("malformed raw record")
	ErrUnknownChannel  = errors.New("unknown raw channel")
)
