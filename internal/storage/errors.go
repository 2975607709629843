package storage

import "errors"

var (
	ErrParseConfig      = errors.New("storage: failed to parse connection config")
	ErrConnectionFailed = errors.New("storage: failed to connect")
	ErrUnknownDriver    = errors.New("storage: unknown store driver")
)
