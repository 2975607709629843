package registry

import "errors"

var (
	ErrStoreRequired     = errors.New("registry: store is required")
	ErrTaken             = errors.New("registry: slug is already taken")
	ErrNotFound          = errors.New("registry: claim not found")
	ErrExhausted         = errors.New("registry: no free slug after max attempts")
	ErrNotOwner          = errors.New("registry: claim belongs to another owner")
	ErrClosed            = errors.New("registry: store closed")
	ErrInvalidRecord     = errors.New("registry: invalid record")
	ErrMigrate           = errors.New("registry: failed to apply migrations")
	ErrHealthcheckFailed = errors.New("registry: healthcheck failed")
)
