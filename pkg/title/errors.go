package title

import "errors"

var (
	ErrUnknownFormat = errors.New("title: unknown format")
	ErrRender        = errors.New("title: failed to render markdown")
)
