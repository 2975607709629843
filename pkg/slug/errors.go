package slug

import "errors"

// Sentinel errors for slug operations.
var (
	// ErrUngeneratable is returned when the input reduces to zero words
	// after filtering, so no slug can be produced from it.
	ErrUngeneratable = errors.New("slug: input has no usable characters")

	// ErrNotSlug is returned by Parse when the input is not byte-identical
	// to the slug the generator would produce from it.
	ErrNotSlug = errors.New("slug: input is not a valid slug")

	// ErrInvalidLength is returned by Truncate for a non-positive length.
	ErrInvalidLength = errors.New("slug: truncation length must be positive")

	// ErrDecode is returned when an externally supplied value fails validation.
	ErrDecode = errors.New("slug: failed to decode value")

	// ErrSeparatorOverlap is returned by Options.Validate when the separator
	// contains characters the pipeline would treat as word content.
	ErrSeparatorOverlap = errors.New("slug: separator overlaps with word characters")

	// ErrUnknownFilter is returned by NamedFilter for an unregistered name.
	ErrUnknownFilter = errors.New("slug: unknown filter")
)
