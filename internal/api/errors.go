package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/slugkit/pkg/registry"
	"github.com/dmitrymomot/slugkit/pkg/slug"
	"github.com/dmitrymomot/slugkit/pkg/title"
)

var errBadRequest = errors.New("api: malformed request")

// httpError carries a status code and a client-safe message.
type httpError struct {
	Err     error
	Message string
	Code    int
}

func (e *httpError) Error() string {
	return e.Message
}

func (e *httpError) Unwrap() error {
	return e.Err
}

type errorResponse struct {
	Error string `json:"error"`
}

// toHTTPError maps domain errors to status codes. Unknown errors become a 500
// whose message hides the cause.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, slug.ErrUngeneratable),
		errors.Is(err, slug.ErrNotSlug),
		errors.Is(err, slug.ErrInvalidLength):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, slug.ErrUnknownFilter),
		errors.Is(err, slug.ErrSeparatorOverlap),
		errors.Is(err, title.ErrUnknownFormat):
		code = http.StatusBadRequest
	case errors.Is(err, registry.ErrTaken),
		errors.Is(err, registry.ErrExhausted):
		code = http.StatusConflict
	case errors.Is(err, registry.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, registry.ErrNotOwner):
		code = http.StatusForbidden
	}

	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	return &httpError{Code: code, Message: msg, Err: err}
}

// resultLabel names an outcome for metrics.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, slug.ErrUngeneratable):
		return "ungeneratable"
	case errors.Is(err, slug.ErrNotSlug):
		return "not_slug"
	case errors.Is(err, slug.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, registry.ErrExhausted):
		return "exhausted"
	case errors.Is(err, registry.ErrTaken):
		return "taken"
	}
	if toHTTPError(err).Code < http.StatusInternalServerError {
		return "rejected"
	}
	return "error"
}

// handle adapts an error-returning handler and renders its error as JSON.
func (a *api) handle(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		he := toHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			a.opts.logger.ErrorContext(r.Context(), "request failed",
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
		}
		writeJSON(w, he.Code, errorResponse{Error: he.Message})
	}
}
