package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads exactly one JSON object into v. Unknown fields are rejected so
// typos in option names do not go unnoticed.
func (a *api) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, a.opts.maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &httpError{Code: http.StatusRequestEntityTooLarge, Message: "request body too large", Err: err}
		}
		return &httpError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("invalid request body: %v", err),
			Err:     errors.Join(errBadRequest, err),
		}
	}
	if dec.More() {
		return &httpError{Code: http.StatusBadRequest, Message: "invalid request body: trailing data", Err: errBadRequest}
	}
	return nil
}
